package main

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Key is a type for control file keyword indices
type Key int

// Keys in the configuration array. To add a new keyword, add a Key
// here and to the String method below, then add its entry to Conf.
const (
	Natom Key = iota
	Nstat
	Nstatdyn
	Lvprt
	Step
	Time
	QchemCmd
	PhaseCmd
	QchemTmpl
	GeomFile
	StrictNac
	NumKeys
)

func (k Key) String() string {
	return []string{
		"Natom",
		"Nstat",
		"Nstatdyn",
		"Lvprt",
		"Step",
		"Time",
		"QchemCmd",
		"PhaseCmd",
		"QchemTmpl",
		"GeomFile",
		"StrictNac",
	}[k]
}

type Keyword struct {
	Re      *regexp.Regexp
	Extract func(string) interface{}
	Value   interface{}
}

type Config [NumKeys]Keyword

// At returns the Value of c at k
func (c *Config) At(k Key) interface{} {
	return (*c)[k].Value
}

// Set sets the Value of c at k
func (c *Config) Set(k Key, val interface{}) {
	(*c)[k].Value = val
}

func (c *Config) Str(k Key) string {
	return (*c)[k].Value.(string)
}

func (c *Config) Float(k Key) float64 {
	return (*c)[k].Value.(float64)
}

func (c *Config) Int(k Key) int {
	return (*c)[k].Value.(int)
}

func (c *Config) Bool(k Key) bool {
	return (*c)[k].Value.(bool)
}

func (c Config) String() string {
	var buf strings.Builder
	for i, kw := range c {
		fmt.Fprintf(&buf, "%s: %v\n", Key(i), kw.Value)
	}
	return buf.String()
}

// Check runs the cross-keyword validation that has to wait until the
// whole control file is parsed
func (c *Config) Check() error {
	nstat := c.Int(Nstat)
	nstatdyn := c.Int(Nstatdyn)
	switch {
	case nstat < 1:
		return fmt.Errorf("nstat must be at least 1, got %d", nstat)
	case nstatdyn < 1 || nstatdyn > nstat:
		return fmt.Errorf("nstatdyn %d outside [1, %d]", nstatdyn, nstat)
	}
	return nil
}

func kwpanic(str string, err error) {
	panic(
		fmt.Sprintf(
			"%v parsing input line %q\n",
			err, str),
	)
}

func StringKeyword(str string) interface{} {
	return str
}

func FloatKeyword(str string) interface{} {
	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		kwpanic(str, err)
	}
	return f
}

func IntKeyword(str string) interface{} {
	v, err := strconv.Atoi(str)
	if err != nil {
		kwpanic(str, err)
	}
	return v
}

func BoolKeyword(str string) interface{} {
	switch strings.ToLower(str) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	kwpanic(str, fmt.Errorf("expected a boolean"))
	return nil
}

var Conf = Config{
	Natom: {
		Re:      regexp.MustCompile(`(?i)nat=`),
		Extract: IntKeyword,
		Value:   0,
	},
	Nstat: {
		Re:      regexp.MustCompile(`(?i)nstat=`),
		Extract: IntKeyword,
		Value:   1,
	},
	Nstatdyn: {
		Re:      regexp.MustCompile(`(?i)nstatdyn=`),
		Extract: IntKeyword,
		Value:   1,
	},
	Lvprt: {
		Re:      regexp.MustCompile(`(?i)lvprt=`),
		Extract: IntKeyword,
		Value:   1,
	},
	Step: {
		Re:      regexp.MustCompile(`(?i)step=`),
		Extract: IntKeyword,
		Value:   0,
	},
	Time: {
		Re:      regexp.MustCompile(`(?i)time=`),
		Extract: FloatKeyword,
		Value:   0.0,
	},
	QchemCmd: {
		Re:      regexp.MustCompile(`(?i)qchemcmd=`),
		Extract: StringKeyword,
		Value:   "qchem",
	},
	PhaseCmd: {
		Re:      regexp.MustCompile(`(?i)phasecmd=`),
		Extract: StringKeyword,
		Value:   "",
	},
	QchemTmpl: {
		Re:      regexp.MustCompile(`(?i)qchemtmpl=`),
		Extract: StringKeyword,
		Value:   "qchem.tmpl",
	},
	GeomFile: {
		Re:      regexp.MustCompile(`(?i)geomfile=`),
		Extract: StringKeyword,
		Value:   "geom",
	},
	StrictNac: {
		Re:      regexp.MustCompile(`(?i)strictnac=`),
		Extract: BoolKeyword,
		Value:   false,
	},
}

// ParseInfile parses the keyword control file and stores the results
// in Conf. Lines starting with # are comments.
func ParseInfile(filename string) {
	f, err := os.Open(filename)
	if err != nil {
		errExit(err, fmt.Sprintf("opening control file %q", filename))
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		for k := range Conf {
			kw := &Conf[k]
			if kw.Re != nil && kw.Re.MatchString(line) {
				split := strings.SplitN(line, "=", 2)
				kw.Value = kw.Extract(strings.TrimSpace(split[1]))
				break
			}
		}
	}
}
