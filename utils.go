package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ReadFile reads a file and returns a slice of strings of the lines.
// Lines keep their original spacing; the block scanner counts on it.
func ReadFile(filename string) (lines []string, err error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, nil
}

// RunProgram runs progName with the given arguments in dir and waits
// for it, with stdout and stderr inherited
func RunProgram(progName, dir string, args ...string) error {
	cmd := exec.Command("bash", "-c",
		progName+" "+strings.Join(args, " "))
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// CopyFile copies src to dst, truncating dst if it exists
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, in)
	return err
}

func errExit(err error, msg string) {
	fmt.Fprintf(os.Stderr, "nxqchem: %v %s\n", err, msg)
	os.Exit(1)
}

// Warn prints a warning message to stdout and increments the global
// warning counter
func Warn(format string, a ...interface{}) {
	fmt.Printf("warning: "+format+"\n", a...)
	Global.Warnings++
}
