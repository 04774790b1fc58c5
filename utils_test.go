package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadFile(t *testing.T) {
	lines, err := ReadFile("testfiles/geom")
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 3 {
		t.Errorf("got %d lines, wanted 3", len(lines))
	}
	// leading whitespace survives, the scanner's offsets depend on it
	if lines[0][0] != ' ' {
		t.Errorf("leading whitespace stripped from %q", lines[0])
	}
}

func TestCopyFile(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "geom")
	if err := CopyFile("testfiles/geom", dst); err != nil {
		t.Fatal(err)
	}
	want, _ := os.ReadFile("testfiles/geom")
	got, _ := os.ReadFile(dst)
	if string(got) != string(want) {
		t.Errorf("copy differs from source")
	}
}
