// deduku.go - a narrated Sudoku deduction engine.
// Copyright (C) 2016 the deduku.go authors.
//
// This program is free software; you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation; either version 2 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License along
// with this program; if not, write to the Free Software Foundation, Inc.,
// 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.
// Licensed under the LGPL v3.  See the LICENSE file for details

package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/deduku/deduku.go/puzzle"
	"github.com/deduku/deduku.go/storage"
)

type tLogger struct {
	t   *testing.T
	log bytes.Buffer
}

func (t *tLogger) Write(p []byte) (n int, e error) {
	n, e = t.log.Write(p)
	t.t.Log(string(p[:n-1]))
	return
}

func testSetup(t *testing.T) {
	// log initialization
	tlog := &tLogger{t: t}
	if !testing.Short() {
		log.SetOutput(tlog)
	} else {
		log.SetOutput(os.Stderr)
	}
	// storage initialization
	os.Setenv("DBPREP_PATH", filepath.Join("..", "..", "dbprep", "migrations"))
	cacheId, databaseId, err := storage.Connect()
	if err != nil {
		t.Fatalf("Error during storage initialization: %v", err)
	}
	log.Printf("Connected to cache at %q", cacheId)
	log.Printf("Connected to database at %q", databaseId)
}

func TestNullInput(t *testing.T) {
	testSetup(t)
	defer storage.Close()

	null := new(bytes.Buffer)
	err := listener(os.Stdout, null)
	if err != nil {
		t.Fatalf("CLI failure: %v", err)
	}
}

func TestNarrate(t *testing.T) {
	testSetup(t)
	defer storage.Close()

	in := bytes.NewBufferString("narrate\nnarrate off\nnarrate on\n")
	out := new(bytes.Buffer)
	err := listener(out, in)
	if err != nil {
		t.Fatalf("CLI failure: %v", err)
	}
	expected := "Narration is on\nNarration is off\nNarration is on\n"
	result := out.String()
	if result != expected {
		t.Errorf("Got %q, expected %q", result, expected)
	}
}

func TestUnknownCommand(t *testing.T) {
	testSetup(t)
	defer storage.Close()

	in := bytes.NewBufferString("frob\n")
	out := new(bytes.Buffer)
	err := listener(out, in)
	if err != nil {
		t.Fatalf("CLI failure: %v", err)
	}
	result := out.String()
	if !strings.HasPrefix(result, "Error: \"frob\" is not a known command\nUsage:\n") {
		t.Errorf("Unexpected usage output: %q", result)
	}
}

func TestShowSample(t *testing.T) {
	testSetup(t)
	defer storage.Close()

	info, ok := storage.LookupPuzzle("sample-1")
	if !ok {
		t.Fatalf("Library has no sample-1 puzzle.")
	}

	in := bytes.NewBufferString("show sample-1\n")
	out := new(bytes.Buffer)
	err := listener(out, in)
	if err != nil {
		t.Fatalf("CLI failure: %v", err)
	}
	expected := puzzle.GridString(info.Values)
	result := out.String()
	if result != expected {
		t.Errorf("Got %q, expected %q", result, expected)
	}
}

func TestSolveSample(t *testing.T) {
	testSetup(t)
	defer storage.Close()

	in := bytes.NewBufferString("solve sample-1\n")
	out := new(bytes.Buffer)
	err := listener(out, in)
	if err != nil {
		t.Fatalf("CLI failure: %v", err)
	}
	result := out.String()
	if !strings.Contains(result, "must be") {
		t.Errorf("Narration has no deductions: %q", result)
	}
	if !strings.Contains(result, "status: solved") {
		t.Errorf("Solve didn't finish the puzzle: %q", result)
	}
}

func TestCheckSample(t *testing.T) {
	testSetup(t)
	defer storage.Close()

	in := bytes.NewBufferString("check sample-1\n")
	out := new(bytes.Buffer)
	err := listener(out, in)
	if err != nil {
		t.Fatalf("CLI failure: %v", err)
	}
	result := out.String()
	if !strings.HasPrefix(result, "\"sample-1\" is not a finished Sudoku:\n") {
		t.Errorf("Unexpected check output: %q", result)
	}
	if !strings.Contains(result, "is missing") {
		t.Errorf("Check reported no missing values: %q", result)
	}
}

func TestSaveRemove(t *testing.T) {
	testSetup(t)
	defer storage.Close()

	// sample-1 with one more blank, so it won't collide with the library
	values := []int{
		4, 0, 0, 0, 0, 3, 5, 0, 2,
		0, 0, 9, 5, 0, 6, 3, 4, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 8,
		0, 0, 0, 0, 3, 4, 8, 6, 0,
		0, 0, 4, 6, 0, 5, 2, 0, 0,
		0, 2, 8, 7, 9, 0, 0, 0, 0,
		9, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 8, 7, 3, 0, 2, 9, 0, 0,
		5, 0, 2, 9, 0, 0, 0, 0, 0,
	}
	var command bytes.Buffer
	command.WriteString("save cli-test")
	for _, v := range values {
		fmt.Fprintf(&command, " %d", v)
	}
	command.WriteString("\nremove cli-test\nremove cli-test\n")

	out := new(bytes.Buffer)
	err := listener(out, &command)
	if err != nil {
		t.Fatalf("CLI failure: %v", err)
	}
	result := out.String()
	if !strings.HasPrefix(result, "Saved \"cli-test\":\n") {
		t.Errorf("Unexpected save output: %q", result)
	}
	if !strings.Contains(result, "Removed \"cli-test\".\n") {
		t.Errorf("Remove failed: %q", result)
	}
	if !strings.Contains(result, "No puzzle named \"cli-test\" in the library.\n") {
		t.Errorf("Second remove should have failed: %q", result)
	}
}

func TestPuzzles(t *testing.T) {
	testSetup(t)
	defer storage.Close()

	in := bytes.NewBufferString("puzzles\n")
	out := new(bytes.Buffer)
	err := listener(out, in)
	if err != nil {
		t.Fatalf("CLI failure: %v", err)
	}
	result := out.String()
	for _, name := range []string{"sample-1", "sample-6"} {
		if !strings.Contains(result, name) {
			t.Errorf("Listing is missing %q: %q", name, result)
		}
	}
}
