// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff compares command and library output against golden
// files in tests.
package diff

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

// Diff returns a human-readable description of the differences
// between old and new, or "" if they are equal. If the "diff" command
// is available, it returns the output of unified diff.
func Diff(oldName string, old []byte, newName string, new []byte) string {
	if bytes.Equal(old, new) {
		return ""
	}
	if _, err := exec.LookPath("diff"); err != nil {
		return fmt.Sprintf("diff command unavailable\n%s: %q\n%s: %q", oldName, old, newName, new)
	}

	d, err := os.MkdirTemp("", "benchtools-diff")
	if err != nil {
		return err.Error()
	}
	defer os.RemoveAll(d)
	if err := os.WriteFile(filepath.Join(d, oldName), old, 0666); err != nil {
		return err.Error()
	}
	if err := os.WriteFile(filepath.Join(d, newName), new, 0666); err != nil {
		return err.Error()
	}

	cmd := "diff"
	if runtime.GOOS == "plan9" {
		cmd = "/bin/ape/diff"
	}
	c := exec.Command(cmd, "-Nu", oldName, newName)
	c.Dir = d
	data, err := c.CombinedOutput()
	if len(data) > 0 {
		// diff exits with a non-zero status when the files don't match.
		// Ignore that failure as long as we get output.
		err = nil
	}
	if err != nil {
		data = append(data, []byte(err.Error())...)
	}
	return string(data)
}

// Golden reports a test error if got differs from the contents of the
// file at path. A missing golden file is treated as empty. On
// mismatch, got is written next to the golden file with a ".got"
// suffix for reference.
func Golden(t testing.TB, path string, got []byte) {
	t.Helper()
	want, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		t.Fatal(err)
	}
	d := Diff("want", want, "got", got)
	if d == "" {
		return
	}
	t.Errorf("%s:\n%s", path, d)

	gotPath := path + ".got"
	if err := os.WriteFile(gotPath, got, 0666); err != nil {
		t.Fatalf("error writing %s: %s", gotPath, err)
	}
}
