// Package testutil has helpers shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bazelbuild/bazel-gazelle/testtools"
	"github.com/bazelbuild/rules_go/go/tools/bazel"
)

// MustPrepareTestFiles writes files under a fresh temporary directory and
// returns the directory, the absolute path of each file in order, and a
// function that removes the directory.
func MustPrepareTestFiles(t *testing.T, files []testtools.FileSpec) (tmpDir string, filenames []string, clean func()) {
	t.Helper()
	tmpDir, err := bazel.NewTmpDir("")
	if err != nil {
		t.Fatal(err)
	}
	return tmpDir, writeTestFiles(t, tmpDir, files), func() { os.RemoveAll(tmpDir) }
}

// writeTestFiles creates each file under dir. A spec marked NotExist only
// gets its parent directory, so tests can name a missing file.
func writeTestFiles(t *testing.T, dir string, files []testtools.FileSpec) []string {
	t.Helper()
	filenames := make([]string, 0, len(files))
	for _, file := range files {
		abs := filepath.Join(dir, file.Path)
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			t.Fatal(err)
		}
		if !file.NotExist {
			if err := os.WriteFile(abs, []byte(file.Content), 0o644); err != nil {
				t.Fatal(err)
			}
		}
		filenames = append(filenames, abs)
	}
	return filenames
}

// MustReadTestFile returns the content of filename, relative to dir. A
// missing file fails the test.
func MustReadTestFile(t *testing.T, dir string, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		t.Fatalf("reading %s: %v", filename, err)
	}
	return string(data)
}

// ExpectError fails the test unless want and got are both nil or carry the
// same message. It reports whether an error was expected.
func ExpectError(t *testing.T, want, got error) bool {
	t.Helper()
	if (want == nil) != (got == nil) || want != nil && want.Error() != got.Error() {
		t.Fatal("errors: want:", want, "got:", got)
	}
	return want != nil
}
