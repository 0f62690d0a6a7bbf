//go:build integration

package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/tsinit-dev/tsinit/internal/bootstrap"
	"github.com/tsinit-dev/tsinit/internal/execx"
	"github.com/tsinit-dev/tsinit/internal/gitrepo"
	"github.com/tsinit-dev/tsinit/internal/registry"
	"github.com/tsinit-dev/tsinit/internal/templates"
)

// requireTools skips the test unless every named binary is on PATH.
func requireTools(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		if _, err := exec.LookPath(name); err != nil {
			t.Skipf("%s not available, skipping", name)
		}
	}
}

// realEnv wires a bootstrap environment against the host filesystem and the
// real git binary, rooted at a fresh temp directory.
func realEnv(t *testing.T, resolver registry.Resolver) *bootstrap.Env {
	t.Helper()
	fsys := afero.NewOsFs()
	runner := execx.NewOSRunner()
	return &bootstrap.Env{
		WorkDir:   t.TempDir(),
		Fs:        fsys,
		Resolver:  resolver,
		Git:       &gitrepo.Initializer{Runner: runner, Fs: fsys},
		Templates: templates.New(),
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected file at %s: %v", path, err)
		return
	}
	if info.IsDir() {
		t.Errorf("expected file at %s, found directory", path)
	}
}

func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory at %s: %v", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected directory at %s, found file", path)
	}
}

func assertNoPlaceholders(t *testing.T, path string) {
	t.Helper()
	if content := readFile(t, path); strings.Contains(content, "{{") {
		t.Errorf("%s still contains placeholders:\n%s", filepath.Base(path), content)
	}
}
