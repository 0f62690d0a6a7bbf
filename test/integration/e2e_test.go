//go:build integration

package integration_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tsinit-dev/tsinit/internal/bootstrap"
	"github.com/tsinit-dev/tsinit/internal/execx"
	"github.com/tsinit-dev/tsinit/internal/manifest"
	"github.com/tsinit-dev/tsinit/internal/registry"
)

// TestBootstrapWithNPM runs the full flow against the real npm registry:
// resolve versions -> write configs -> git init -> create src/index.ts.
func TestBootstrapWithNPM(t *testing.T) {
	requireTools(t, "git", "npm")

	resolver := &registry.NPMResolver{Runner: execx.NewOSRunner(), Timeout: 2 * time.Minute}
	env := realEnv(t, resolver)

	result, err := bootstrap.Run(context.Background(), env, "my-app")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	target := filepath.Join(env.WorkDir, "my-app")
	assertFileExists(t, filepath.Join(target, "tsconfig.json"))
	assertFileExists(t, filepath.Join(target, "package.json"))
	assertFileExists(t, filepath.Join(target, ".gitignore"))
	assertFileExists(t, filepath.Join(target, "src", "index.ts"))
	assertDirExists(t, filepath.Join(target, ".git"))
	assertNoPlaceholders(t, filepath.Join(target, "package.json"))

	pkg, err := manifest.Parse([]byte(readFile(t, filepath.Join(target, "package.json"))))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if pkg.Name != "my-app" {
		t.Errorf("name = %q, want my-app", pkg.Name)
	}
	for _, name := range bootstrap.Packages {
		if !strings.Contains(pkg.DevDependencies[name], result.Versions[name]) {
			t.Errorf("%s = %q, want resolved %q", name, pkg.DevDependencies[name], result.Versions[name])
		}
	}
}

// TestBootstrapWithHTTPRegistry resolves versions through the registry API
// instead of npm.
func TestBootstrapWithHTTPRegistry(t *testing.T) {
	requireTools(t, "git")

	env := realEnv(t, &registry.HTTPResolver{Timeout: time.Minute})

	if _, err := bootstrap.Run(context.Background(), env, "."); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := readFile(t, filepath.Join(env.WorkDir, ".gitignore")); got != "node_modules\ndist" {
		t.Errorf(".gitignore = %q", got)
	}
	assertDirExists(t, filepath.Join(env.WorkDir, ".git"))
}

// TestBootstrapUnknownPackageFails points the resolver at a package that does
// not exist and checks nothing is written.
func TestBootstrapUnknownPackageFails(t *testing.T) {
	requireTools(t, "git", "npm")

	failing := registryFunc(func(ctx context.Context, pkg string) (string, error) {
		if pkg == registry.PackageNodeTypes {
			pkg = "tsinit-this-package-does-not-exist-9f2c"
		}
		return (&registry.NPMResolver{Runner: execx.NewOSRunner()}).Latest(ctx, pkg)
	})
	env := realEnv(t, failing)

	if _, err := bootstrap.Run(context.Background(), env, "broken"); err == nil {
		t.Fatal("expected error for unknown package")
	}
	target := filepath.Join(env.WorkDir, "broken")
	assertDirExists(t, target)
	if _, err := os.Stat(filepath.Join(target, "package.json")); err == nil {
		t.Error("package.json should not be written")
	}
}

type registryFunc func(ctx context.Context, pkg string) (string, error)

func (f registryFunc) Latest(ctx context.Context, pkg string) (string, error) { return f(ctx, pkg) }
