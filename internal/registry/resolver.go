package registry

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/semver/v3"
	"go.uber.org/multierr"
)

// Packages whose versions are pinned into a new project's package.json.
const (
	PackageTypeScript = "typescript"
	PackageNodeTypes  = "@types/node"
)

// Resolver looks up the latest published version of a package.
type Resolver interface {
	Latest(ctx context.Context, pkg string) (string, error)
}

// Versions maps a package name to its resolved version.
type Versions map[string]string

// LookupError reports a failed version lookup for a single package.
type LookupError struct {
	Package string
	Err     error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("resolving latest version of %s: %v", e.Package, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// ResolveAll looks up every package concurrently and waits for all lookups to
// settle. Each result lands in its own slot, so completion order does not
// matter. If any lookup fails the returned error combines every failure, in
// the order the packages were given, and Versions is nil.
func ResolveAll(ctx context.Context, r Resolver, pkgs ...string) (Versions, error) {
	versions := make([]string, len(pkgs))
	errs := make([]error, len(pkgs))

	var wg sync.WaitGroup
	for i, pkg := range pkgs {
		wg.Add(1)
		go func(i int, pkg string) {
			defer wg.Done()
			versions[i], errs[i] = r.Latest(ctx, pkg)
		}(i, pkg)
	}
	wg.Wait()

	if err := multierr.Combine(errs...); err != nil {
		return nil, err
	}

	out := make(Versions, len(pkgs))
	for i, pkg := range pkgs {
		out[pkg] = versions[i]
	}
	return out, nil
}

// checkVersion verifies the registry answered with a semantic version and
// returns it unchanged.
func checkVersion(raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", fmt.Errorf("registry returned an empty version")
	}
	if _, err := semver.StrictNewVersion(v); err != nil {
		return "", fmt.Errorf("registry returned %q, not a semantic version: %w", v, err)
	}
	return v, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
