package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tsinit-dev/tsinit/internal/execx"
)

// NPMResolver resolves versions with `npm view <pkg> version --json`.
type NPMResolver struct {
	Runner execx.Runner
	// Bin is the npm executable; defaults to "npm".
	Bin string
	// RegistryURL, when set, is passed as --registry.
	RegistryURL string
	// Timeout bounds a single lookup; zero means no limit.
	Timeout time.Duration
}

// npmError is the envelope npm prints on stdout when --json is set and the
// command fails.
type npmError struct {
	Error struct {
		Code    string `json:"code"`
		Summary string `json:"summary"`
	} `json:"error"`
}

// Latest returns the version string reported by npm for pkg.
func (n *NPMResolver) Latest(ctx context.Context, pkg string) (string, error) {
	ctx, cancel := withTimeout(ctx, n.Timeout)
	defer cancel()

	bin := n.Bin
	if bin == "" {
		bin = "npm"
	}
	args := []string{"view", pkg, "version", "--json"}
	if n.RegistryURL != "" {
		args = append(args, "--registry", n.RegistryURL)
	}

	res, err := n.Runner.Run(ctx, bin, args, execx.Opts{})
	if err != nil {
		return "", &LookupError{Package: pkg, Err: err}
	}
	if res.ExitCode != 0 {
		return "", &LookupError{Package: pkg, Err: npmFailure(res)}
	}

	var version string
	if err := json.Unmarshal([]byte(res.Stdout), &version); err != nil {
		return "", &LookupError{Package: pkg, Err: fmt.Errorf("parsing npm output %q: %w", strings.TrimSpace(res.Stdout), err)}
	}

	v, err := checkVersion(version)
	if err != nil {
		return "", &LookupError{Package: pkg, Err: err}
	}
	return v, nil
}

func npmFailure(res execx.Result) error {
	var envelope npmError
	if err := json.Unmarshal([]byte(res.Stdout), &envelope); err == nil && envelope.Error.Code != "" {
		return fmt.Errorf("npm %s: %s", envelope.Error.Code, firstLine(envelope.Error.Summary))
	}
	if msg := firstLine(res.Stderr); msg != "" {
		return fmt.Errorf("npm exited with status %d: %s", res.ExitCode, msg)
	}
	return fmt.Errorf("npm exited with status %d", res.ExitCode)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
