package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultRegistryURL is the public npm registry.
const DefaultRegistryURL = "https://registry.npmjs.org"

// HTTPResolver resolves versions through the registry's "latest" dist-tag
// endpoint, without requiring npm to be installed.
type HTTPResolver struct {
	Client *http.Client
	// BaseURL defaults to DefaultRegistryURL.
	BaseURL string
	// Timeout bounds a single lookup; zero means no limit.
	Timeout time.Duration
}

type latestDocument struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Latest fetches <BaseURL>/<pkg>/latest and returns its version field.
func (h *HTTPResolver) Latest(ctx context.Context, pkg string) (string, error) {
	ctx, cancel := withTimeout(ctx, h.Timeout)
	defer cancel()

	base := h.BaseURL
	if base == "" {
		base = DefaultRegistryURL
	}
	endpoint := strings.TrimRight(base, "/") + "/" + url.PathEscape(pkg) + "/latest"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", &LookupError{Package: pkg, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "tsinit")

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", &LookupError{Package: pkg, Err: fmt.Errorf("fetching %s: %w", endpoint, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", &LookupError{Package: pkg, Err: fmt.Errorf("package not found in registry")}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &LookupError{Package: pkg, Err: fmt.Errorf("registry returned status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &LookupError{Package: pkg, Err: fmt.Errorf("reading response body: %w", err)}
	}

	var doc latestDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", &LookupError{Package: pkg, Err: fmt.Errorf("parsing registry JSON: %w", err)}
	}

	v, err := checkVersion(doc.Version)
	if err != nil {
		return "", &LookupError{Package: pkg, Err: err}
	}
	return v, nil
}
