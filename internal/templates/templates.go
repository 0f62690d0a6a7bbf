package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

//go:generate go run ../../cmd/copy-templates -from ../../templates -to files

//go:embed files/*.json
var embedded embed.FS

// Template resource names.
const (
	BuildConfig     = "tsconfig-template.json"
	PackageManifest = "package-template.json"
)

// Placeholder token names.
const (
	TokenAppName           = "appName"
	TokenNodeTypesVersion  = "nodeTypesVersion"
	TokenTypeScriptVersion = "typescriptVersion"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// Store reads template resources from a filesystem.
type Store struct {
	fs afero.Fs
}

// New returns a Store backed by the templates embedded in the binary.
func New() *Store {
	sub, err := fs.Sub(embedded, "files")
	if err != nil {
		// files/ is embedded at compile time.
		panic(err)
	}
	return &Store{fs: afero.FromIOFS{FS: sub}}
}

// NewFromDir returns a read-only Store rooted at dir on the host filesystem.
func NewFromDir(dir string) *Store {
	return NewFromFs(afero.NewBasePathFs(afero.NewOsFs(), dir))
}

// NewFromFs returns a read-only Store rooted at fsys.
func NewFromFs(fsys afero.Fs) *Store {
	return &Store{fs: afero.NewReadOnlyFs(fsys)}
}

// Read returns the raw text of the named template. A missing resource
// yields an error matching fs.ErrNotExist.
func (s *Store) Read(name string) (string, error) {
	data, err := afero.ReadFile(s.fs, name)
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", name, err)
	}
	return string(data), nil
}

// Names lists the template resources available in the store.
func (s *Store) Names() ([]string, error) {
	entries, err := afero.ReadDir(s.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Require returns an error naming every template in names that the store
// does not hold. The error matches fs.ErrNotExist.
func (s *Store) Require(names ...string) error {
	have, err := s.Names()
	if err != nil {
		return err
	}
	present := make(map[string]bool, len(have))
	for _, n := range have {
		present[n] = true
	}
	var missing []string
	for _, n := range names {
		if !present[n] {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing templates %s: %w", strings.Join(missing, ", "), fs.ErrNotExist)
	}
	return nil
}

// UnresolvedTokenError reports placeholders still present after rendering.
type UnresolvedTokenError struct {
	Template string
	Tokens   []string
}

func (e *UnresolvedTokenError) Error() string {
	return fmt.Sprintf("template %s has unresolved placeholders: %s", e.Template, strings.Join(e.Tokens, ", "))
}

// Render substitutes every occurrence of {{key}} in text with values[key].
// name identifies the template in errors. Placeholders with no value, such as
// a misspelled token, produce an *UnresolvedTokenError.
func Render(name, text string, values map[string]string) (string, error) {
	out := placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]
		if v, ok := values[key]; ok {
			return v
		}
		return match
	})

	if left := Placeholders(out); len(left) > 0 {
		return "", &UnresolvedTokenError{Template: name, Tokens: left}
	}
	return out, nil
}

// Placeholders returns the distinct placeholder names found in text, sorted.
func Placeholders(text string) []string {
	seen := map[string]bool{}
	var names []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	sort.Strings(names)
	return names
}
