package scaffold

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/tsinit-dev/tsinit/internal/manifest"
	"github.com/tsinit-dev/tsinit/internal/registry"
	"github.com/tsinit-dev/tsinit/internal/templates"
)

// DefaultProjectName is used when the target directory has no usable
// final path segment.
const DefaultProjectName = "myapp"

// Generated file names.
const (
	BuildConfigFile     = "tsconfig.json"
	PackageManifestFile = "package.json"
)

// Output binds a template to the file it produces and the tokens it receives.
type Output struct {
	Template string
	File     string
	Tokens   []string
}

// Outputs lists the files WriteConfigs produces, in write order.
var Outputs = []Output{
	{Template: templates.BuildConfig, File: BuildConfigFile},
	{
		Template: templates.PackageManifest,
		File:     PackageManifestFile,
		Tokens: []string{
			templates.TokenAppName,
			templates.TokenNodeTypesVersion,
			templates.TokenTypeScriptVersion,
		},
	},
}

// Data holds the values substituted into the templates.
type Data struct {
	ProjectName       string
	TypeScriptVersion string
	NodeTypesVersion  string
}

// NewData derives template values for targetDir from the resolved versions.
func NewData(targetDir string, versions registry.Versions) *Data {
	return &Data{
		ProjectName:       ProjectName(targetDir),
		TypeScriptVersion: versions[registry.PackageTypeScript],
		NodeTypesVersion:  versions[registry.PackageNodeTypes],
	}
}

func (d *Data) token(name string) (string, bool) {
	switch name {
	case templates.TokenAppName:
		return d.ProjectName, true
	case templates.TokenTypeScriptVersion:
		return d.TypeScriptVersion, true
	case templates.TokenNodeTypesVersion:
		return d.NodeTypesVersion, true
	}
	return "", false
}

// ProjectName returns the final path segment of dir, or DefaultProjectName
// when there is none.
func ProjectName(dir string) string {
	if dir == "" {
		return DefaultProjectName
	}
	base := filepath.Base(filepath.Clean(dir))
	if base == "." || base == string(filepath.Separator) || base == "" {
		return DefaultProjectName
	}
	return base
}

// jsonString escapes v for use between the quotes of a JSON string.
func jsonString(v string) string {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return v
	}
	quoted := strings.TrimSuffix(b.String(), "\n")
	return quoted[1 : len(quoted)-1]
}

// Result holds the outcome of WriteConfigs.
type Result struct {
	OutputDir string
	Files     []string
	Warnings  []string
}

// Materializer renders templates from Store and writes them through Fs.
type Materializer struct {
	Fs    afero.Fs
	Store *templates.Store
}

// WriteConfigs renders every Output and writes it into targetDir,
// overwriting existing files. All templates are read and rendered before
// anything is written, so a missing or broken template leaves targetDir
// untouched. Token values are JSON-escaped, and a package.json that does not
// parse after rendering is an error.
func (m *Materializer) WriteConfigs(targetDir string, data *Data) (*Result, error) {
	rendered := make([][]byte, len(Outputs))
	for i, out := range Outputs {
		text, err := m.Store.Read(out.Template)
		if err != nil {
			return nil, err
		}

		values := make(map[string]string, len(out.Tokens))
		for _, tok := range out.Tokens {
			v, ok := data.token(tok)
			if !ok || v == "" {
				return nil, fmt.Errorf("no value for {{%s}} in %s", tok, out.Template)
			}
			values[tok] = jsonString(v)
		}

		body, err := templates.Render(out.Template, text, values)
		if err != nil {
			return nil, err
		}
		if out.File == PackageManifestFile {
			if _, err := manifest.Parse([]byte(body)); err != nil {
				return nil, fmt.Errorf("rendered %s from %s: %w", out.File, out.Template, err)
			}
		}
		rendered[i] = []byte(body)
	}

	result := &Result{OutputDir: targetDir}
	for i, out := range Outputs {
		path := filepath.Join(targetDir, out.File)
		if err := afero.WriteFile(m.Fs, path, rendered[i], 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}
		result.Files = append(result.Files, out.File)
		if out.File == PackageManifestFile {
			result.Warnings = append(result.Warnings, validatePackage(rendered[i])...)
		}
	}

	return result, nil
}

// validatePackage checks the rendered package.json against the schema and
// returns any problems as warnings.
func validatePackage(data []byte) []string {
	res, err := manifest.Validate(data)
	if err != nil {
		return []string{fmt.Sprintf("Could not validate %s: %v", PackageManifestFile, err)}
	}
	var warnings []string
	for _, issue := range res.Issues {
		warnings = append(warnings, PackageManifestFile+" "+issue.String())
	}
	return warnings
}
