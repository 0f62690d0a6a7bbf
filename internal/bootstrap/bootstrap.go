package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/afero"
	"github.com/tsinit-dev/tsinit/internal/gitrepo"
	"github.com/tsinit-dev/tsinit/internal/registry"
	"github.com/tsinit-dev/tsinit/internal/scaffold"
	"github.com/tsinit-dev/tsinit/internal/templates"
	"go.uber.org/zap"
)

// Source layout created inside the target directory.
const (
	SourceDir  = "src"
	EntryPoint = "index.ts"
)

// CurrentDir selects the working directory as the target.
const CurrentDir = "."

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ErrInvalidName is returned for a directory name outside [a-zA-Z0-9_-].
var ErrInvalidName = errors.New("Invalid directory name. Directory names can only contain letters, numbers, underscores, and hyphens.")

// Packages are resolved in this order and pinned into package.json.
var Packages = []string{registry.PackageTypeScript, registry.PackageNodeTypes}

// GitInitializer initializes version control in a directory.
type GitInitializer interface {
	Init(ctx context.Context, dir string) error
}

// Env carries the capabilities a bootstrap run uses.
type Env struct {
	WorkDir   string
	Fs        afero.Fs
	Resolver  registry.Resolver
	Git       GitInitializer
	Templates *templates.Store
	Logger    *zap.Logger
}

// Result summarizes a bootstrap run.
type Result struct {
	TargetDir    string
	ProjectName  string
	Versions     registry.Versions
	CreatedDirs  []string // Directories that did not exist before the run.
	WrittenFiles []string // Files written or created, relative to TargetDir.
	Warnings     []string
}

// ValidateName checks a user-supplied directory name. Empty and "." are
// accepted and mean the working directory.
func ValidateName(name string) error {
	if name == "" || name == CurrentDir {
		return nil
	}
	if !namePattern.MatchString(name) {
		return ErrInvalidName
	}
	return nil
}

// TargetDir returns the directory a run with name populates.
func TargetDir(workDir, name string) string {
	if name == "" || name == CurrentDir {
		return workDir
	}
	return filepath.Join(workDir, name)
}

// Run bootstraps a project named name under env.WorkDir. The name is
// validated before anything touches the filesystem. Any failure aborts the
// run and is returned; partial output is left in place.
func Run(ctx context.Context, env *Env, name string) (*Result, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	logger := env.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	target := TargetDir(env.WorkDir, name)
	result := &Result{
		TargetDir:   target,
		ProjectName: scaffold.ProjectName(target),
	}
	logger.Debug("bootstrapping project", zap.String("target", target), zap.String("name", result.ProjectName))

	created, err := ensureDir(env.Fs, target)
	if err != nil {
		return nil, err
	}
	if created {
		result.CreatedDirs = append(result.CreatedDirs, target)
	}

	versions, err := registry.ResolveAll(ctx, env.Resolver, Packages...)
	if err != nil {
		return nil, fmt.Errorf("resolving package versions: %w", err)
	}
	result.Versions = versions
	for _, pkg := range Packages {
		logger.Debug("resolved latest version", zap.String("package", pkg), zap.String("version", versions[pkg]))
	}

	m := &scaffold.Materializer{Fs: env.Fs, Store: env.Templates}
	configs, err := m.WriteConfigs(target, scaffold.NewData(target, versions))
	if err != nil {
		return nil, fmt.Errorf("writing configuration files: %w", err)
	}
	result.WrittenFiles = append(result.WrittenFiles, configs.Files...)
	result.Warnings = append(result.Warnings, configs.Warnings...)
	logger.Debug("wrote configuration files", zap.Strings("files", configs.Files))

	if err := env.Git.Init(ctx, target); err != nil {
		return nil, err
	}
	result.WrittenFiles = append(result.WrittenFiles, gitrepo.GitignoreFile)
	logger.Debug("initialized git repository", zap.String("dir", target))

	srcDir := filepath.Join(target, SourceDir)
	created, err = ensureDir(env.Fs, srcDir)
	if err != nil {
		return nil, err
	}
	if created {
		result.CreatedDirs = append(result.CreatedDirs, srcDir)
	}

	entry := filepath.Join(SourceDir, EntryPoint)
	created, err = touch(env.Fs, filepath.Join(target, entry))
	if err != nil {
		return nil, err
	}
	if created {
		result.WrittenFiles = append(result.WrittenFiles, entry)
		logger.Debug("created entry point", zap.String("file", entry))
	} else {
		logger.Debug("entry point already exists, leaving it untouched", zap.String("file", entry))
	}

	return result, nil
}

// ensureDir creates dir (non-recursively) when it is absent and reports
// whether it did.
func ensureDir(fsys afero.Fs, dir string) (bool, error) {
	info, err := fsys.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%s exists and is not a directory", dir)
		}
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking %s: %w", dir, err)
	}
	if err := fsys.Mkdir(dir, 0o755); err != nil {
		return false, fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return true, nil
}

// touch creates an empty file at path unless something already exists there.
func touch(fsys afero.Fs, path string) (bool, error) {
	f, err := fsys.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("creating %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("closing %s: %w", path, err)
	}
	return true, nil
}
