// Package gitrepo initializes a git repository in a freshly bootstrapped
// project and writes its ignore rules.
package gitrepo

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/tsinit-dev/tsinit/internal/execx"
)

// GitignoreFile is the ignore-rules file written into the project.
const GitignoreFile = ".gitignore"

// GitignoreContent is written verbatim, replacing any existing file.
const GitignoreContent = "node_modules\ndist"

// Initializer runs `git init` and writes .gitignore.
type Initializer struct {
	Runner execx.Runner
	Fs     afero.Fs
	// Bin is the git executable; defaults to "git".
	Bin string
}

// Init initializes a repository in dir and writes the ignore rules. It waits
// for git to exit; a missing binary or non-zero exit is returned as an error
// and .gitignore is not written.
func (i *Initializer) Init(ctx context.Context, dir string) error {
	bin := i.Bin
	if bin == "" {
		bin = "git"
	}

	if _, err := execx.Check(ctx, i.Runner, bin, []string{"init"}, execx.Opts{Dir: dir}); err != nil {
		return fmt.Errorf("initializing git repository in %s: %w", dir, err)
	}

	return WriteGitignore(i.Fs, dir)
}

// WriteGitignore writes GitignoreContent to dir/.gitignore.
func WriteGitignore(fsys afero.Fs, dir string) error {
	path := filepath.Join(dir, GitignoreFile)
	if err := afero.WriteFile(fsys, path, []byte(GitignoreContent), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
