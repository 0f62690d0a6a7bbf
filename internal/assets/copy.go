// Package assets copies template resources into the location the CLI embeds
// them from. It runs at build time through cmd/copy-templates and never on a
// user's bootstrap path.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Suffix selects which entries of the source directory are copied.
const Suffix = ".json"

// CopyJSON copies every *.json entry of srcDir into dstDir, overwriting files
// of the same name. dstDir is created (non-recursively) on the first match.
//
// Copying is best-effort: failures are logged and skipped, and the names of
// the files that were copied are returned.
func CopyJSON(fsys afero.Fs, srcDir, dstDir string, logger *zap.Logger) []string {
	if logger == nil {
		logger = zap.NewNop()
	}

	entries, err := afero.ReadDir(fsys, srcDir)
	if err != nil {
		logger.Error("error copying JSON files", zap.String("source", srcDir), zap.Error(err))
		return nil
	}

	var copied []string
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), Suffix) {
			continue
		}

		if err := ensureDir(fsys, dstDir); err != nil {
			logger.Error("error copying JSON files", zap.String("destination", dstDir), zap.Error(err))
			return copied
		}

		src := filepath.Join(srcDir, entry.Name())
		dst := filepath.Join(dstDir, entry.Name())
		if err := copyFile(fsys, src, dst); err != nil {
			logger.Error("error copying JSON file", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		logger.Debug("copied template", zap.String("from", src), zap.String("to", dst))
		copied = append(copied, entry.Name())
	}

	return copied
}

func ensureDir(fsys afero.Fs, dir string) error {
	info, err := fsys.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s exists and is not a directory", dir)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	if err := fsys.Mkdir(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}

// copyFile copies a single file from src to dst, truncating dst.
func copyFile(fsys afero.Fs, src, dst string) error {
	data, err := afero.ReadFile(fsys, src)
	if err != nil {
		return err
	}
	return afero.WriteFile(fsys, dst, data, 0644)
}
