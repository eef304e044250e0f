package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes the generated files into outputDir, creating it when
// needed, and returns the path of every file, up to date or rewritten. A
// file whose content is already on disk is left untouched so its mtime does
// not trigger rebuilds. A stale <name>.unformatted from an earlier failed run
// is removed.
func WriteFiles(files []GeneratedFile, outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, dirPerm); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	written := make([]string, 0, len(files))

	for _, file := range files {
		target := filepath.Join(outputDir, file.Filename)

		if old, err := os.ReadFile(target); err != nil || !bytes.Equal(old, file.Content) {
			if err := replaceFile(target, file.Content); err != nil {
				return written, fmt.Errorf("writing file %s: %w", file.Filename, err)
			}
		}

		written = append(written, target)

		stale := filepath.Join(outputDir, unformattedName(file.Filename))
		if err := os.Remove(stale); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return written, fmt.Errorf("removing %s: %w", stale, err)
		}
	}

	return written, nil
}

// replaceFile writes through a temporary file in the same directory so a
// failed run never leaves a truncated codec behind.
func replaceFile(target string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*")
	if err != nil {
		return err
	}

	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Chmod(filePerm); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), target)
}

// unformattedName is not a .go file so that it never breaks the build of
// the output package.
func unformattedName(filename string) string {
	return filename + ".unformatted"
}

// writeUnformatted leaves the source go/format rejected next to the intended
// output.
func writeUnformatted(outDir, filename string, content []byte) error {
	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(outDir, unformattedName(filename)), content, filePerm)
}
