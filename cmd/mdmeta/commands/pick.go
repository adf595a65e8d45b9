package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"golang.org/x/term"

	"github.com/thoreinstein/mdmeta/internal/errors"
	"github.com/thoreinstein/mdmeta/pkg/fileutil"
)

// previewLimit caps how much of a candidate file the picker preview shows.
const previewLimit = 2048

// pickMarkdownFile lets the user choose a markdown file beneath the working
// directory when no FILENAME argument was given. Requires an interactive
// terminal.
func pickMarkdownFile() (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.NewUserError(errors.New("FILENAME is required"),
			"Pass a markdown file, or run from a terminal to pick one interactively")
	}

	files, err := findMarkdownFiles(".")
	if err != nil {
		return "", errors.Wrap(err, "scanning for markdown files")
	}
	if len(files) == 0 {
		return "", errors.NewUserError(errors.New("no markdown files found"),
			"Run mdmeta from a directory containing .md files, or pass a path")
	}

	idx, err := fuzzyfinder.Find(
		files,
		func(i int) string {
			return files[i]
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return previewFile(files[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", errors.NewUserError(errors.New("no file selected"), "")
		}
		return "", errors.Wrap(err, "interactive file selection failed")
	}

	return files[idx], nil
}

// findMarkdownFiles walks root collecting .md files, skipping hidden
// directories.
func findMarkdownFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(name), ".md") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// previewFile returns the head of the file for the picker's preview pane.
func previewFile(path string) string {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return fmt.Sprintf("cannot read %s: %v", path, err)
	}
	if len(data) > previewLimit {
		data = data[:previewLimit]
	}
	return string(data)
}
