package walk

import (
	"errors"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

var errStop = errors.New("walk stopped")

type walkStorage struct {
	fs  afero.Fs
	log *slog.Logger
}

func NewWalkStorage(fs afero.Fs, log *slog.Logger) *walkStorage {
	return &walkStorage{
		fs:  fs,
		log: log.With(slog.String("item", "WalkStorage")),
	}
}

// Scan yields root and every path below it, names sorted within each
// directory. Entries that cannot be read are left out and the walk goes on.
// Symlinks below root are not followed; root itself always is.
func (w *walkStorage) Scan(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		walkRoot := w.resolveRoot(root)

		err := afero.Walk(w.fs, walkRoot, func(path string, _ os.FileInfo, err error) error {
			if path == walkRoot {
				path = root
			}

			if err != nil {
				w.log.Debug("Skip unreadable entry", slog.String("path", path), slog.Any("error", err))

				return nil
			}

			if !yield(path) {
				return errStop
			}

			return nil
		})

		if err != nil && !errors.Is(err, errStop) {
			w.log.Debug("Walk interrupted", slog.String("root", root), slog.Any("error", err))
		}
	}
}

// resolveRoot returns a path afero.Walk will descend into when root is a
// symlink to a directory. A trailing separator makes lstat follow the link.
func (w *walkStorage) resolveRoot(root string) string {
	lfs, ok := w.fs.(afero.Lstater)
	if !ok {
		return root
	}

	info, _, err := lfs.LstatIfPossible(root)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return root
	}

	target, err := w.fs.Stat(root)
	if err != nil || !target.IsDir() {
		return root
	}

	return strings.TrimRight(root, string(filepath.Separator)) + string(filepath.Separator)
}
