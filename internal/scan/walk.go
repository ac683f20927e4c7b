package scan

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// walk lists the regular files under root using an explicit stack of
// pending directories. Directories below root that cannot be read are
// skipped; root itself must be readable.
//
// Directory symlinks are only descended when following is enabled, and
// then each canonical directory is visited at most once.
func (s *Scanner) walk(ctx context.Context, root string, stats *Stats) ([]string, error) {
	log := s.opts.logger
	visited := make(map[string]struct{})
	if s.opts.followSymlinks {
		firstVisit(visited, root)
	}

	var files []string
	stack := []string{root}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			if dir == root {
				return nil, fmt.Errorf("read directory %s: %w", root, err)
			}
			log.Debug("skipping unreadable directory", slog.String("path", dir), slog.Any("error", err))
			continue
		}
		stats.Dirs++

		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			mode := entry.Type()

			if mode&fs.ModeSymlink != 0 {
				info, err := os.Stat(path)
				if err != nil {
					log.Debug("skipping dangling symlink", slog.String("path", path), slog.Any("error", err))
					continue
				}
				mode = info.Mode().Type()
				if mode.IsDir() && !s.opts.followSymlinks {
					log.Debug("not following directory symlink", slog.String("path", path))
					continue
				}
			}

			switch {
			case mode.IsDir():
				if s.opts.followSymlinks && !firstVisit(visited, path) {
					log.Debug("directory already visited", slog.String("path", path))
					continue
				}
				stack = append(stack, path)
			case mode.IsRegular():
				stats.Seen++
				files = append(files, path)
			}
		}
	}
	return files, nil
}

// firstVisit records dir's canonical path and reports whether it was new.
// A directory whose canonical path cannot be resolved is treated as new.
func firstVisit(visited map[string]struct{}, dir string) bool {
	canonical, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return true
	}
	if abs, err := filepath.Abs(canonical); err == nil {
		canonical = abs
	}
	if _, seen := visited[canonical]; seen {
		return false
	}
	visited[canonical] = struct{}{}
	return true
}
