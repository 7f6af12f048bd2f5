package main

import (
	"os"
	"path/filepath"
	"strings"
)

// resolvePath maps a request target onto the filesystem, confined to the
// canonical root. The returned path is symlink-resolved and guaranteed to
// be the root itself or a descendant of it; ok is false for empty
// targets, nonexistent paths, and anything that escapes the root. The
// caller treats every failure as "not found" so traversal attempts are
// indistinguishable from missing files.
func resolvePath(root, target string) (fsPath string, isDir bool, ok bool) {
	if target == "" {
		return "", false, false
	}

	p := targetPath(target)
	joined := filepath.Join(root, strings.TrimPrefix(p, "/"))

	resolved, err := filepath.EvalSymlinks(joined)
	if err != nil {
		return "", false, false
	}

	// Separator-aware containment: "<root>-evil" must not pass for "<root>".
	if resolved != root && !strings.HasPrefix(resolved, root+string(filepath.Separator)) {
		return "", false, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", false, false
	}
	return resolved, info.IsDir(), true
}
