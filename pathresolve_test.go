package main

import (
	"os"
	"path/filepath"
	"testing"
)

// resolveRoot builds a canonical content root with a file, a nested
// directory, and a sibling directory sharing the root as a name prefix.
func resolveRoot(t *testing.T) (root, sibling string) {
	t.Helper()
	parent := t.TempDir()

	root = filepath.Join(parent, "www")
	sibling = filepath.Join(parent, "www-evil")
	for _, dir := range []string{root, filepath.Join(root, "sub"), sibling} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	for path, data := range map[string]string{
		filepath.Join(root, "file.txt"):          "contents",
		filepath.Join(root, "sub", "nested.txt"): "nested",
		filepath.Join(sibling, "secret.txt"):     "secret",
	} {
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
	}

	// Canonicalize the way newServer does, so containment compares like
	// with like on systems where TempDir itself contains symlinks.
	canon, err := filepath.EvalSymlinks(root)
	if err != nil {
		t.Fatal(err)
	}
	return canon, sibling
}

func TestResolveValidTargets(t *testing.T) {
	root, _ := resolveRoot(t)

	tests := []struct {
		target string
		isDir  bool
	}{
		{"/", true},
		{"/file.txt", false},
		{"/file.txt?download=1", false},
		{"/sub", true},
		{"/sub/", true},
		{"/sub/nested.txt", false},
		{"/./sub/../file.txt", false},
	}
	for _, tt := range tests {
		fsPath, isDir, ok := resolvePath(root, tt.target)
		if !ok {
			t.Errorf("resolvePath(%q) unexpectedly failed", tt.target)
			continue
		}
		if isDir != tt.isDir {
			t.Errorf("resolvePath(%q) isDir = %v, want %v", tt.target, isDir, tt.isDir)
		}
		if fsPath != root && !filepath.IsAbs(fsPath) {
			t.Errorf("resolvePath(%q) returned non-absolute path %q", tt.target, fsPath)
		}
	}
}

func TestResolveRejectsEscapes(t *testing.T) {
	root, _ := resolveRoot(t)

	for _, target := range []string{
		"",
		"/../../etc/passwd",
		"/../www-evil/secret.txt",
		"/%2e%2e/%2e%2e/etc/passwd",
		"/missing.txt",
		"/sub/missing/deeper.txt",
	} {
		if fsPath, _, ok := resolvePath(root, target); ok {
			t.Errorf("resolvePath(%q) = %q, want rejection", target, fsPath)
		}
	}
}

func TestResolvePercentDecoding(t *testing.T) {
	root, _ := resolveRoot(t)
	if err := os.WriteFile(filepath.Join(root, "my file.txt"), []byte("spaced"), 0644); err != nil {
		t.Fatal(err)
	}

	fsPath, isDir, ok := resolvePath(root, "/my%20file.txt")
	if !ok || isDir {
		t.Fatalf("resolvePath(/my%%20file.txt) = %q %v %v", fsPath, isDir, ok)
	}
	if filepath.Base(fsPath) != "my file.txt" {
		t.Errorf("decoded to wrong file: %q", fsPath)
	}
}

func TestResolveRejectsSymlinkEscape(t *testing.T) {
	root, sibling := resolveRoot(t)

	link := filepath.Join(root, "sneaky")
	if err := os.Symlink(sibling, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	if fsPath, _, ok := resolvePath(root, "/sneaky/secret.txt"); ok {
		t.Errorf("symlink escape resolved to %q, want rejection", fsPath)
	}
}
