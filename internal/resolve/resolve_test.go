package resolve

import (
	"os"
	"path/filepath"
	"testing"
)

// memFS is an in-memory directory listing. Paths are compared after
// filepath.Clean; aliases map a path to the entry it resolves to.
type memFS struct {
	files   map[string]bool
	aliases map[string]string
	queries int
}

func newMemFS(paths ...string) *memFS {
	m := &memFS{files: make(map[string]bool), aliases: make(map[string]string)}
	for _, p := range paths {
		m.files[filepath.Clean(p)] = true
	}
	return m
}

func (m *memFS) Exists(path string) (bool, error) {
	m.queries++
	return m.files[filepath.Clean(path)], nil
}

func (m *memFS) SameFile(a, b string) (bool, error) {
	return m.canonical(a) == m.canonical(b), nil
}

func (m *memFS) canonical(p string) string {
	p = filepath.Clean(p)
	if target, ok := m.aliases[p]; ok {
		return target
	}
	return p
}

func TestUniqueReturnsOriginalWhenStemMatches(t *testing.T) {
	fsys := newMemFS("dir/My File.txt")
	got, err := Unique(fsys, "dir/My File.txt", "My File")
	if err != nil {
		t.Fatalf("Unique failed: %v", err)
	}
	if got != "dir/My File.txt" {
		t.Fatalf("Expected original path, got %q", got)
	}
	if fsys.queries != 0 {
		t.Fatalf("Expected no existence checks, got %d", fsys.queries)
	}
}

func TestUniqueFreeName(t *testing.T) {
	fsys := newMemFS("dir/My File!!.txt")
	got, err := Unique(fsys, "dir/My File!!.txt", "My File")
	if err != nil {
		t.Fatalf("Unique failed: %v", err)
	}
	if expected := filepath.Join("dir", "My File.txt"); got != expected {
		t.Fatalf("Expected %q, got %q", expected, got)
	}
}

func TestUniqueAppendsCounterOnCollision(t *testing.T) {
	fsys := newMemFS("dir/Y.txt", "dir/X.txt", "dir/X(1).txt")
	got, err := Unique(fsys, "dir/Y.txt", "X")
	if err != nil {
		t.Fatalf("Unique failed: %v", err)
	}
	if expected := filepath.Join("dir", "X(2).txt"); got != expected {
		t.Fatalf("Expected %q, got %q", expected, got)
	}
}

func TestUniqueWithoutExtension(t *testing.T) {
	fsys := newMemFS("dir/read me!", "dir/read me")
	got, err := Unique(fsys, "dir/read me!", "read me")
	if err != nil {
		t.Fatalf("Unique failed: %v", err)
	}
	if expected := filepath.Join("dir", "read me(1)"); got != expected {
		t.Fatalf("Expected %q, got %q", expected, got)
	}
}

func TestUniqueIgnoresCollisionWithItself(t *testing.T) {
	// "dir/alias.txt" resolves to the original file, e.g. through a symlink.
	fsys := newMemFS("dir/a_b.txt", "dir/a b.txt")
	fsys.aliases[filepath.Clean("dir/a b.txt")] = filepath.Clean("dir/a_b.txt")

	got, err := Unique(fsys, "dir/a_b.txt", "a b")
	if err != nil {
		t.Fatalf("Unique failed: %v", err)
	}
	if expected := filepath.Join("dir", "a b.txt"); got != expected {
		t.Fatalf("Expected %q, got %q", expected, got)
	}
}

func TestUniqueOnDisk(t *testing.T) {
	dir := t.TempDir()
	f1 := filepath.Join(dir, "Y.txt")
	f2 := filepath.Join(dir, "X.txt")
	for _, p := range []string{f1, f2} {
		if err := os.WriteFile(p, []byte(filepath.Base(p)), 0644); err != nil {
			t.Fatalf("Failed to create %s: %v", p, err)
		}
	}

	got, err := Unique(OS{}, f1, "X")
	if err != nil {
		t.Fatalf("Unique failed: %v", err)
	}
	if expected := filepath.Join(dir, "X(1).txt"); got != expected {
		t.Fatalf("Expected %q, got %q", expected, got)
	}
}

func TestOSExistsCountsDanglingSymlink(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "link.txt")
	if err := os.Symlink(filepath.Join(dir, "missing"), link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	exists, err := OS{}.Exists(link)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Fatal("Expected dangling symlink to count as existing")
	}
}

func TestOSSameFileThroughSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	if err := os.WriteFile(target, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link.txt")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	same, err := OS{}.SameFile(link, target)
	if err != nil {
		t.Fatalf("SameFile failed: %v", err)
	}
	if !same {
		t.Fatal("Expected symlink and target to be the same file")
	}

	other := filepath.Join(dir, "other.txt")
	if err := os.WriteFile(other, []byte("y"), 0644); err != nil {
		t.Fatal(err)
	}
	same, err = OS{}.SameFile(other, target)
	if err != nil {
		t.Fatalf("SameFile failed: %v", err)
	}
	if same {
		t.Fatal("Expected distinct files to differ")
	}
}
