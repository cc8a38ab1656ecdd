package discovery_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"chartsmith/internal/discovery"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("MThd"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestFindMatchesCaseInsensitivelyAtAnyDepth(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "bandA", "merged.mid"))
	touch(t, filepath.Join(root, "bandB", "deep", "er", "MERGED.MID"))
	touch(t, filepath.Join(root, "bandC", "merged.midi"))
	touch(t, filepath.Join(root, "bandC", "bass", "basic_pitch.mid"))
	if err := os.MkdirAll(filepath.Join(root, "merged.mid.d"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := discovery.Find(root)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	want := []string{
		filepath.Join(root, "bandA", "merged.mid"),
		filepath.Join(root, "bandB", "deep", "er", "MERGED.MID"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Find mismatch (-want +got):\n%s", diff)
	}
}

func TestFindMissingRootIsEmpty(t *testing.T) {
	got, err := discovery.Find(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no inputs, got %v", got)
	}
}

func TestFindSkipsDirectoryNamedLikeTarget(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "merged.mid"), 0o755); err != nil {
		t.Fatal(err)
	}
	got, err := discovery.Find(root)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("directories must not match, got %v", got)
	}
}

func TestGroupName(t *testing.T) {
	root := filepath.FromSlash("/in")
	tests := []struct {
		input string
		want  string
	}{
		{"/in/bandA/merged.mid", "bandA"},
		{"/in/Artist - Song/stems/merged/merged.mid", "Artist - Song"},
		{"/in/merged.mid", "in"},
	}
	for _, tc := range tests {
		if got := discovery.GroupName(root, filepath.FromSlash(tc.input)); got != tc.want {
			t.Errorf("GroupName(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
