package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAtomicWriteFile(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		perm    os.FileMode
		wantErr bool
	}{
		{
			name:    "successful write",
			data:    []byte("hello world\n"),
			perm:    0644,
			wantErr: false,
		},
		{
			name:    "empty data",
			data:    []byte{},
			perm:    0644,
			wantErr: false,
		},
		{
			name:    "markdown document",
			data:    []byte("---\ntitle: Example\n---\nSome body text.\n"),
			perm:    0600,
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "test-file")

			err := AtomicWriteFile(path, tt.data, tt.perm)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AtomicWriteFile() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				return
			}

			// Verify content
			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading file: %v", err)
			}
			if string(got) != string(tt.data) {
				t.Errorf("content = %q, want %q", got, tt.data)
			}

			// Verify permissions
			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("stating file: %v", err)
			}
			if gotPerm := info.Mode().Perm(); gotPerm != tt.perm {
				t.Errorf("permissions = %o, want %o", gotPerm, tt.perm)
			}
		})
	}
}

func TestAtomicWriteFile_DirectoryNotExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent", "subdir", "file.txt")

	err := AtomicWriteFile(path, []byte("data"), 0600)
	if err == nil {
		t.Error("AtomicWriteFile() expected error for nonexistent directory")
	}
}

func TestAtomicWriteFile_OverwriteExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "existing-file")

	// Create original file
	original := []byte("original content\n")
	if err := os.WriteFile(path, original, 0600); err != nil {
		t.Fatalf("creating original file: %v", err)
	}

	// Overwrite with new content
	newContent := []byte("new content\n")
	if err := AtomicWriteFile(path, newContent, 0600); err != nil {
		t.Fatalf("AtomicWriteFile() error = %v", err)
	}

	// Verify new content
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	if string(got) != string(newContent) {
		t.Errorf("content = %q, want %q", got, newContent)
	}
}

func TestAtomicWriteFile_NoTempFileLeftOnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent-dir", "file.txt")

	// This should fail because parent directory doesn't exist
	_ = AtomicWriteFile(path, []byte("data"), 0600)

	// Check that no temp files are left in the temp dir
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading directory: %v", err)
	}

	for _, entry := range entries {
		if filepath.Ext(entry.Name()) == ".tmp" {
			t.Errorf("temp file left behind: %s", entry.Name())
		}
	}
}

func TestFileMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "perm-file")

	if err := os.WriteFile(path, []byte("x"), 0640); err != nil {
		t.Fatal(err)
	}

	if got := FileMode(path, 0644); got != 0640 {
		t.Errorf("FileMode() = %o, want %o", got, 0640)
	}

	// Missing file falls back
	if got := FileMode(filepath.Join(dir, "missing"), 0644); got != 0644 {
		t.Errorf("FileMode() fallback = %o, want %o", got, 0644)
	}
}
