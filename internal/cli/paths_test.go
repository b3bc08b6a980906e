package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/xdg-cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestGalleryDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")

	dir, err := galleryDir()
	if err != nil {
		t.Fatalf("galleryDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".local", "share", appName, "gallery")
	if dir != expected {
		t.Errorf("galleryDir() = %q, want %q", dir, expected)
	}
}

func TestGalleryDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	dir, err := galleryDir()
	if err != nil {
		t.Fatalf("galleryDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/xdg-data", appName, "gallery"); dir != want {
		t.Errorf("galleryDir() = %q, want %q", dir, want)
	}
}
