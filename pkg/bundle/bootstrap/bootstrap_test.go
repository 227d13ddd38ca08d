package bootstrap

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	bundleErrors "github.com/Motmedel/bundle_server/pkg/bundle/errors"
	"github.com/google/go-cmp/cmp"
)

func TestEnsureRootDirectory(t *testing.T) {
	t.Parallel()

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		directory := filepath.Join(t.TempDir(), "nested", "Build")

		created, err := EnsureRootDirectory(directory)
		if err != nil {
			t.Fatalf("ensure root directory: %v", err)
		}
		if !created {
			t.Fatalf("expected the directory to be created")
		}

		data, err := os.ReadFile(filepath.Join(directory, PlaceholderFileName))
		if err != nil {
			t.Fatalf("os read file: %v", err)
		}

		expected, err := MakePlaceholder(directory)
		if err != nil {
			t.Fatalf("make placeholder: %v", err)
		}
		if diff := cmp.Diff(string(expected), string(data)); diff != "" {
			t.Errorf("placeholder mismatch (-expected +got):\n%s", diff)
		}
		if !bytes.Contains(data, []byte("<code>Build</code>")) {
			t.Errorf("expected the placeholder to name the directory")
		}
	})

	t.Run("existing directory", func(t *testing.T) {
		t.Parallel()

		directory := t.TempDir()

		created, err := EnsureRootDirectory(directory)
		if err != nil {
			t.Fatalf("ensure root directory: %v", err)
		}
		if created {
			t.Errorf("expected an existing directory to be left alone")
		}

		if _, err := os.Stat(filepath.Join(directory, PlaceholderFileName)); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected no placeholder, got stat error %v", err)
		}
	})

	t.Run("file in the way", func(t *testing.T) {
		t.Parallel()

		filePath := filepath.Join(t.TempDir(), "Build")
		if err := os.WriteFile(filePath, []byte("x"), 0o644); err != nil {
			t.Fatalf("os write file: %v", err)
		}

		_, err := EnsureRootDirectory(filePath)
		if !errors.Is(err, bundleErrors.ErrNotDirectory) {
			t.Errorf("expected %v, got %v", bundleErrors.ErrNotDirectory, err)
		}
	})

	t.Run("empty directory name", func(t *testing.T) {
		t.Parallel()

		_, err := EnsureRootDirectory("")
		if !errors.Is(err, bundleErrors.ErrEmptyRootDirectory) {
			t.Errorf("expected %v, got %v", bundleErrors.ErrEmptyRootDirectory, err)
		}
	})
}
