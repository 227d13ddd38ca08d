package bootstrap

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	bundleErrors "github.com/Motmedel/bundle_server/pkg/bundle/errors"
	bundleServerErrors "github.com/Motmedel/bundle_server/pkg/errors"
	bundleServerOs "github.com/Motmedel/bundle_server/pkg/os"
)

const (
	PlaceholderFileName = "index.html"
	directoryMode       = 0o755
	fileMode            = 0o644
)

//go:embed templates/index.html
var templatesFs embed.FS

var placeholderTemplate = template.Must(template.ParseFS(templatesFs, "templates/index.html"))

type placeholderData struct {
	Directory   string
	ProductName string
}

func MakePlaceholder(directory string) ([]byte, error) {
	var buffer bytes.Buffer
	data := &placeholderData{Directory: filepath.Base(filepath.Clean(directory)), ProductName: "YourGame"}
	if err := placeholderTemplate.Execute(&buffer, data); err != nil {
		return nil, bundleServerErrors.NewWithTrace(fmt.Errorf("template execute: %w", err), directory)
	}
	return buffer.Bytes(), nil
}

// EnsureRootDirectory creates a missing root directory together with a placeholder index page. An existing directory
// is left as it is. The returned flag reports whether anything was created.
func EnsureRootDirectory(directory string) (bool, error) {
	if directory == "" {
		return false, bundleServerErrors.NewWithTrace(bundleErrors.ErrEmptyRootDirectory)
	}

	if bundleServerOs.Exists(directory) {
		if !bundleServerOs.IsDir(directory) {
			return false, bundleServerErrors.NewWithTrace(bundleErrors.ErrNotDirectory, directory)
		}
		return false, nil
	}

	if err := os.MkdirAll(directory, directoryMode); err != nil {
		return false, bundleServerErrors.New(fmt.Errorf("os mkdir all: %w", err), directory)
	}

	placeholder, err := MakePlaceholder(directory)
	if err != nil {
		return true, fmt.Errorf("make placeholder: %w", err)
	}

	placeholderPath := filepath.Join(directory, PlaceholderFileName)
	if err := os.WriteFile(placeholderPath, placeholder, fileMode); err != nil {
		return true, bundleServerErrors.New(fmt.Errorf("os write file: %w", err), placeholderPath)
	}

	return true, nil
}
