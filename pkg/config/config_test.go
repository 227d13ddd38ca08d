package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	configErrors "github.com/Motmedel/bundle_server/pkg/config/errors"
	bundleServerEnvErrors "github.com/Motmedel/bundle_server/pkg/env/errors"
	bundleServerLog "github.com/Motmedel/bundle_server/pkg/log"
	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bundle_server.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("os write file: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()

	for _, name := range []string{EnvHost, EnvPort, EnvDirectory, EnvDirectoryListing, EnvLogLevel, EnvLogFormat, EnvIndexFiles} {
		t.Setenv(name, "")
	}
}

func TestApplyArgs(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		args     []string
		expected *Config
		wantErr  error
	}{
		{
			name:     "no arguments",
			expected: New(),
		},
		{
			name:     "port",
			args:     []string{"9000"},
			expected: &Config{Port: 9000, Directory: DefaultDirectory},
		},
		{
			name:     "directory",
			args:     []string{"dist"},
			expected: &Config{Port: DefaultPort, Directory: "dist"},
		},
		{
			name:     "port and directory",
			args:     []string{"9000", "dist"},
			expected: &Config{Port: 9000, Directory: "dist"},
		},
		{
			name:    "non-numeric port with directory",
			args:    []string{"abc", "dist"},
			wantErr: configErrors.ErrInvalidPort,
		},
		{
			name:    "too many",
			args:    []string{"9000", "dist", "extra"},
			wantErr: configErrors.ErrTooManyArguments,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			config := New()
			err := config.ApplyArgs(testCase.args)
			if testCase.wantErr != nil {
				if !errors.Is(err, testCase.wantErr) {
					t.Fatalf("expected error %v, got %v", testCase.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("apply args: %v", err)
			}

			if diff := cmp.Diff(testCase.expected.Port, config.Port); diff != "" {
				t.Errorf("port mismatch (-expected +got):\n%s", diff)
			}
			if diff := cmp.Diff(testCase.expected.Directory, config.Directory); diff != "" {
				t.Errorf("directory mismatch (-expected +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeFile(t *testing.T) {
	t.Parallel()

	t.Run("known keys", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, `
host = "127.0.0.1"
port = 8080
directory = "WebGL"
directory_listing = false
index_files = ["main.html"]
log_level = "debug"
log_format = "json"
shutdown_timeout_seconds = 10
`)

		config := New()
		if err := config.DecodeFile(path); err != nil {
			t.Fatalf("decode file: %v", err)
		}

		expected := &Config{
			Host:                   "127.0.0.1",
			Port:                   8080,
			Directory:              "WebGL",
			DirectoryListing:       false,
			IndexFiles:             []string{"main.html"},
			LogLevel:               "debug",
			LogFormat:              "json",
			ShutdownTimeoutSeconds: 10,
		}
		if diff := cmp.Diff(expected, config); diff != "" {
			t.Errorf("config mismatch (-expected +got):\n%s", diff)
		}
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		t.Parallel()

		config := New()
		if err := config.DecodeFile(writeFile(t, "port = 9001\n")); err != nil {
			t.Fatalf("decode file: %v", err)
		}

		expected := New()
		expected.Port = 9001
		if diff := cmp.Diff(expected, config); diff != "" {
			t.Errorf("config mismatch (-expected +got):\n%s", diff)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		err := New().DecodeFile(writeFile(t, "prot = 9001\n"))
		if !errors.Is(err, configErrors.ErrUndecodedKeys) {
			t.Errorf("expected error %v, got %v", configErrors.ErrUndecodedKeys, err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		err := New().DecodeFile(filepath.Join(t.TempDir(), "missing.toml"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected error %v, got %v", os.ErrNotExist, err)
		}
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{name: "defaults", modify: func(*Config) {}},
		{name: "port too large", modify: func(c *Config) { c.Port = 65536 }, wantErr: configErrors.ErrInvalidPort},
		{name: "negative port", modify: func(c *Config) { c.Port = -1 }, wantErr: configErrors.ErrInvalidPort},
		{name: "empty directory", modify: func(c *Config) { c.Directory = "" }, wantErr: configErrors.ErrEmptyDirectory},
		{
			name:    "negative timeout",
			modify:  func(c *Config) { c.ShutdownTimeoutSeconds = -1 },
			wantErr: configErrors.ErrInvalidTimeout,
		},
		{
			name:    "index file with separator",
			modify:  func(c *Config) { c.IndexFiles = []string{"../index.html"} },
			wantErr: configErrors.ErrInvalidIndexFile,
		},
		{
			name:    "empty index file",
			modify:  func(c *Config) { c.IndexFiles = []string{""} },
			wantErr: configErrors.ErrInvalidIndexFile,
		},
		{name: "no index files", modify: func(c *Config) { c.IndexFiles = nil }},
		{
			name:    "unknown format",
			modify:  func(c *Config) { c.LogFormat = "xml" },
			wantErr: bundleServerLog.ErrUnknownFormat,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			config := New()
			testCase.modify(config)

			err := config.Validate()
			if testCase.wantErr == nil {
				if err != nil {
					t.Errorf("validate: %v", err)
				}
				return
			}
			if !errors.Is(err, testCase.wantErr) {
				t.Errorf("expected error %v, got %v", testCase.wantErr, err)
			}
		})
	}

	t.Run("unknown level", func(t *testing.T) {
		t.Parallel()

		config := New()
		config.LogLevel = "loud"
		if err := config.Validate(); err == nil {
			t.Errorf("expected an error for an unknown log level")
		}
	})
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)

	path := writeFile(t, "port = 8100\ndirectory = \"FromFile\"\nlog_level = \"warn\"\n")

	t.Setenv(EnvPort, "8200")
	t.Setenv(EnvDirectoryListing, "false")
	t.Setenv(EnvIndexFiles, "main.html, ,index.html")

	config, err := Load(path, []string{"FromArgs"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	expected := &Config{
		Port:                   8200,
		Directory:              "FromArgs",
		DirectoryListing:       false,
		IndexFiles:             []string{"main.html", "index.html"},
		LogLevel:               "warn",
		LogFormat:              DefaultLogFormat,
		ShutdownTimeoutSeconds: DefaultShutdownTimeoutSeconds,
	}
	if diff := cmp.Diff(expected, config); diff != "" {
		t.Errorf("config mismatch (-expected +got):\n%s", diff)
	}
}

func TestLoadMalformedEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPort, "eighty")

	if _, err := Load("", nil); !errors.Is(err, bundleServerEnvErrors.ErrMalformed) {
		t.Errorf("expected error %v, got %v", bundleServerEnvErrors.ErrMalformed, err)
	}
}

func TestUrl(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		host     string
		port     int
		expected string
	}{
		{host: "", port: 8000, expected: "http://localhost:8000"},
		{host: "0.0.0.0", port: 8000, expected: "http://localhost:8000"},
		{host: "127.0.0.1", port: 9000, expected: "http://127.0.0.1:9000"},
		{host: "::1", port: 9000, expected: "http://[::1]:9000"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.expected, func(t *testing.T) {
			t.Parallel()

			config := &Config{Host: testCase.host, Port: testCase.port}
			if diff := cmp.Diff(testCase.expected, config.Url()); diff != "" {
				t.Errorf("url mismatch (-expected +got):\n%s", diff)
			}
		})
	}
}
