package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	if cfg.OutDir != DefaultOutDir {
		t.Errorf("expected out dir %q, got %q", DefaultOutDir, cfg.OutDir)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.Timeout)
	}
	if cfg.PDF.Width != DefaultPDFWidth {
		t.Errorf("expected width %q, got %q", DefaultPDFWidth, cfg.PDF.Width)
	}
	if cfg.PDF.Scale != DefaultPDFScale {
		t.Errorf("expected scale %v, got %v", DefaultPDFScale, cfg.PDF.Scale)
	}
}

func TestConfigSetTimeoutSeconds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		seconds float64
		want    time.Duration
	}{
		{name: "whole seconds", seconds: 30, want: 30 * time.Second},
		{name: "fractional seconds", seconds: 1.5, want: 1500 * time.Millisecond},
		{name: "zero disables timeout", seconds: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := NewConfig()
			cfg.SetTimeoutSeconds(tt.seconds)
			if cfg.Timeout != tt.want {
				t.Errorf("expected %v, got %v", tt.want, cfg.Timeout)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		cfg := NewConfig()
		cfg.EntryURL = "https://docs.example.com/"
		return cfg
	}

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{
			name:    "valid config",
			modify:  func(*Config) {},
			wantErr: nil,
		},
		{
			name:    "missing entry URL",
			modify:  func(c *Config) { c.EntryURL = "" },
			wantErr: ErrNoEntryURL,
		},
		{
			name:    "relative entry URL",
			modify:  func(c *Config) { c.EntryURL = "/docs/intro" },
			wantErr: ErrInvalidEntryURL,
		},
		{
			name:    "non-http scheme",
			modify:  func(c *Config) { c.EntryURL = "ftp://docs.example.com" },
			wantErr: ErrInvalidEntryURL,
		},
		{
			name:    "missing output dir",
			modify:  func(c *Config) { c.OutDir = "" },
			wantErr: ErrNoOutputDir,
		},
		{
			name:    "negative timeout",
			modify:  func(c *Config) { c.SetTimeoutSeconds(-1) },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "zero timeout is allowed",
			modify:  func(c *Config) { c.SetTimeoutSeconds(0) },
			wantErr: nil,
		},
		{
			name:    "zero scale",
			modify:  func(c *Config) { c.PDF.Scale = 0 },
			wantErr: ErrInvalidScale,
		},
		{
			name:    "scale above limit",
			modify:  func(c *Config) { c.PDF.Scale = 2.5 },
			wantErr: ErrInvalidScale,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads overrides", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, ".gitbookpdf.yaml")
		content := `pdf:
  width: 21cm
  scale: 1.0
rules:
  - selector: "header.banner"
    action: remove
  - selector: "time.ago"
    action: rewrite-from-attr
    attr: title
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cf.PDF.Width != "21cm" {
			t.Errorf("expected 21cm, got %q", cf.PDF.Width)
		}
		if len(cf.Rules) != 2 {
			t.Fatalf("expected 2 rules, got %d", len(cf.Rules))
		}
		if cf.Rules[1].Attr != "title" {
			t.Errorf("expected attr title, got %q", cf.Rules[1].Attr)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid yaml returns error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("pdf: [not a map"), 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for invalid yaml")
		}
	})
}

func TestFileApply(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	cf := &File{PDF: PDFOptions{Width: "21cm", Scale: 1.2}}
	cf.Apply(cfg)

	if cfg.PDF.Width != "21cm" {
		t.Errorf("expected width override, got %q", cfg.PDF.Width)
	}
	if cfg.PDF.Scale != 1.2 {
		t.Errorf("expected scale override, got %v", cfg.PDF.Scale)
	}
	// Fields absent from the file keep their defaults.
	if cfg.PDF.Height != DefaultPDFHeight {
		t.Errorf("expected default height, got %q", cfg.PDF.Height)
	}
	if cfg.PDF.Margin != DefaultPDFMargin {
		t.Errorf("expected default margin, got %q", cfg.PDF.Margin)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Not parallel: changes working directory.

	t.Run("explicit path that exists", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "custom.yaml")
		if err := os.WriteFile(path, []byte("{}"), 0600); err != nil {
			t.Fatal(err)
		}
		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("explicit path that does not exist", func(t *testing.T) {
		if got := FindConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})

	t.Run("finds file in current directory", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFile)
		if err := os.WriteFile(path, []byte("{}"), 0600); err != nil {
			t.Fatal(err)
		}
		t.Chdir(dir)

		got := FindConfigFile("")
		if filepath.Base(got) != DefaultConfigFile {
			t.Errorf("expected %s in cwd, got %q", DefaultConfigFile, got)
		}
	})
}
