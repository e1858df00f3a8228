// Tests for the config package covering [Load] behavior (defaults,
// overrides, missing files, malformed input, future versions),
// [Config.Validate], and [ConfigDocs] coverage.

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	rootpkg "tools.zach/dev/sigread"
)

// ///////////////////////////////////////////////
// Load
// ///////////////////////////////////////////////

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		noFile  bool
		wantErr string
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name:   "missing file yields defaults",
			noFile: true,
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				if !reflect.DeepEqual(cfg, DefaultConfig()) {
					t.Errorf("Load without file = %+v, want defaults", cfg)
				}
			},
		},
		{
			name:   "defaults from minimal config",
			config: "version = 1\n",
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				if cfg.Read.BufferSize != 256 {
					t.Errorf("BufferSize = %d, want 256", cfg.Read.BufferSize)
				}
				if cfg.Read.Signal != "SIGINT" {
					t.Errorf("Signal = %q, want SIGINT", cfg.Read.Signal)
				}
			},
		},
		{
			name: "user overrides applied",
			config: `
version = 1

[read]
buffer_size = 16
signal = "SIGTERM"
message = "caught it"

[log]
level = "debug"
file = "logs/sigread.log"
`,
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				if cfg.Read.BufferSize != 16 {
					t.Errorf("BufferSize = %d, want 16", cfg.Read.BufferSize)
				}
				if cfg.Read.Signal != "SIGTERM" {
					t.Errorf("Signal = %q, want SIGTERM", cfg.Read.Signal)
				}
				if cfg.Read.Message != "caught it" {
					t.Errorf("Message = %q, want %q", cfg.Read.Message, "caught it")
				}
				if cfg.Log.File != "logs/sigread.log" {
					t.Errorf("Log.File = %q", cfg.Log.File)
				}
				if cfg.Log.MaxSizeMB != 10 {
					t.Errorf("MaxSizeMB = %d, want default 10", cfg.Log.MaxSizeMB)
				}
			},
		},
		{
			name:   "missing version treated as current",
			config: "[read]\nbuffer_size = 8\n",
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				if cfg.Version != CurrentVersion {
					t.Errorf("Version = %d, want %d", cfg.Version, CurrentVersion)
				}
			},
		},
		{
			name:    "malformed toml",
			config:  "[read\nbuffer_size = ",
			wantErr: "parse config",
		},
		{
			name:    "newer version rejected",
			config:  "version = 99\n",
			wantErr: "newer than supported",
		},
		{
			name:    "invalid value rejected",
			config:  "version = 1\n[read]\nbuffer_size = 0\n",
			wantErr: "validate config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if !tt.noFile {
				if err := os.WriteFile(path, []byte(tt.config), 0o644); err != nil {
					t.Fatalf("WriteFile: %v", err)
				}
			}

			cfg, err := Load(path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Load() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoad_UnreadablePath(t *testing.T) {
	// A directory cannot be read as a file.
	_, err := Load(t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "read config file") {
		t.Fatalf("Load(dir) error = %v, want read config file error", err)
	}
}

// ///////////////////////////////////////////////
// Embedded Default
// ///////////////////////////////////////////////

func TestDefaultConfigTOMLMatchesDefaults(t *testing.T) {
	var cfg Config
	if err := toml.Unmarshal(rootpkg.DefaultConfigTOML, &cfg); err != nil {
		t.Fatalf("parse config.default.toml: %v", err)
	}
	if !reflect.DeepEqual(&cfg, DefaultConfig()) {
		t.Errorf("config.default.toml = %+v, want %+v", cfg, *DefaultConfig())
	}
}

// ///////////////////////////////////////////////
// Validate
// ///////////////////////////////////////////////

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults valid", func(c *Config) {}, ""},
		{"buffer size zero", func(c *Config) { c.Read.BufferSize = 0 }, "read.buffer_size"},
		{"buffer size negative", func(c *Config) { c.Read.BufferSize = -1 }, "read.buffer_size"},
		{"buffer size too large", func(c *Config) { c.Read.BufferSize = MaxBufferSize + 1 }, "read.buffer_size"},
		{"buffer size at max", func(c *Config) { c.Read.BufferSize = MaxBufferSize }, ""},
		{"empty signal", func(c *Config) { c.Read.Signal = "  " }, "read.signal"},
		{"empty message", func(c *Config) { c.Read.Message = "" }, "read.message"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"log level case insensitive", func(c *Config) { c.Log.Level = "DEBUG" }, ""},
		{"zero max size", func(c *Config) { c.Log.MaxSizeMB = 0 }, "log.max_size_mb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

// ///////////////////////////////////////////////
// PeekVersion
// ///////////////////////////////////////////////

func TestPeekVersion(t *testing.T) {
	tests := []struct {
		name string
		data string
		want int
	}{
		{"explicit", "version = 3\n", 3},
		{"missing", "[read]\n", 1},
		{"zero", "version = 0\n", 1},
		{"malformed", "version = \n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PeekVersion([]byte(tt.data)); got != tt.want {
				t.Errorf("PeekVersion(%q) = %d, want %d", tt.data, got, tt.want)
			}
		})
	}
}

// ///////////////////////////////////////////////
// ConfigDocs
// ///////////////////////////////////////////////

func TestConfigDocsCoverEveryField(t *testing.T) {
	var walk func(prefix string, typ reflect.Type)
	walk = func(prefix string, typ reflect.Type) {
		for i := range typ.NumField() {
			f := typ.Field(i)
			key := strings.Split(f.Tag.Get("toml"), ",")[0]
			if prefix != "" {
				key = prefix + "." + key
			}
			if f.Type.Kind() == reflect.Struct {
				walk(key, f.Type)
				continue
			}
			if _, ok := ConfigDocs[key]; !ok {
				t.Errorf("ConfigDocs missing entry for %q", key)
			}
		}
	}
	walk("", reflect.TypeOf(Config{}))
}
