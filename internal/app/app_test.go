package app

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/tldr-it-stepankutaj/whodat/internal/workspace"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Workspace: "ws", Storage: StorageFile}, false},
		{"valid sqlite json", Config{Workspace: "ws", Storage: StorageSQLite, LogLevel: "debug", LogFormat: "json"}, false},
		{"empty workspace", Config{Storage: StorageFile}, true},
		{"bad storage", Config{Workspace: "ws", Storage: "redis"}, true},
		{"bad level", Config{Workspace: "ws", Storage: StorageMemory, LogLevel: "trace"}, true},
		{"bad format", Config{Workspace: "ws", Storage: StorageMemory, LogFormat: "xml"}, true},
		{"negative timeout", Config{Workspace: "ws", Storage: StorageMemory, Timeout: -time.Second}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMustLoadConfigFromViper(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("workspace", "ws")
	viper.Set("log_level", "warn")
	viper.Set("log_format", "json")
	viper.Set("storage", StorageSQLite)
	viper.Set("timeout", "3s")

	cfg := MustLoadConfigFromViper()
	want := Config{Workspace: "ws", LogLevel: "warn", LogFormat: "json", Storage: StorageSQLite, Timeout: 3 * time.Second}
	if cfg != want {
		t.Errorf("got %+v, want %+v", cfg, want)
	}
}

func TestNewLoggerLevelAndFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("warn", "json", &buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("expected JSON record, got %s", out)
	}
}

func TestOpenStorageBackends(t *testing.T) {
	ws, err := workspace.Ensure(filepath.Join(t.TempDir(), "ws"))
	if err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}
	for _, backend := range []string{StorageMemory, StorageFile, StorageSQLite} {
		t.Run(backend, func(t *testing.T) {
			s, err := OpenStorage(Config{Workspace: ws.Root, Storage: backend}, ws)
			if err != nil {
				t.Fatalf("OpenStorage failed: %v", err)
			}
			defer s.Close()

			ctx := context.Background()
			if err := s.Save(ctx, "k", []byte("v")); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			got, ok, err := s.Load(ctx, "k")
			if err != nil || !ok || string(got) != "v" {
				t.Errorf("Load = %q, %v, %v", got, ok, err)
			}
		})
	}

	if _, err := OpenStorage(Config{Storage: "redis"}, ws); err == nil {
		t.Error("expected error for unknown backend")
	}
}
