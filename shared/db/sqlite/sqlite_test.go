package sqlite

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewSQLiteConfig(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		want     string
	}{
		{
			name:     "env variable",
			envValue: "/tmp/env.db",
			want:     "/tmp/env.db",
		},
		{
			name: "default path",
			want: "./catalog.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv("SQLITE_DB_PATH", tt.envValue)
				defer os.Unsetenv("SQLITE_DB_PATH")
			} else {
				os.Unsetenv("SQLITE_DB_PATH")
			}

			cfg := NewSQLiteConfig()

			if cfg.Path != tt.want {
				t.Errorf("Path = %v, want %v", cfg.Path, tt.want)
			}
		})
	}
}

func TestSQLiteDB_Connect(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := &SQLiteConfig{
		Path: filepath.Join(tmpDir, "test.db"),
	}

	database := NewSQLiteDB(cfg)
	if err := database.Connect(); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer database.Close()

	if database.DB() == nil {
		t.Fatal("DB() returned nil after Connect()")
	}

	// Connecting twice should fail
	if err := database.Connect(); err == nil {
		t.Error("Expected error on second Connect(), got nil")
	}
}

func TestSQLiteDB_Close(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := &SQLiteConfig{
		Path: filepath.Join(tmpDir, "test.db"),
	}

	database := NewSQLiteDB(cfg)
	if err := database.Connect(); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	if err := database.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	// Closing an already closed database is a no-op
	if err := database.Close(); err != nil {
		t.Errorf("Second Close() error = %v", err)
	}
}
