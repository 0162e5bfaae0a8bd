package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInitWithConfig_InvalidLevel(t *testing.T) {
	if err := InitWithConfig("loud", "json", "stdout", ""); err == nil {
		t.Fatal("Expected error for invalid level, got nil")
	}
}

func TestInitWithConfig_InvalidFormat(t *testing.T) {
	if err := InitWithConfig("info", "xml", "stdout", ""); err == nil {
		t.Fatal("Expected error for invalid format, got nil")
	}
}

func TestInitWithConfig_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	if err := InitWithConfig("debug", "text", "file", path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer Init(false)

	if GetLogger().GetLevel() != logrus.DebugLevel {
		t.Errorf("Expected debug level, got %s", GetLogger().GetLevel())
	}

	Info("enrollment added for user %s", "u1")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "enrollment added for user u1") {
		t.Errorf("Expected log line in file, got %q", string(content))
	}
}

func TestInitWithConfig_FileOutputRequiresPath(t *testing.T) {
	if err := InitWithConfig("info", "json", "file", ""); err == nil {
		t.Fatal("Expected error for file output without path, got nil")
	}
}
