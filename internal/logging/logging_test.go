package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/tilecity/internal/config"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		debug bool
		want  logrus.Level
	}{
		{"", false, logrus.InfoLevel},
		{"warn", false, logrus.WarnLevel},
		{"warn", true, logrus.DebugLevel},
	}
	for _, tt := range tests {
		log, err := New(config.LogConfig{Level: tt.level}, tt.debug)
		if err != nil {
			t.Fatalf("New(%q, %v) failed: %v", tt.level, tt.debug, err)
		}
		if log.GetLevel() != tt.want {
			t.Errorf("New(%q, %v): expected %s, got %s", tt.level, tt.debug, tt.want, log.GetLevel())
		}
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(config.LogConfig{Level: "loud"}, false); err == nil {
		t.Error("Expected an error for an unknown level")
	}
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tilecity.log")
	log, err := New(config.LogConfig{Level: "info", File: path, MaxSizeMB: 1}, false)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	log.WithField("component", "test").Info("Building placed")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "Building placed") || !strings.Contains(string(data), "component=test") {
		t.Errorf("Unexpected log file contents %q", data)
	}
}
