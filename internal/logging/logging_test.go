package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "staffdesk.log")
	SetPath(path)
	t.Cleanup(ResetPath)

	logger, err := New("debug")
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	logger.Info("employee created")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"message":"employee created"`) {
		t.Errorf("expected JSON message in log, got %s", data)
	}
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staffdesk.log")
	SetPath(path)
	t.Cleanup(ResetPath)

	logger, err := New("chatty")
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("shown")
	_ = logger.Sync()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") {
		t.Error("debug entry should be filtered at info level")
	}
	if !strings.Contains(string(data), "shown") {
		t.Error("expected info entry in log")
	}
}
