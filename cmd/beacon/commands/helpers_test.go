package commands

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/profilebeacon/beacon-go/pkg/log"
	"github.com/profilebeacon/beacon-go/pkg/service"
)

func init() {
	logger = newLogger(io.Discard, slog.LevelError)
}

func newTestScanner(t *testing.T, local string) *service.ScannerService {
	t.Helper()
	svc, err := service.NewScannerService(service.ScannerConfig{LocalProfile: local, Logger: logger})
	if err != nil {
		t.Fatalf("NewScannerService: %v", err)
	}
	return svc
}

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.plog")
	fl, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	for _, e := range events {
		fl.Log(e)
	}
	if err := fl.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return path
}
