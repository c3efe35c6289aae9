package system

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFindLatestCSV(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	files := []struct {
		name string
		age  time.Duration
	}{
		{"week1.csv", 3 * time.Hour},
		{"week2.csv.gz", time.Hour},
		{"notes.txt", 0},
	}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		mt := now.Add(-f.age)
		if err := os.Chtimes(path, mt, mt); err != nil {
			t.Fatal(err)
		}
	}

	latest, err := FindLatestCSV(dir)
	if err != nil {
		t.Fatalf("FindLatestCSV failed: %v", err)
	}
	if filepath.Base(latest) != "week2.csv.gz" {
		t.Errorf("Expected week2.csv.gz, got %s", latest)
	}
}

func TestFindLatestCSVEmpty(t *testing.T) {
	if _, err := FindLatestCSV(t.TempDir()); err == nil {
		t.Error("Expected error for empty directory")
	}
}

func TestPickEncoder(t *testing.T) {
	tests := []struct {
		list string
		want string
	}{
		{" V....D h264_nvenc  NVIDIA NVENC H.264 encoder", "h264_nvenc"},
		{" V....D h264_videotoolbox VideoToolbox H.264 Encoder\n V....D h264_nvenc", "h264_videotoolbox"},
		{" V....D libx264 libx264 H.264", "libx264"},
	}
	for _, tt := range tests {
		if got := pickEncoder(tt.list); got != tt.want {
			t.Errorf("pickEncoder: expected %s, got %s", tt.want, got)
		}
	}
}

func TestCapWorkers(t *testing.T) {
	const mb = 1 << 20
	tests := []struct {
		requested      int
		perJob, budget uint64
		want           int
	}{
		{8, 500 * mb, 2000 * mb, 4},
		{2, 500 * mb, 2000 * mb, 2},
		{8, 5000 * mb, 2000 * mb, 1},
		{8, 500 * mb, 0, 8},
		{0, 0, 2000 * mb, 1},
	}
	for _, tt := range tests {
		if got := capWorkers(tt.requested, tt.perJob, tt.budget); got != tt.want {
			t.Errorf("capWorkers(%d, %d, %d): expected %d, got %d", tt.requested, tt.perJob, tt.budget, tt.want, got)
		}
	}
	if n := WorkersForMemory(4, 1); n < 1 || n > 4 {
		t.Errorf("WorkersForMemory out of range: %d", n)
	}
}

func TestDefaultWorkers(t *testing.T) {
	if n := DefaultWorkers(); n < 1 {
		t.Errorf("Expected at least one worker, got %d", n)
	}
}
