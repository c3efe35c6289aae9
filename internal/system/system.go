package system

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// TrackingExtensions are the file suffixes accepted as tracking input.
var TrackingExtensions = []string{".csv", ".csv.gz"}

// DefaultWorkers returns the number of physical cores, falling back to the
// logical CPU count when it cannot be determined.
func DefaultWorkers() int {
	n, err := cpu.Counts(false)
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// WorkersForMemory lowers requested so that that many jobs of perJob bytes
// fit into half of the currently available memory.
func WorkersForMemory(requested int, perJob uint64) int {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return capWorkers(requested, perJob, 0)
	}
	return capWorkers(requested, perJob, vm.Available/2)
}

// capWorkers keeps at least one worker. A zero budget means unknown.
func capWorkers(requested int, perJob, budget uint64) int {
	if requested < 1 {
		requested = 1
	}
	if perJob == 0 || budget == 0 {
		return requested
	}
	n := budget / perJob
	if n < 1 {
		return 1
	}
	if n < uint64(requested) {
		return int(n)
	}
	return requested
}

// FindLatestCSV returns the most recently modified tracking file in dir.
func FindLatestCSV(dir string) (string, error) {
	return findLatest(dir, TrackingExtensions)
}

func findLatest(dir string, extensions []string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !hasSuffix(f.Name(), extensions) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no tracking files (%s) found in %s", strings.Join(extensions, ", "), dir)
	}

	return latestFile, nil
}

func hasSuffix(name string, extensions []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// GetBestH264Encoder returns the first hardware H.264 encoder ffmpeg
// offers, or libx264.
func GetBestH264Encoder() string {
	// Priority: VideoToolbox (macOS), NVENC (NVIDIA), then software libx264
	out, err := exec.Command("ffmpeg", "-hide_banner", "-encoders").CombinedOutput()
	if err != nil {
		return "libx264"
	}
	return pickEncoder(string(out))
}

func pickEncoder(list string) string {
	for _, name := range []string{"h264_videotoolbox", "h264_nvenc"} {
		if strings.Contains(list, name) {
			return name
		}
	}
	return "libx264"
}
