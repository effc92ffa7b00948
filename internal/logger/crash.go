package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	// CrashDir holds crash reports, relative to the data dir.
	CrashDir = "crash_logs"
	// MaxCrashReports is how many reports are kept.
	MaxCrashReports = 10

	maxArgsLen = 500
)

// RunInfo describes the command that was running when a panic happened.
type RunInfo struct {
	Version string `json:"version"`
	Command string `json:"command"`
	Args    string `json:"args,omitempty"`
	Backend string `json:"backend,omitempty"`
	DataDir string `json:"-"`
}

// CrashReport is written as JSON to <data dir>/crash_logs/crash-<timestamp>.json.
type CrashReport struct {
	RunInfo
	Time     time.Time `json:"time"`
	Panic    string    `json:"panic"`
	Stack    string    `json:"stack"`
	Go       string    `json:"go"`
	Platform string    `json:"platform"`
}

var (
	runMu sync.RWMutex
	run   RunInfo
)

// SetRunInfo records the current command for crash reports. Args are joined and cut.
func SetRunInfo(info RunInfo, args []string) {
	info.Args = strings.TrimSpace(strings.Join(args, " "))
	if len(info.Args) > maxArgsLen {
		info.Args = info.Args[:maxArgsLen] + "..."
	}
	runMu.Lock()
	run = info
	runMu.Unlock()
}

func currentRun() RunInfo {
	runMu.RLock()
	defer runMu.RUnlock()
	return run
}

// HandlePanic recovers a panic, writes a crash report and exits 1.
// Usage: defer logger.HandlePanic()
func HandlePanic() {
	r := recover()
	if r == nil {
		return
	}
	report := newCrashReport(r, time.Now())
	path, err := writeCrashReport(report)
	if err != nil {
		fmt.Fprintf(os.Stderr, "smarttask crashed: %v\n%s\n", r, report.Stack)
	} else {
		fmt.Fprintf(os.Stderr, "smarttask crashed: %v\nCrash report: %s\nStored tasks were not modified.\n", r, path)
	}
	os.Exit(1)
}

func newCrashReport(panicValue any, now time.Time) CrashReport {
	return CrashReport{
		RunInfo:  currentRun(),
		Time:     now,
		Panic:    fmt.Sprint(panicValue),
		Stack:    string(debug.Stack()),
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func crashDir() string {
	dir := currentRun().DataDir
	if dir == "" {
		dir = ".smarttask"
	}
	return filepath.Join(dir, CrashDir)
}

// writeCrashReport stores report and prunes old ones. It returns the report path.
func writeCrashReport(report CrashReport) (string, error) {
	dir := crashDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create crash dir: %w", err)
	}
	path := filepath.Join(dir, "crash-"+report.Time.Format("20060102-150405")+".json")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create crash report: %w", err)
	}
	if err := encodeReport(f, report); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write crash report: %w", err)
	}
	pruneCrashReports(dir, MaxCrashReports)
	return path, nil
}

func encodeReport(w io.Writer, report CrashReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode crash report: %w", err)
	}
	return nil
}

// pruneCrashReports removes all but the newest keep reports. Names sort by time.
func pruneCrashReports(dir string, keep int) {
	matches, err := filepath.Glob(filepath.Join(dir, "crash-*.json"))
	if err != nil || len(matches) <= keep {
		return
	}
	sort.Strings(matches)
	for _, p := range matches[:len(matches)-keep] {
		_ = os.Remove(p)
	}
}
