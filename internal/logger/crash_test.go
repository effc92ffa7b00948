package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetRunInfo(t *testing.T) {
	SetRunInfo(RunInfo{Version: "1.0.0-test", Command: "smarttask import", Backend: "sqlite", DataDir: "/tmp/st"}, []string{"tasks.json", "--no-analyze"})

	r := newCrashReport("boom", time.Now())
	assert.Equal(t, "1.0.0-test", r.Version)
	assert.Equal(t, "smarttask import", r.Command)
	assert.Equal(t, "tasks.json --no-analyze", r.Args)
	assert.Equal(t, "sqlite", r.Backend)
	assert.Equal(t, "boom", r.Panic)
	assert.NotEmpty(t, r.Stack)
	assert.Equal(t, filepath.Join("/tmp/st", CrashDir), crashDir())
}

func TestSetRunInfo_ArgsAreCut(t *testing.T) {
	SetRunInfo(RunInfo{}, []string{strings.Repeat("a", 3000)})
	assert.Len(t, newCrashReport("x", time.Now()).Args, maxArgsLen+3)
	assert.Equal(t, filepath.Join(".smarttask", CrashDir), crashDir())
}

func TestWriteCrashReport(t *testing.T) {
	dir := t.TempDir()
	SetRunInfo(RunInfo{Command: "smarttask analyze", DataDir: dir}, nil)

	path, err := writeCrashReport(newCrashReport("nil map", time.Date(2025, 11, 28, 9, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, CrashDir, "crash-20251128-090000.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "nil map", got["panic"])
	assert.Equal(t, "smarttask analyze", got["command"])
	assert.NotContains(t, got, "args", "empty args are omitted")
}

func TestPruneCrashReports(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < MaxCrashReports+3; i++ {
		name := fmt.Sprintf("crash-20250101-0000%02d.json", i)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))

	pruneCrashReports(dir, MaxCrashReports)

	left, err := filepath.Glob(filepath.Join(dir, "crash-*.json"))
	require.NoError(t, err)
	assert.Len(t, left, MaxCrashReports)
	assert.Equal(t, "crash-20250101-000003.json", filepath.Base(left[0]), "oldest are removed first")
	assert.FileExists(t, filepath.Join(dir, "other.txt"))
}
