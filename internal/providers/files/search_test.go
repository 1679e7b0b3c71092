package files

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeSearchFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src", "pkg"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0o755))
	for rel, body := range map[string]string{
		"src/main.go":       "package main",
		"src/pkg/util.go":   "package pkg",
		"src/pkg/util_test": "not a go file",
		"docs/README.md":    "# readme",
		"notes.txt":         "notes",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, filepath.FromSlash(rel)), []byte(body), 0o644))
	}
	return dir
}

func TestFindSubstring(t *testing.T) {
	dir := makeSearchFixture(t)

	ops := &SearchOps{EngineOps: newTestOps()}
	result, err := ops.Find(context.Background(), map[string]interface{}{
		"root": dir, "query": "util",
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	matches := result.Data["matches"].([]string)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "src", "pkg", "util.go"),
		filepath.Join(dir, "src", "pkg", "util_test"),
	}, matches)
}

func TestFindCaseInsensitive(t *testing.T) {
	dir := makeSearchFixture(t)

	ops := &SearchOps{EngineOps: newTestOps()}
	result, err := ops.Find(context.Background(), map[string]interface{}{
		"root": dir, "query": "readme",
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	matches := result.Data["matches"].([]string)
	require.Len(t, matches, 1)
	assert.Equal(t, filepath.Join(dir, "docs", "README.md"), matches[0])
}

func TestFindShellPattern(t *testing.T) {
	dir := makeSearchFixture(t)

	ops := &SearchOps{EngineOps: newTestOps()}
	result, err := ops.Find(context.Background(), map[string]interface{}{
		"root": dir, "query": "*.go",
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	matches := result.Data["matches"].([]string)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "src", "main.go"),
		filepath.Join(dir, "src", "pkg", "util.go"),
	}, matches)
}

func TestFindNoMatches(t *testing.T) {
	dir := makeSearchFixture(t)

	ops := &SearchOps{EngineOps: newTestOps()}
	result, err := ops.Find(context.Background(), map[string]interface{}{
		"root": dir, "query": "zzz-nothing",
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	assert.Equal(t, 0, result.Data["count"])
}

func TestGlob(t *testing.T) {
	dir := makeSearchFixture(t)

	ops := &SearchOps{EngineOps: newTestOps()}
	result, err := ops.Glob(context.Background(), map[string]interface{}{
		"root": dir, "pattern": "**/*.go",
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	matches := result.Data["matches"].([]string)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "src", "main.go"),
		filepath.Join(dir, "src", "pkg", "util.go"),
	}, matches)
}

func TestGlobSingleLevel(t *testing.T) {
	dir := makeSearchFixture(t)

	ops := &SearchOps{EngineOps: newTestOps()}
	result, err := ops.Glob(context.Background(), map[string]interface{}{
		"root": dir, "pattern": "*.txt",
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	matches := result.Data["matches"].([]string)
	require.Len(t, matches, 1)
	assert.Equal(t, filepath.Join(dir, "notes.txt"), matches[0])
}

func TestGlobInvalidPattern(t *testing.T) {
	ops := &SearchOps{EngineOps: newTestOps()}
	result, err := ops.Glob(context.Background(), map[string]interface{}{
		"root": t.TempDir(), "pattern": "[",
	}, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestSearchRequiresParams(t *testing.T) {
	ops := &SearchOps{EngineOps: newTestOps()}

	result, err := ops.Find(context.Background(), map[string]interface{}{"root": "/tmp"}, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)

	result, err = ops.Glob(context.Background(), map[string]interface{}{"pattern": "*"}, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
}
