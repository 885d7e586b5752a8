package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ".bshproject.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadValidManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
schema: brash.project/v1
entry: src/main.bsh
searchPaths:
  - lib
stdlib:
  std/io: vendor/std/io.bsh
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "src/main.bsh"), cfg.EntryPath())
	require.Equal(t, []string{filepath.Join(dir, "lib")}, cfg.ResolvedSearchPaths())
	require.Equal(t, filepath.Join(dir, "vendor/std/io.bsh"), cfg.StdLibLocator()["std/io"])
}

func TestLoadRejectsUnknownSchema(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "schema: brash.project/v2\nentry: main.bsh\n")
	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported schema")
}

func TestLoadRejectsMissingEntry(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "schema: brash.project/v1\n")
	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing entry")
}

func TestLoadRejectsDuplicateSearchPath(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "schema: brash.project/v1\nentry: main.bsh\nsearchPaths: [lib, lib]\n")
	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate searchPaths")
}

func TestDefaultHasCurrentSchema(t *testing.T) {
	cfg := Default()
	require.Equal(t, SchemaVersion, cfg.Schema)
}

func TestAbsoluteEntryPathIsUntouched(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(dir, "elsewhere", "main.bsh")
	path := writeManifest(t, dir, "schema: brash.project/v1\nentry: "+abs+"\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, abs, cfg.EntryPath())
}
