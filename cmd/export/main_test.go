package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuhatje/Spur-AMP/internal/planner/mapper"
	"github.com/kuhatje/Spur-AMP/internal/planner/parser"
)

const project = `{"floors":[{"floorNumber":0,"width":3,"height":3,"components":{
  "0,0":[{"type":"corner_panel","x":0,"y":0,"rotation":0}],
  "1,0":[{"type":"panel_4x8","x":1,"y":0,"rotation":0}]}}],"currentFloorIndex":0}`

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "house.json")
	require.NoError(t, os.WriteFile(in, []byte(project), 0o644))

	out := filepath.Join(dir, "out")
	layout := filepath.Join(dir, "revit", mapper.RevitFile)
	require.NoError(t, run(in, out, "Cabin", layout, mapper.Options{}))

	for _, name := range []string{mapper.RevitFile, mapper.QuoteFile, mapper.GLBFile, mapper.GCodeFile} {
		_, err := os.Stat(filepath.Join(out, name))
		assert.NoError(t, err, name)
	}
	want, err := os.ReadFile(filepath.Join(out, mapper.RevitFile))
	require.NoError(t, err)
	got, err := os.ReadFile(layout)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRunCopiesLayoutWhenOtherArtifactFails(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "house.json")
	require.NoError(t, os.WriteFile(in, []byte(project), 0o644))

	out := filepath.Join(dir, "out")
	// a non-empty directory where the PNG should go
	require.NoError(t, os.MkdirAll(filepath.Join(out, mapper.PreviewFile, "keep"), 0o755))

	layout := filepath.Join(dir, "revit", mapper.RevitFile)
	err := run(in, out, "Cabin", layout, mapper.Options{})
	assert.ErrorIs(t, err, mapper.ErrExportFailure)

	want, err := os.ReadFile(filepath.Join(out, mapper.RevitFile))
	require.NoError(t, err)
	got, err := os.ReadFile(layout)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRunRejectsMalformed(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"floors":[]}`), 0o644))

	err := run(in, filepath.Join(dir, "out"), "", "", mapper.Options{})
	assert.ErrorIs(t, err, parser.ErrMalformedImport)
	_, statErr := os.Stat(filepath.Join(dir, "out"))
	assert.True(t, os.IsNotExist(statErr))
}
