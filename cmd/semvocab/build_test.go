package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semvocab/export"
)

const validVocab = `
vocab:
  id: ex
  value: http://example.org/
ontology:
  - property: dc:title
    value: Example
class:
  - id: Thing
    comment: A thing.
property:
  - id: name
    domain: Thing
    range: xsd:string
`

const invalidVocab = `
vocab:
  id: ex
  value: http://example.org/
`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input  string
		outDir string
		format export.Format
		want   string
	}{
		{"vocab/foo.yml", "", export.FormatTurtle, "vocab/foo.ttl"},
		{"vocab/foo.yaml", "", export.FormatJSONLD, "vocab/foo.jsonld"},
		{"vocab/foo.yml", "", export.FormatHTML, "vocab/foo.html"},
		{"vocab/foo.yml", "", export.FormatContext, "vocab/foo.context.jsonld"},
		{"vocab/foo.yml", "site", export.FormatTurtle, "site/foo.ttl"},
		{"foo.v2.yml", "", export.FormatTurtle, "foo.v2.ttl"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := outputPath(tt.input, tt.outDir, tt.format)
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}

	_, err := outputPath("foo.yml", "", export.Format("rdfxml"))
	assert.Error(t, err)
}

func TestBuildFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "foo.yml")
	writeFile(t, input, validVocab)

	opts := buildOptions{formats: export.AllFormats, date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	written, err := buildFile(input, opts, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "foo.ttl"),
		filepath.Join(dir, "foo.jsonld"),
		filepath.Join(dir, "foo.html"),
		filepath.Join(dir, "foo.context.jsonld"),
	}, written)

	ttl, err := os.ReadFile(filepath.Join(dir, "foo.ttl"))
	require.NoError(t, err)
	assert.Contains(t, string(ttl), "ex:Thing")
	assert.Contains(t, string(ttl), `dc:date "2024-03-01"`)
}

func TestBuildFile_FailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "bad.yml")
	writeFile(t, input, invalidVocab)

	_, err := buildFile(input, buildOptions{formats: export.AllFormats}, quietLogger())
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "only the input remains")
}

func TestBuildAll_ContinuesAfterFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.yml"), validVocab)
	writeFile(t, filepath.Join(dir, "b.yml"), invalidVocab)
	out := filepath.Join(dir, "out")

	var stdout bytes.Buffer
	opts := buildOptions{outDir: out, formats: []export.Format{export.FormatTurtle}}
	err := buildAll([]string{dir}, opts, quietLogger(), &stdout)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b.yml")

	assert.FileExists(t, filepath.Join(out, "a.ttl"))
	assert.NoFileExists(t, filepath.Join(out, "b.ttl"))
	assert.Contains(t, stdout.String(), "wrote "+filepath.Join(out, "a.ttl"))
}

func TestRootCmd_Build(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "foo.yml")
	writeFile(t, input, validVocab)
	cfgPath := filepath.Join(dir, "semvocab-test.yaml")
	writeFile(t, cfgPath, "output:\n  formats: [turtle, html]\nlog:\n  level: error\n")

	var stdout, stderr bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--config", cfgPath, "build", "--format", "context", "--date", "2024-03-01", input})
	require.NoError(t, cmd.Execute())

	assert.FileExists(t, filepath.Join(dir, "foo.context.jsonld"))
	assert.NoFileExists(t, filepath.Join(dir, "foo.ttl"), "--format overrides the config")
	assert.Contains(t, stdout.String(), "foo.context.jsonld")
}

func TestRootCmd_BuildErrors(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "semvocab-test.yaml")
	writeFile(t, cfgPath, "log:\n  level: error\n")
	input := filepath.Join(dir, "foo.yml")
	writeFile(t, input, validVocab)

	tests := []struct {
		name string
		args []string
	}{
		{"no patterns", []string{"build"}},
		{"unknown format", []string{"build", "--format", "rdfxml", input}},
		{"bad date", []string{"build", "--date", "yesterday", input}},
		{"no matches", []string{"build", filepath.Join(dir, "missing", "*.yml")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := rootCmd()
			cmd.SetOut(io.Discard)
			cmd.SetErr(io.Discard)
			cmd.SetArgs(append([]string{"--config", cfgPath}, tt.args...))
			assert.Error(t, cmd.Execute())
		})
	}
}

func TestRootCmd_Version(t *testing.T) {
	var stdout bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "semvocab version "+Version+" (build: "+BuildTime+")\n", stdout.String())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}
