package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCmd executes the root command with args and returns captured stdout.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	resetInspectFlags()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), "command %v", args)
	return buf.String()
}

// resetInspectFlags clears sticky flag state between invocations.
func resetInspectFlags() {
	if f := inspectCmd.Flags(); f != nil {
		f.VisitAll(func(fl *pflag.Flag) {
			_ = fl.Value.Set(fl.DefValue)
			fl.Changed = false
		})
	}
	insTypes, insSummary, insDiagnose, insCorr = false, false, false, false
	insDelimiter, insSheet, insFormat, insOutput = "", "", "", ""
	insSheetIndex, insMaxRows = 0, 0
	insOutlierZ = 5.0
}

func writeCSV(t *testing.T, rows string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(rows), 0o644))
	return path
}

func TestCLI_InspectMarkdown(t *testing.T) {
	isolateHome(t)
	path := writeCSV(t, "id,score,label\n1,10,a\n2,20,b\n3,30,\n4,40,c\n5,1000,d\n")

	out := runCmd(t, "inspect", path, "--types", "--summary", "--diagnose", "--format", "markdown")

	assert.Contains(t, out, "[DATASET SUMMARY]")
	assert.Contains(t, out, "Rows: 5")
	assert.Contains(t, out, "- id: integer (numeric)")
	assert.Contains(t, out, "- label: string (categorical)")
	assert.Contains(t, out, "[DIAGNOSTICS]")
	assert.Contains(t, out, "- label: missing values: 20%")
	assert.Contains(t, out, "- id: ok")
}

func TestCLI_InspectJSON(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "recs.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`[{"n":1,"s":"x"},{"n":2,"s":"y"}]`), 0o644))

	out := runCmd(t, "inspect", path, "--types", "--format", "markdown")
	assert.Contains(t, out, "Type: JSON")
	assert.Contains(t, out, "Rows: 2")
	assert.Contains(t, out, "- n: integer (numeric)")
}

func TestCLI_InspectTableDefault(t *testing.T) {
	isolateHome(t)
	path := writeCSV(t, "a,b\n1,2\n")

	out := runCmd(t, "inspect", path)
	assert.Contains(t, out, "File type: CSV")
	assert.Contains(t, out, "Rows: 1")
	assert.Contains(t, out, "a")
	assert.Contains(t, out, "b")
}

func TestCLI_InspectJSONFormat(t *testing.T) {
	isolateHome(t)
	path := writeCSV(t, "a\n1\n2\n")

	out := runCmd(t, "inspect", path, "--format", "json")
	assert.Contains(t, out, `"file_type": "CSV"`)
	assert.Contains(t, out, `"rows": 2`)
	assert.Contains(t, out, `"status": "ok"`)
}

func TestCLI_InspectOutputFile(t *testing.T) {
	isolateHome(t)
	path := writeCSV(t, "a\n1\n")
	dest := filepath.Join(t.TempDir(), "report.yaml")

	out := runCmd(t, "inspect", path, "--format", "yaml", "-o", dest)
	assert.Contains(t, out, "Report written")

	body, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(body), "file_type: CSV")
}

func TestCLI_InspectUnsupportedFile(t *testing.T) {
	isolateHome(t)
	resetInspectFlags()
	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"inspect", "notes.txt"})
	require.Error(t, rootCmd.Execute())
}

func TestCLI_ConfigShowAndSet(t *testing.T) {
	isolateHome(t)

	out := runCmd(t, "config", "show")
	assert.Contains(t, out, "outlier_z: 5")
	assert.Contains(t, out, "format: table")

	out = runCmd(t, "config", "set", "format", "markdown")
	assert.Contains(t, out, "Saved config")

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	body, err := os.ReadFile(filepath.Join(home, ".datainspect", "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(body), "format: markdown")
}

// isolateHome points HOME at a temp dir so tests never touch the real
// user config.
func isolateHome(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfg = nil
}
