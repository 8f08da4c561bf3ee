package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const request = `{
  "patient": {"age": 35, "gender": "Female", "weight_kg": 70, "height_cm": 170},
  "symptoms": {
    "category": "Standard", "chest_pain": "Aucune", "sputum": "Aucune", "blood_in_sputum": "Oui",
    "fever": "Absente", "night_sweats": "Non", "smoking": "Jamais", "previous_tb": "Non"
  }
}`

const treeModel = `{
  "name": "tb-tree", "version": "1.0.0", "encoding_version": "v1.0.0", "dimension": 14, "kind": "tree",
  "tree": {"nodes": [
    {"feature": 11, "threshold": 0.5, "left": 1, "right": 2},
    {"class": 0},
    {"class": 3}
  ]}
}`

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	for _, k := range []string{
		"TBSCREEN_MODEL_PATH", "TBSCREEN_MODEL_URL", "TBSCREEN_MODEL_TIMEOUT",
		"TBSCREEN_LOG_LEVEL", "TBSCREEN_LOG_FORMAT", "TBSCREEN_DB", "TBSCREEN_PARALLEL",
	} {
		t.Setenv(k, "")
	}
	return dir
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestLabels(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, "labels", "gender")
	require.NoError(t, err)
	assert.Contains(t, out, "Genre")
	assert.Contains(t, out, "Female")

	_, _, err = execute(t, "labels", "shoe_size")
	assert.Error(t, err)
}

func TestEvaluate_WithModel(t *testing.T) {
	dir := isolate(t)
	req := writeFile(t, dir, "req.json", request)
	art := writeFile(t, dir, "model.json", treeModel)
	db := filepath.Join(dir, "runs.db")

	out, _, err := execute(t, "evaluate", "--input", req, "--model", art, "--db", db, "--json")
	require.NoError(t, err)

	var got struct {
		Score   float64  `json:"score"`
		Class   *int     `json:"class"`
		Label   string   `json:"label"`
		Actions []string `json:"actions"`
		ModelID string   `json:"model_id"`
		Error   string   `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotNil(t, got.Class)
	assert.Equal(t, 3, *got.Class)
	assert.Equal(t, "Critique", got.Label)
	assert.Equal(t, "tb-tree@1.0.0", got.ModelID)
	assert.Empty(t, got.Error)

	out, _, err = execute(t, "history", "--db", db, "--json")
	require.NoError(t, err)
	var runs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, "classified", runs[0]["outcome"])
	assert.NotContains(t, out, "Female")
}

func TestEvaluate_WithoutModelDegrades(t *testing.T) {
	dir := isolate(t)
	req := writeFile(t, dir, "req.json", request)

	out, stderr, err := execute(t, "evaluate", "--input", req, "--no-history", "--json")
	require.NoError(t, err)
	assert.Contains(t, stderr, "model unavailable")

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Nil(t, got["class"])
	assert.NotEmpty(t, got["error"])
	assert.Greater(t, got["score"].(float64), 0.0)
}

func TestEvaluate_RejectsBadLabel(t *testing.T) {
	dir := isolate(t)
	req := writeFile(t, dir, "req.json", `{"patient":{"age":35,"gender":"Robot"},"symptoms":{
		"category":"Standard","chest_pain":"Aucune","sputum":"Aucune","blood_in_sputum":"Non",
		"fever":"Absente","night_sweats":"Non","smoking":"Jamais","previous_tb":"Non"}}`)

	_, _, err := execute(t, "evaluate", "--input", req, "--no-history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Robot")
}

func TestModelCheck(t *testing.T) {
	dir := isolate(t)
	art := writeFile(t, dir, "model.json", treeModel)

	out, _, err := execute(t, "model", "check", "--model", art, "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"sha256"`)

	_, _, err = execute(t, "model", "check")
	assert.Error(t, err)
}

func TestBatchAndStats(t *testing.T) {
	dir := isolate(t)
	req := writeFile(t, dir, "reqs.json", "["+request+","+request+"]")
	art := writeFile(t, dir, "model.json", treeModel)
	db := filepath.Join(dir, "runs.db")

	out, _, err := execute(t, "batch", "--input", req, "--model", art, "--db", db, "--parallel", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "2 évaluations")

	out, _, err = execute(t, "stats", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "classified")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "tbscreen")
}
