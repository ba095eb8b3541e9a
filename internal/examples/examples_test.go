package examples

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	set, err := Load("")

	require.NoError(t, err)
	assert.NotEmpty(t, set)
	for _, ex := range set {
		assert.NotEmpty(t, ex.Question)
		assert.Contains(t, ex.Query, "SELECT")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "examples.yaml")
	content := `examples:
  - question: "How many employees are active?"
    query: "SELECT COUNT(*) AS n FROM employees WHERE terminated_at IS NULL"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	set, err := Load(path)

	require.NoError(t, err)
	require.Len(t, set, 1)
	assert.Equal(t, "How many employees are active?", set[0].Question)
}

func TestLoadRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("examples: []"), 0o644))
	_, err := Load(empty)
	assert.Error(t, err)

	incomplete := filepath.Join(dir, "incomplete.yaml")
	require.NoError(t, os.WriteFile(incomplete, []byte("examples:\n  - question: \"only a question\"\n"), 0o644))
	_, err = Load(incomplete)
	assert.Error(t, err)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	out := Render([]Example{
		{Question: "Q1", Query: "SELECT 1"},
		{Question: "Q2", Query: "SELECT 2"},
	})

	assert.Equal(t, "- Q1 => SELECT 1\n- Q2 => SELECT 2\n", out)
}
