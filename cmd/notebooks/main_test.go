package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/born-ml/notebooks/internal/notebook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Commands(t *testing.T) {
	cfg := notebook.DefaultAutogradConfig()

	var autograd bytes.Buffer
	require.NoError(t, run(&autograd, "autograd", cfg))
	assert.Contains(t, autograd.String(), "== Autograd ==")
	assert.NotContains(t, autograd.String(), "== Matrix multiplication ==")

	var matmul bytes.Buffer
	require.NoError(t, run(&matmul, "matmul", cfg))
	assert.Contains(t, matmul.String(), "== Matrix multiplication ==")

	var all bytes.Buffer
	require.NoError(t, run(&all, "all", cfg))
	assert.Equal(t, autograd.String()+"\n"+matmul.String(), all.String())
}

func TestRun_UnknownCommand(t *testing.T) {
	err := run(&bytes.Buffer{}, "train", notebook.DefaultAutogradConfig())
	assert.EqualError(t, err, `unknown command "train"`)
}

func TestRunWithDOT(t *testing.T) {
	cfg := notebook.DefaultAutogradConfig()

	t.Run("autograd writes the loss graph", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "loss.dot")

		written, err := runWithDOT(&bytes.Buffer{}, "autograd", cfg, path)
		require.NoError(t, err)
		assert.True(t, written)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "digraph gradfn {\n"))
	})

	t.Run("matmul leaves no file behind", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "loss.dot")

		written, err := runWithDOT(&bytes.Buffer{}, "matmul", cfg, path)
		require.NoError(t, err)
		assert.False(t, written)
		assert.NoFileExists(t, path)
	})

	t.Run("unknown command creates nothing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "loss.dot")

		written, err := runWithDOT(&bytes.Buffer{}, "train", cfg, path)
		require.Error(t, err)
		assert.False(t, written)
		assert.NoFileExists(t, path)
	})

	t.Run("no path", func(t *testing.T) {
		written, err := runWithDOT(&bytes.Buffer{}, "autograd", cfg, "")
		require.NoError(t, err)
		assert.False(t, written)
	})
}
