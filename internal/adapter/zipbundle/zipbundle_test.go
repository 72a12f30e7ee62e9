package zipbundle_test

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brclimate/inmet-etl/internal/adapter/zipbundle"
)

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestNew_ExposesEntries(t *testing.T) {
	raw := buildZip(t, map[string]string{
		"INMET_NE_BA_A401.CSV": "conteudo",
		"subdir/leiame.txt":    "notas",
	})

	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)

	bundle := zipbundle.New(zr)
	entries := bundle.Entries()
	require.Len(t, entries, 2)

	byName := map[string]bool{}
	for _, e := range entries {
		byName[e.Name()] = true
		assert.False(t, e.IsDir())
	}
	assert.True(t, byName["INMET_NE_BA_A401.CSV"])

	rc, err := entries[0].Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	require.NoError(t, bundle.Close())
}

func TestOpen_ReadsArchiveFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2020.zip")
	require.NoError(t, os.WriteFile(path, buildZip(t, map[string]string{"a.csv": "x"}), 0o600))

	bundle, err := zipbundle.Open(path)
	require.NoError(t, err)
	defer bundle.Close()

	assert.Len(t, bundle.Entries(), 1)
}

func TestOpen_MissingArchiveIsFatal(t *testing.T) {
	_, err := zipbundle.Open(filepath.Join(t.TempDir(), "nope.zip"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open bundle")
}

func TestOpen_CorruptArchiveIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.zip")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o600))

	_, err := zipbundle.Open(path)
	require.Error(t, err)
}
