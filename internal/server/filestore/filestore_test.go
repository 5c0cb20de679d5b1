package filestore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveMaritimeDocument(t *testing.T) {
	root := t.TempDir()
	s, err := New(root)
	require.NoError(t, err)

	rel, err := s.SaveMaritimeDocument("cert.pdf", []byte("content"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rel, "maritime-documents"+string(filepath.Separator)))
	assert.True(t, strings.HasSuffix(rel, "_cert.pdf"))

	data, err := os.ReadFile(filepath.Join(root, rel))
	require.NoError(t, err)
	assert.Equal(t, []byte("content"), data)
}

func TestSaveMaritimeDocumentSameNameNoOverwrite(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	first, err := s.SaveMaritimeDocument("cert.pdf", []byte("first"))
	require.NoError(t, err)

	second, err := s.SaveMaritimeDocument("cert.pdf", []byte("second"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestSaveMaritimeDocumentStripsDirectories(t *testing.T) {
	root := t.TempDir()
	s, err := New(root)
	require.NoError(t, err)

	tests := []struct {
		name     string
		fileName string
	}{
		{name: "unix traversal", fileName: "../../etc/passwd"},
		{name: "windows traversal", fileName: `..\..\windows\system32\config`},
		{name: "absolute path", fileName: "/etc/passwd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rel, err := s.SaveMaritimeDocument(tt.fileName, []byte("x"))
			require.NoError(t, err)

			// The file lands inside the namespace regardless of the input.
			assert.True(t, strings.HasPrefix(rel, "maritime-documents"+string(filepath.Separator)))
			assert.NotContains(t, rel, "..")
		})
	}
}

func TestSaveMaritimeDocumentRejectsEmptyName(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", ".", ".."} {
		_, err := s.SaveMaritimeDocument(name, []byte("x"))
		assert.Error(t, err, "name %q", name)
	}
}

func TestRemove(t *testing.T) {
	root := t.TempDir()
	s, err := New(root)
	require.NoError(t, err)

	rel, err := s.SaveMaritimeDocument("cert.pdf", []byte("x"))
	require.NoError(t, err)

	require.NoError(t, s.Remove(rel))
	_, err = os.Stat(filepath.Join(root, rel))
	assert.True(t, os.IsNotExist(err))
}

func TestRemoveMissingFileIsNotAnError(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, s.Remove("maritime-documents/absent.pdf"))
}

func TestRemoveRejectsTraversal(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, s.Remove("../outside.txt"))
	assert.Error(t, s.Remove("/etc/passwd"))
}
