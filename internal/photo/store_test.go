package photo

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("foto", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, "/", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["foto"][0]
}

func TestSaveKeepsExtension(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	name, err := store.Save(fileHeader(t, "Çocuk Fotoğrafı.JPG", []byte("jpeg-bytes")))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(name, ".jpg"), "extension lowercased and kept: %s", name)
	assert.NotContains(t, name, "Çocuk", "client filename discarded")

	data, err := os.ReadFile(filepath.Join(store.Dir(), name))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), data)
}

func TestSaveNamesDoNotCollide(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	a, err := store.Save(fileHeader(t, "a.png", []byte("a")))
	require.NoError(t, err)
	b, err := store.Save(fileHeader(t, "a.png", []byte("b")))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestRemove(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	name, err := store.Save(fileHeader(t, "a.png", []byte("a")))
	require.NoError(t, err)

	require.NoError(t, store.Remove(name))
	_, err = os.Stat(filepath.Join(store.Dir(), name))
	assert.True(t, os.IsNotExist(err))

	// Missing files and suspicious names are ignored.
	assert.NoError(t, store.Remove(name))
	assert.NoError(t, store.Remove("../outside.txt"))
	assert.NoError(t, store.Remove(""))
}
