package storage

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mpFile builds a real *multipart.FileHeader by writing and re-parsing a
// multipart body, so Open() works like it does for an incoming request.
func mpFile(t *testing.T, filename, contentType, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="files"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	fhs := form.File["files"]
	require.Len(t, fhs, 1)
	return fhs[0]
}

func TestValidate(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	tests := []struct {
		name    string
		fh      *multipart.FileHeader
		wantErr error
	}{
		{"pdf ok", mpFile(t, "doc.pdf", "application/pdf", "x"), nil},
		{"msword ok", mpFile(t, "doc.doc", "application/msword", "x"), nil},
		{"docx ok", mpFile(t, "doc.docx",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "x"), nil},
		{"image rejected", mpFile(t, "pic.png", "image/png", "x"), ErrFileType},
		{"charset parameter stripped", mpFile(t, "doc.pdf", "application/pdf; charset=binary", "x"), nil},
		{"oversized", &multipart.FileHeader{
			Filename: "big.pdf",
			Header:   textproto.MIMEHeader{"Content-Type": {"application/pdf"}},
			Size:     MaxFileSize + 1,
		}, ErrFileTooLarge},
		{"no header falls back to extension", &multipart.FileHeader{
			Filename: "doc.pdf",
			Header:   textproto.MIMEHeader{},
			Size:     10,
		}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Validate(tt.fh)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	name, err := store.Save(mpFile(t, "report.pdf", "application/pdf", "pdf bytes"))
	require.NoError(t, err)

	// stored name is random but keeps the extension
	assert.True(t, strings.HasSuffix(name, ".pdf"))
	assert.NotEqual(t, "report.pdf", name)

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(data))

	require.NoError(t, store.Remove(name))
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	_, err = store.Save(mpFile(t, "malware.exe", "application/octet-stream", "x"))
	assert.ErrorIs(t, err, ErrFileType)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	a, err := store.Save(mpFile(t, "doc.pdf", "application/pdf", "a"))
	require.NoError(t, err)
	b, err := store.Save(mpFile(t, "doc.pdf", "application/pdf", "b"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestNewLocalStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewLocalStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
