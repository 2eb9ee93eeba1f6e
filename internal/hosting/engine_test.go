package hosting

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dvloasia/pagehost/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(t.TempDir())
	require.NoError(t, err)
	return e
}

func file(name, content string) domain.IncomingFile {
	return domain.IncomingFile{Name: name, Content: strings.NewReader(content)}
}

func TestUploadRejectsTraversal(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.CreateStorage("alice-blog"))

	res, err := e.UploadFiles("alice-blog", []domain.IncomingFile{
		file("../../etc/passwd", "pwned"),
		file("sub/dir.html", "x"),
		file(`win\style.css`, "x"),
	})
	require.NoError(t, err)
	assert.Empty(t, res.Accepted)
	require.Len(t, res.Rejected, 3)
	for _, r := range res.Rejected {
		assert.Equal(t, "unsafe filename", r.Reason)
	}

	// Nothing may appear outside the project directory.
	_, err = os.Stat(filepath.Join(e.Root(), "..", "etc", "passwd"))
	assert.True(t, os.IsNotExist(err))
}

func TestUploadRejectsDisallowedType(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.CreateStorage("alice-blog"))

	res, err := e.UploadFiles("alice-blog", []domain.IncomingFile{
		file("payload.exe", "MZ"),
		file("no-extension", "x"),
		file("index.html", "<h1>hi</h1>"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"index.html"}, res.Accepted)
	require.Len(t, res.Rejected, 2)
	assert.Equal(t, "disallowed type", res.Rejected[0].Reason)
	assert.Equal(t, "disallowed type", res.Rejected[1].Reason)
}

func TestUploadTransferError(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.CreateStorage("alice-blog"))

	res, err := e.UploadFiles("alice-blog", []domain.IncomingFile{
		{Name: "index.html", TransferErr: errors.New("connection reset")},
		file("style.css", "body{}"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"style.css"}, res.Accepted)
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, "transfer error", res.Rejected[0].Reason)
}

func TestUploadOverwritesLastWriteWins(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.CreateStorage("alice-blog"))

	_, err := e.UploadFiles("alice-blog", []domain.IncomingFile{file("index.html", "first")})
	require.NoError(t, err)
	_, err = e.UploadFiles("alice-blog", []domain.IncomingFile{file("index.html", "second")})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(e.Root(), "alice-blog", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	// No temp files may stay visible after the rename.
	files, err := e.ListFiles("alice-blog")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "index.html", files[0].Name)
}

func TestUploadMissingDirectoryFailsWholeCall(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.UploadFiles("never-created", []domain.IncomingFile{file("index.html", "x")})
	assert.True(t, domain.IsStorage(err))
}

func TestListFiles(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.CreateStorage("alice-blog"))

	_, err := e.UploadFiles("alice-blog", []domain.IncomingFile{
		file("index.html", "<h1>hi</h1>"),
		file("style.css", "body{}"),
	})
	require.NoError(t, err)

	// Subdirectories are not part of the hosting model and are skipped.
	require.NoError(t, os.Mkdir(filepath.Join(e.Root(), "alice-blog", "nested"), 0o755))

	files, err := e.ListFiles("alice-blog")
	require.NoError(t, err)
	require.Len(t, files, 2)
	names := []string{files[0].Name, files[1].Name}
	assert.ElementsMatch(t, []string{"index.html", "style.css"}, names)
	for _, f := range files {
		assert.Greater(t, f.Size, int64(0))
		assert.False(t, f.ModifiedAt.IsZero())
	}
}

func TestListFilesAbsentDirectory(t *testing.T) {
	e := newTestEngine(t)
	files, err := e.ListFiles("ghost")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDeleteStorageIdempotent(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.CreateStorage("alice-blog"))
	_, err := e.UploadFiles("alice-blog", []domain.IncomingFile{file("index.html", "x")})
	require.NoError(t, err)

	require.NoError(t, e.DeleteStorage("alice-blog"))
	_, statErr := os.Stat(filepath.Join(e.Root(), "alice-blog"))
	assert.True(t, os.IsNotExist(statErr))

	// Second delete after the directory is already gone is a success.
	require.NoError(t, e.DeleteStorage("alice-blog"))
}

func TestResolveDefaultsAndFallsBack(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.CreateStorage("alice-blog"))
	_, err := e.UploadFiles("alice-blog", []domain.IncomingFile{
		file("index.html", "<h1>hi</h1>"),
		file("style.css", "body{}"),
	})
	require.NoError(t, err)

	path, ct, err := e.Resolve("alice-blog", "")
	require.NoError(t, err)
	assert.Equal(t, "text/html", ct)
	assert.Equal(t, "index.html", filepath.Base(path))

	path, ct, err = e.Resolve("alice-blog", "style.css")
	require.NoError(t, err)
	assert.Equal(t, "text/css", ct)
	assert.Equal(t, "style.css", filepath.Base(path))

	// Missing files fall back to index.html.
	path, _, err = e.Resolve("alice-blog", "missing.png")
	require.NoError(t, err)
	assert.Equal(t, "index.html", filepath.Base(path))
}

func TestResolveNeutralizesTraversal(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.CreateStorage("alice-blog"))
	_, err := e.UploadFiles("alice-blog", []domain.IncomingFile{file("index.html", "home")})
	require.NoError(t, err)

	for _, attempt := range []string{"../secret", "..\\secret", "a/../../b", "sub/file.html"} {
		path, ct, err := e.Resolve("alice-blog", attempt)
		require.NoError(t, err, attempt)
		assert.Equal(t, "index.html", filepath.Base(path), attempt)
		assert.Equal(t, "text/html", ct, attempt)
	}
}

func TestResolveNoContent(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.CreateStorage("alice-blog"))

	_, _, err := e.Resolve("alice-blog", "anything.html")
	assert.ErrorIs(t, err, domain.ErrNoContent)
}

func TestMimeFor(t *testing.T) {
	assert.Equal(t, "text/html", MimeFor("page.HTML"))
	assert.Equal(t, "font/woff2", MimeFor("font.woff2"))
	assert.Equal(t, "application/octet-stream", MimeFor("archive.tar"))
	assert.Equal(t, "application/octet-stream", MimeFor("noext"))
}
