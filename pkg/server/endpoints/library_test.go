package endpoints

import (
	"bytes"
	"context"
	"encoding/base64"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppa-angola/portal-pedagogico/pkg/library"
)

func uploadRequest(t *testing.T, env *testEnv, folder, name, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("folder", folder))
	fw, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/admin/library/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+env.token(t, env.admin))
	rec := httptest.NewRecorder()
	env.srv.Router.ServeHTTP(rec, req)
	return rec
}

func libraryURL(prefix, p string) string {
	segs := strings.Split(strings.TrimPrefix(p, "/"), "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return prefix + strings.Join(segs, "/")
}

func TestLibrary_UploadAndRead(t *testing.T) {
	env := newTestEnv(t)

	rec := uploadRequest(t, env, "Iniciação", "programa.txt", "Vogais e consoantes")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var up struct {
		Success bool   `json:"success"`
		Path    string `json:"path"`
	}
	decodeBody(t, rec, &up)
	assert.Equal(t, "/Iniciação/programa.txt", up.Path)

	rec = env.do(t, "GET", "/api/library/files", nil, env.teacher)
	require.Equal(t, http.StatusOK, rec.Code)
	var tree []library.Entry
	decodeBody(t, rec, &tree)
	require.Len(t, tree, 1)
	assert.Equal(t, "Iniciação", tree[0].Name)
	assert.Equal(t, library.TypeDirectory, tree[0].Type)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "/Iniciação/programa.txt", tree[0].Children[0].Path)

	rec = env.do(t, "GET", libraryURL("/api/library/view/", up.Path), nil, env.teacher)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var view map[string]string
	decodeBody(t, rec, &view)
	decoded, err := base64.StdEncoding.DecodeString(view["base64"])
	require.NoError(t, err)
	assert.Equal(t, "Vogais e consoantes", string(decoded))

	rec = env.do(t, "GET", libraryURL("/api/library/extract-text/", up.Path), nil, env.teacher)
	require.Equal(t, http.StatusOK, rec.Code)
	var extracted map[string]string
	decodeBody(t, rec, &extracted)
	assert.Equal(t, "Vogais e consoantes", extracted["text"])

	t.Run("teachers cannot upload", func(t *testing.T) {
		rec := env.do(t, "POST", "/api/admin/library/upload", nil, env.teacher)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing file", func(t *testing.T) {
		rec := env.do(t, "GET", "/api/library/view/nada.pdf", nil, env.teacher)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, msgFileNotFound, errorOf(t, rec))
	})

	t.Run("escaping the root", func(t *testing.T) {
		rec := env.do(t, "GET", "/api/library/view/..%2F..%2Fetc%2Fpasswd", nil, env.teacher)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, msgInvalidPath, errorOf(t, rec))

		rec = env.do(t, "DELETE", "/api/admin/library/file", map[string]string{"filepath": "../segredo"}, env.admin)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLibrary_FoldersAndDelete(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "POST", "/api/admin/library/folder", map[string]string{"folderpath": "/Centrais de Documentos/Leis de Bases"}, env.admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, "POST", "/api/admin/library/folder", map[string]string{"folderpath": "/Centrais de Documentos/Leis de Bases"}, env.admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgFolderExists, errorOf(t, rec))

	_, err := env.lib.Save(context.Background(), "Centrais de Documentos/Leis de Bases", "lei.txt", strings.NewReader("Lei 17/16"))
	require.NoError(t, err)

	rec = env.do(t, "DELETE", "/api/admin/library/file", map[string]string{"filepath": "/Centrais de Documentos"}, env.admin)
	require.Equal(t, http.StatusOK, rec.Code)

	ok, err := env.lib.Exists(context.Background(), "Centrais de Documentos/Leis de Bases/lei.txt")
	require.NoError(t, err)
	assert.False(t, ok)

	rec = env.do(t, "DELETE", "/api/admin/library/file", map[string]string{"filepath": "/Centrais de Documentos"}, env.admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgFileNotFound, errorOf(t, rec))
}

func TestLibrary_StaticFiles(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.lib.Save(context.Background(), "Calendário", "calendario.txt", strings.NewReader("2026"))
	require.NoError(t, err)

	rec := env.do(t, "GET", libraryURL("/biblioteca/", "Calendário/calendario.txt"), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2026", rec.Body.String())
}
