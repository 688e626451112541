package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/knst/site-services/internal/content"
	"github.com/knst/site-services/internal/content/provider"
	"github.com/knst/site-services/internal/content/repository"
	"github.com/knst/site-services/internal/uploads"
)

type testBlob struct{}

func (testBlob) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	return nil
}
func (testBlob) PublicURL(key string) string { return "https://blobs.test/" + key }

func newTestRouter(t *testing.T) (*gin.Engine, *provider.Provider) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	prov := provider.New(repository.NewMemoryRepo(), false)
	require.NoError(t, prov.Start(context.Background()))

	g := gin.New()
	RegisterContentRoutes(g, prov)
	pl := uploads.NewPipeline(testBlob{}, prov, 1024)
	RegisterAdminRoutes(g.Group("/api/admin"), prov, pl)
	return g, prov
}

func TestGetContent(t *testing.T) {
	g, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/content", nil)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Content map[string]any `json:"content"`
		Loading bool           `json:"loading"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.False(t, body.Loading)
	hero, ok := body.Content["hero"].(map[string]any)
	require.True(t, ok)
	require.NotEmpty(t, hero["title"])
}

func TestGetSections(t *testing.T) {
	g, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/content/sections", nil)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var sections []content.SectionInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sections))
	require.Len(t, sections, 8)
	require.Equal(t, "hero", sections[0].ID)
}

func patchContent(t *testing.T, g *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/admin/content", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)
	return w
}

func TestPatchContent(t *testing.T) {
	g, prov := newTestRouter(t)

	w := patchContent(t, g, `{"path":"hero.title","value":"Edited"}`)
	require.Equal(t, http.StatusOK, w.Code)

	p, _ := content.ParsePath("hero.title")
	v, _ := prov.Snapshot().Lookup(p)
	require.Equal(t, "Edited", v)
}

func TestPatchContentRejectsUnknownPath(t *testing.T) {
	g, _ := newTestRouter(t)

	w := patchContent(t, g, `{"path":"hero.titel","value":"typo"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "unknown content path")
}

// A path addressing a whole section (or sub-record) must be rejected before
// anything is written: accepting it would replace the record with one value
// and break resolution of every field under it, in memory and in the store.
func TestPatchContentRejectsRecordPath(t *testing.T) {
	g, prov := newTestRouter(t)

	for _, path := range []string{"hero", "whyNST.card1"} {
		w := patchContent(t, g, `{"path":"`+path+`","value":"oops"}`)
		require.Equal(t, http.StatusBadRequest, w.Code, "path %q must be rejected", path)
		require.Contains(t, w.Body.String(), "record")
	}

	// the section is untouched: its leaves still resolve
	p, _ := content.ParsePath("hero.title")
	v, ok := prov.Snapshot().Lookup(p)
	require.True(t, ok, "hero.title must still resolve")
	require.NotEmpty(t, v)
}

func TestPatchContentValidatesKind(t *testing.T) {
	g, _ := newTestRouter(t)

	w := patchContent(t, g, `{"path":"theme.primaryColor","value":"not-a-color"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = patchContent(t, g, `{"path":"theme.primaryColor","value":"#336699"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = patchContent(t, g, `{"path":"hero.titleSize","value":"big"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPatchContentProjectsArray(t *testing.T) {
	g, prov := newTestRouter(t)

	w := patchContent(t, g, `{"path":"portfolio.projects","value":[{"id":1,"title":"Only One"}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	p, _ := content.ParsePath("portfolio.projects")
	v, _ := prov.Snapshot().Lookup(p)
	arr, ok := v.([]any)
	require.True(t, ok)
	require.Len(t, arr, 1)
}

func uploadImage(t *testing.T, g *gin.Engine, path, filename string, payload []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("path", path))
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/content/images", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	g.ServeHTTP(w, req)
	return w
}

func TestUploadImage(t *testing.T) {
	g, prov := newTestRouter(t)

	w := uploadImage(t, g, "hero.bgImage", "bg.jpg", []byte("img"))
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	url, _ := resp["url"].(string)
	require.Contains(t, url, "images/")
	require.Contains(t, url, "bg.jpg")

	p, _ := content.ParsePath("hero.bgImage")
	v, _ := prov.Snapshot().Lookup(p)
	require.Equal(t, url, v)
}

func TestUploadImageRejectsNonImagePath(t *testing.T) {
	g, _ := newTestRouter(t)

	w := uploadImage(t, g, "hero.title", "bg.jpg", []byte("img"))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadImageTooLarge(t *testing.T) {
	g, _ := newTestRouter(t)

	// pipeline ceiling in newTestRouter is 1 KiB
	w := uploadImage(t, g, "hero.bgImage", "big.jpg", bytes.Repeat([]byte("x"), 2048))
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestUploadsUnavailableWithoutPipeline(t *testing.T) {
	gin.SetMode(gin.TestMode)
	prov := provider.New(repository.NewMemoryRepo(), false)
	require.NoError(t, prov.Start(context.Background()))
	g := gin.New()
	RegisterAdminRoutes(g.Group("/api/admin"), prov, nil)

	w := uploadImage(t, g, "hero.bgImage", "bg.jpg", []byte("img"))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}
