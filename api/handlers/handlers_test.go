package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-api/dto"
	"blog-api/eventbus"
	"blog-api/models"
	"blog-api/repositories/repotest"
	"blog-api/services"
)

func newTestEngine(t *testing.T) (*gin.Engine, *repotest.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repotest.NewMemoryStore()
	svc := services.NewPostService(store, eventbus.NoopPublisher{}, "test")
	t.Cleanup(func() { _ = svc.Close(context.Background()) })

	r := gin.New()
	r.GET("/posts", ListPostsHandler(svc))
	r.GET("/posts/:id", GetPostHandler(svc))
	r.POST("/posts", CreatePostHandler(svc))
	r.PUT("/posts/:id", UpdatePostHandler(svc))
	r.DELETE("/posts/:id", DeletePostHandler(svc))
	return r, store
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body dto.ErrorResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestCreatePostHandler(t *testing.T) {
	r, store := newTestEngine(t)

	rec := do(r, http.MethodPost, "/posts", map[string]any{
		"title":   "engines",
		"author":  map[string]string{"firstName": "Ada", "lastName": "Lovelace"},
		"content": "notes",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var got dto.PostDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Ada Lovelace", got.Author)
	assert.Equal(t, "engines", got.Title)
	assert.Equal(t, "notes", got.Content)

	n, _ := store.Count(context.Background())
	assert.Equal(t, int64(1), n)

	// the echoed created must survive a read back unchanged
	again := do(r, http.MethodGet, "/posts/"+got.ID, nil)
	require.Equal(t, http.StatusOK, again.Code)
	var read dto.PostDTO
	require.NoError(t, json.Unmarshal(again.Body.Bytes(), &read))
	assert.True(t, got.Created.Equal(read.Created), "created %v != %v", got.Created, read.Created)
	assert.Zero(t, got.Created.Nanosecond()%int(time.Millisecond))
}

func TestCreatePostHandlerValidation(t *testing.T) {
	testCases := []struct {
		name string
		body any
	}{
		{name: "missing title", body: map[string]any{"author": map[string]string{"firstName": "A", "lastName": "B"}, "content": "c"}},
		{name: "missing author", body: map[string]any{"title": "t", "content": "c"}},
		{name: "missing last name", body: map[string]any{"title": "t", "author": map[string]string{"firstName": "A"}, "content": "c"}},
		{name: "missing content", body: map[string]any{"title": "t", "author": map[string]string{"firstName": "A", "lastName": "B"}}},
		{name: "blank title", body: map[string]any{"title": "   ", "author": map[string]string{"firstName": "A", "lastName": "B"}, "content": "c"}},
		{name: "author wrong type", body: map[string]any{"title": "t", "author": 12, "content": "c"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, store := newTestEngine(t)

			rec := do(r, http.MethodPost, "/posts", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			msg := decodeMessage(t, rec)
			assert.NotEmpty(t, msg)
			assert.NotContains(t, msg, "CreatePostRequest")

			n, _ := store.Count(context.Background())
			assert.Zero(t, n)
		})
	}
}

func TestGetPostHandlerNotFound(t *testing.T) {
	r, _ := newTestEngine(t)

	for _, id := range []string{"665f1c2e9b1e8a0f5c3d2a11", "not-hex"} {
		rec := do(r, http.MethodGet, "/posts/"+id, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "post not found", decodeMessage(t, rec))
	}
}

func TestUpdatePostHandler(t *testing.T) {
	r, store := newTestEngine(t)
	p := &models.Post{Author: models.Author{FirstName: "Ada", LastName: "Lovelace"}, Title: "t", Content: "old"}
	require.NoError(t, store.Insert(context.Background(), p))

	rec := do(r, http.MethodPut, "/posts/"+p.ID.Hex(), map[string]any{
		"id":      "ignored",
		"author":  map[string]string{"firstName": "Grace", "lastName": "Hopper"},
		"content": "new",
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	got, err := store.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Content)
	assert.Equal(t, models.Author{FirstName: "Grace", LastName: "Hopper"}, got.Author)
	assert.Equal(t, "t", got.Title)
}

func TestUpdatePostHandlerErrors(t *testing.T) {
	r, _ := newTestEngine(t)

	rec := do(r, http.MethodPut, "/posts/665f1c2e9b1e8a0f5c3d2a11", map[string]any{"content": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req := httptest.NewRequest(http.MethodPut, "/posts/665f1c2e9b1e8a0f5c3d2a11", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	bad := httptest.NewRecorder()
	r.ServeHTTP(bad, req)
	assert.Equal(t, http.StatusBadRequest, bad.Code)
	assert.Equal(t, "invalid request body", decodeMessage(t, bad))
}

func TestUpdatePostHandlerEmptyBody(t *testing.T) {
	r, store := newTestEngine(t)
	p := &models.Post{Author: models.Author{FirstName: "Ada", LastName: "Lovelace"}, Title: "t", Content: "c"}
	require.NoError(t, store.Insert(context.Background(), p))

	req := httptest.NewRequest(http.MethodPut, "/posts/"+p.ID.Hex(), nil)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid request body", decodeMessage(t, rec))
}

func TestUpdatePostHandlerRejectsBlankFields(t *testing.T) {
	testCases := []struct {
		name string
		body map[string]any
	}{
		{name: "empty author string", body: map[string]any{"author": ""}},
		{name: "empty first name", body: map[string]any{"author": map[string]string{"firstName": ""}}},
		{name: "blank last name", body: map[string]any{"author": map[string]string{"lastName": "  "}}},
		{name: "empty content", body: map[string]any{"content": ""}},
		{name: "author and content emptied", body: map[string]any{"author": "", "content": ""}},
		{name: "blank title", body: map[string]any{"title": " "}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, store := newTestEngine(t)
			p := &models.Post{Author: models.Author{FirstName: "Ada", LastName: "Lovelace"}, Title: "t", Content: "c"}
			require.NoError(t, store.Insert(context.Background(), p))

			rec := do(r, http.MethodPut, "/posts/"+p.ID.Hex(), tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decodeMessage(t, rec))

			got, err := store.FindByID(context.Background(), p.ID)
			require.NoError(t, err)
			assert.Equal(t, models.Author{FirstName: "Ada", LastName: "Lovelace"}, got.Author)
			assert.Equal(t, "c", got.Content)
			assert.Equal(t, "t", got.Title)
		})
	}
}

func TestDeletePostHandlerTwice(t *testing.T) {
	r, store := newTestEngine(t)
	p := &models.Post{Author: models.Author{FirstName: "Ada", LastName: "Lovelace"}, Title: "t", Content: "c"}
	require.NoError(t, store.Insert(context.Background(), p))

	first := do(r, http.MethodDelete, "/posts/"+p.ID.Hex(), nil)
	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Empty(t, first.Body.String())

	second := do(r, http.MethodDelete, "/posts/"+p.ID.Hex(), nil)
	assert.Equal(t, http.StatusNotFound, second.Code)
	assert.Equal(t, "post not found", decodeMessage(t, second))
}

func TestStorageErrorIsHidden(t *testing.T) {
	r, store := newTestEngine(t)
	store.Err = errors.New("dial tcp 10.0.0.5:27017: connection refused")

	rec := do(r, http.MethodGet, "/posts", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	msg := decodeMessage(t, rec)
	assert.Equal(t, "internal server error", msg)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}
