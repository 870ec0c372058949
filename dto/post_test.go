package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-api/models"
)

func TestFlattenAuthor(t *testing.T) {
	testCases := []struct {
		name   string
		author models.Author
		want   string
	}{
		{name: "both names", author: models.Author{FirstName: "Ada", LastName: "Lovelace"}, want: "Ada Lovelace"},
		{name: "first only", author: models.Author{FirstName: "Ada"}, want: "Ada"},
		{name: "last only", author: models.Author{LastName: "Lovelace"}, want: "Lovelace"},
		{name: "empty", want: ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FlattenAuthor(tc.author))
		})
	}
}

func TestSplitAuthorName(t *testing.T) {
	assert.Equal(t, models.Author{FirstName: "Ada", LastName: "Lovelace"}, SplitAuthorName("Ada Lovelace"))
	assert.Equal(t, models.Author{FirstName: "Mary", LastName: "Ann Evans"}, SplitAuthorName("  Mary   Ann Evans "))
	assert.Equal(t, models.Author{FirstName: "Plato"}, SplitAuthorName("Plato"))

	a := models.Author{FirstName: "Grace", LastName: "Hopper"}
	assert.Equal(t, a, SplitAuthorName(FlattenAuthor(a)))
}

func TestNewPostDTOKeys(t *testing.T) {
	p := models.Post{
		ID:      primitive.NewObjectID(),
		Author:  models.Author{FirstName: "Ada", LastName: "Lovelace"},
		Title:   "engines",
		Content: "body",
		Created: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	d := NewPostDTO(p)
	assert.Equal(t, p.ID.Hex(), d.ID)
	assert.Equal(t, "Ada Lovelace", d.Author)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{"id", "author", "title", "content", "created"}, keys)
}

func TestNewPostDTOsNeverNil(t *testing.T) {
	out := NewPostDTOs(nil)
	require.NotNil(t, out)
	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(raw))
}

func TestAuthorInputAcceptsObjectOrString(t *testing.T) {
	var req CreatePostRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"t","content":"c","author":{"firstName":"Ada","lastName":"Lovelace"}}`), &req))
	assert.Equal(t, models.Author{FirstName: "Ada", LastName: "Lovelace"}, req.Author.Model())

	req = CreatePostRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"author":"Grace Hopper"}`), &req))
	assert.Equal(t, models.Author{FirstName: "Grace", LastName: "Hopper"}, req.Author.Model())

	req = CreatePostRequest{}
	assert.Error(t, json.Unmarshal([]byte(`{"author":42}`), &req))
}

func TestUpdateAuthorPartial(t *testing.T) {
	var req UpdatePostRequest
	require.NoError(t, json.Unmarshal([]byte(`{"author":{"lastName":"Byron"},"content":"new"}`), &req))
	require.NotNil(t, req.Author)
	assert.Nil(t, req.Author.FirstName)
	require.NotNil(t, req.Author.LastName)
	assert.Equal(t, "Byron", *req.Author.LastName)
	require.NotNil(t, req.Content)
	assert.Nil(t, req.Title)

	req = UpdatePostRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"author":"Ada Lovelace","name":{"firstName":"x"}}`), &req))
	require.NotNil(t, req.Author)
	assert.Equal(t, "Ada", *req.Author.FirstName)
	assert.Equal(t, "Lovelace", *req.Author.LastName)
}
