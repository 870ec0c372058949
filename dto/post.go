package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"blog-api/models"
)

// PostDTO is the wire shape of a post. It exposes exactly id, author, title, content and created.
// Author is flattened by FlattenAuthor; storage keeps first and last name separately.
type PostDTO struct {
	ID      string    `json:"id" example:"665f1c2e9b1e8a0f5c3d2a11"`
	Author  string    `json:"author" example:"Ada Lovelace"`
	Title   string    `json:"title" example:"engines"`
	Content string    `json:"content"`
	Created time.Time `json:"created"`
}

// FlattenAuthor renders {firstName, lastName} as "First Last", trimmed.
// An author with only one name yields that name with no surrounding space.
func FlattenAuthor(a models.Author) string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// SplitAuthorName is the inverse of FlattenAuthor: the first whitespace-separated token
// becomes the first name and the remainder the last name.
func SplitAuthorName(name string) models.Author {
	name = strings.TrimSpace(name)
	if i := strings.IndexFunc(name, isSpace); i >= 0 {
		return models.Author{
			FirstName: name[:i],
			LastName:  strings.TrimSpace(name[i:]),
		}
	}
	return models.Author{FirstName: name}
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' }

// NewPostDTO constructs PostDTO from models.Post
func NewPostDTO(p models.Post) PostDTO {
	return PostDTO{
		ID:      p.ID.Hex(),
		Author:  FlattenAuthor(p.Author),
		Title:   p.Title,
		Content: p.Content,
		Created: p.Created,
	}
}

func NewPostDTOs(posts []models.Post) []PostDTO {
	out := make([]PostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewPostDTO(p))
	}
	return out
}

// AuthorInput accepts an author either as {"firstName": "...", "lastName": "..."}
// or as a flat "First Last" string.
type AuthorInput struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

func (a *AuthorInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		au := SplitAuthorName(name)
		a.FirstName, a.LastName = au.FirstName, au.LastName
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	type plain AuthorInput
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("author must be an object or a string: %w", err)
	}
	*a = AuthorInput(p)
	return nil
}

func (a AuthorInput) Model() models.Author {
	return models.Author{
		FirstName: strings.TrimSpace(a.FirstName),
		LastName:  strings.TrimSpace(a.LastName),
	}
}

// CreatePostRequest is the POST /posts body.
type CreatePostRequest struct {
	Title   string      `json:"title" binding:"required" example:"engines"`
	Author  AuthorInput `json:"author"`
	Content string      `json:"content" binding:"required"`
	Created *time.Time  `json:"created,omitempty"`
}

// UpdatePostRequest is the PUT /posts/:id body. Every field is optional; the path id wins
// over any id in the body.
type UpdatePostRequest struct {
	ID      string        `json:"id,omitempty"`
	Title   *string       `json:"title,omitempty"`
	Author  *UpdateAuthor `json:"author,omitempty"`
	Content *string       `json:"content,omitempty"`
	Created *time.Time    `json:"created,omitempty"`
}

// UpdateAuthor is AuthorInput without the required constraints, so a PUT may change one name.
type UpdateAuthor struct {
	FirstName *string
	LastName  *string
}

func (a *UpdateAuthor) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		au := SplitAuthorName(name)
		a.FirstName, a.LastName = &au.FirstName, &au.LastName
		return nil
	}
	var p struct {
		FirstName *string `json:"firstName"`
		LastName  *string `json:"lastName"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("author must be an object or a string: %w", err)
	}
	a.FirstName, a.LastName = p.FirstName, p.LastName
	return nil
}
