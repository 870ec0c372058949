// Package fixtures generates random but plausible posts for seeding and tests.
package fixtures

import (
	"github.com/brianvoe/gofakeit/v6"

	"blog-api/dto"
	"blog-api/models"
)

// Generator produces fake posts. A fixed seed gives a repeatable sequence.
type Generator struct {
	faker *gofakeit.Faker
}

// New returns a Generator. seed 0 picks a random seed.
func New(seed int64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

func (g *Generator) Author() models.Author {
	return models.Author{
		FirstName: g.faker.FirstName(),
		LastName:  g.faker.LastName(),
	}
}

func (g *Generator) Title() string {
	return g.faker.Word()
}

func (g *Generator) Content() string {
	return g.faker.Paragraph(3, 4, 12, "\n")
}

// Post returns an unsaved post with a created time in the past.
func (g *Generator) Post() models.Post {
	return models.Post{
		Author:  g.Author(),
		Title:   g.Title(),
		Content: g.Content(),
		Created: g.faker.PastDate().UTC(),
	}
}

func (g *Generator) Posts(n int) []models.Post {
	out := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, g.Post())
	}
	return out
}

// CreateRequest returns a well-formed POST /posts body.
func (g *Generator) CreateRequest() dto.CreatePostRequest {
	a := g.Author()
	return dto.CreatePostRequest{
		Title:   g.faker.Sentence(5),
		Author:  dto.AuthorInput{FirstName: a.FirstName, LastName: a.LastName},
		Content: g.faker.Paragraph(2, 3, 10, "\n"),
	}
}
