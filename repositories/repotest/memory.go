// Package repotest provides an in-memory stand-in for repositories.PostRepository.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-api/models"
	"blog-api/repositories"
)

// MemoryStore keeps posts in a map. Set Err to make every call fail with a StorageError.
type MemoryStore struct {
	mu    sync.Mutex
	posts map[primitive.ObjectID]models.Post
	Err   error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{posts: map[primitive.ObjectID]models.Post{}}
}

func (s *MemoryStore) fail(op string) error {
	if s.Err == nil {
		return nil
	}
	return &repositories.StorageError{Op: op, Err: s.Err}
}

func (s *MemoryStore) Insert(_ context.Context, p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("insert"); err != nil {
		return err
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Created.IsZero() {
		p.Created = time.Now().UTC()
	}
	p.Created = p.Created.Truncate(time.Millisecond)
	s.posts[p.ID] = *p
	return nil
}

func (s *MemoryStore) InsertMany(ctx context.Context, posts []models.Post) ([]models.Post, error) {
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		p.ID = primitive.NilObjectID
		if err := s.Insert(ctx, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *MemoryStore) FindAll(context.Context) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("find all"); err != nil {
		return nil, err
	}
	out := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Created.Equal(out[j].Created) {
			return out[i].Created.After(out[j].Created)
		}
		return out[i].ID.Hex() > out[j].ID.Hex()
	})
	return out, nil
}

func (s *MemoryStore) FindOne(ctx context.Context) (*models.Post, error) {
	all, err := s.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, repositories.ErrNotFound
	}
	return &all[0], nil
}

func (s *MemoryStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("find by id"); err != nil {
		return nil, err
	}
	p, ok := s.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStore) UpdateByID(_ context.Context, id primitive.ObjectID, u repositories.PostUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("update by id"); err != nil {
		return err
	}
	p, ok := s.posts[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Content != nil {
		p.Content = *u.Content
	}
	if u.AuthorFirstName != nil {
		p.Author.FirstName = *u.AuthorFirstName
	}
	if u.AuthorLastName != nil {
		p.Author.LastName = *u.AuthorLastName
	}
	if u.Created != nil && !u.Created.IsZero() {
		p.Created = *u.Created
	}
	s.posts[id] = p
	return nil
}

func (s *MemoryStore) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("delete by id"); err != nil {
		return err
	}
	if _, ok := s.posts[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s *MemoryStore) Count(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("count"); err != nil {
		return 0, err
	}
	return int64(len(s.posts)), nil
}

// Reset drops every stored post.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = map[primitive.ObjectID]models.Post{}
}
