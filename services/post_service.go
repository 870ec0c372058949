package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-api/dto"
	"blog-api/eventbus"
	"blog-api/events"
	"blog-api/logger"
	"blog-api/models"
	"blog-api/repositories"
)

// PostStore is the subset of repositories.PostRepository the service depends on.
type PostStore interface {
	Insert(ctx context.Context, p *models.Post) error
	FindAll(ctx context.Context) ([]models.Post, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, u repositories.PostUpdate) error
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// PostService encapsulates business logic for posts and DTO mapping.
//
// - store: posts 컬렉션 접근
// - publisher: 쓰기 성공 후 라이프사이클 이벤트 발행 (큐에 넣고 바로 반환, 실패해도 요청은 성공)
type PostService struct {
	store     PostStore
	publisher eventbus.Publisher
	topic     string

	mu     sync.Mutex
	closed bool
	queue  chan queuedEvent
	done   chan struct{}
}

type queuedEvent struct {
	typ    events.EventType
	postID string
	evt    eventbus.Event
}

const (
	eventQueueSize = 256
	publishTimeout = 5 * time.Second
)

// NewPostService starts the background publisher loop. Call Close to drain it.
func NewPostService(store PostStore, publisher eventbus.Publisher, topic string) *PostService {
	if publisher == nil {
		publisher = eventbus.NoopPublisher{}
	}
	s := &PostService{
		store:     store,
		publisher: publisher,
		topic:     topic,
		queue:     make(chan queuedEvent, eventQueueSize),
		done:      make(chan struct{}),
	}
	go s.publishLoop()
	return s
}

// Close stops accepting events and waits until queued ones have been handed to the publisher.
func (s *PostService) Close(ctx context.Context) error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.queue)
	}
	s.mu.Unlock()

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// parseID converts a hex id. Malformed ids cannot name a stored post, so they are not found.
func parseID(hexID string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid id %q", repositories.ErrNotFound, hexID)
	}
	return id, nil
}

// List returns every post as DTOs.
func (s *PostService) List(ctx context.Context) ([]dto.PostDTO, error) {
	items, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewPostDTOs(items), nil
}

// GetByID loads a post by its ObjectID hex and returns a DTO
func (s *PostService) GetByID(ctx context.Context, hexID string) (*dto.PostDTO, error) {
	id, err := parseID(hexID)
	if err != nil {
		return nil, err
	}
	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := dto.NewPostDTO(*p)
	return &d, nil
}

// Create validates the request and stores a new post.
func (s *PostService) Create(ctx context.Context, in dto.CreatePostRequest) (*dto.PostDTO, error) {
	p := models.Post{
		Author:  in.Author.Model(),
		Title:   strings.TrimSpace(in.Title),
		Content: in.Content,
	}
	if in.Created != nil {
		p.Created = *in.Created
	}
	if err := validatePost(p); err != nil {
		return nil, err
	}
	if err := s.store.Insert(ctx, &p); err != nil {
		return nil, err
	}
	s.publish(events.PostCreated, p.ID.Hex(), p.Title, dto.FlattenAuthor(p.Author))
	d := dto.NewPostDTO(p)
	return &d, nil
}

func validatePost(p models.Post) error {
	switch {
	case p.Title == "":
		return &ValidationError{Field: "title", Message: "is required"}
	case p.Author.FirstName == "":
		return &ValidationError{Field: "author.firstName", Message: "is required"}
	case p.Author.LastName == "":
		return &ValidationError{Field: "author.lastName", Message: "is required"}
	case strings.TrimSpace(p.Content) == "":
		return &ValidationError{Field: "content", Message: "is required"}
	}
	return nil
}

// Update replaces the supplied fields of the post identified by hexID.
func (s *PostService) Update(ctx context.Context, hexID string, in dto.UpdatePostRequest) error {
	id, err := parseID(hexID)
	if err != nil {
		return err
	}
	u, err := toPostUpdate(in)
	if err != nil {
		return err
	}
	if err := s.store.UpdateByID(ctx, id, u); err != nil {
		return err
	}
	if !u.IsEmpty() {
		var title string
		if u.Title != nil {
			title = *u.Title
		}
		s.publish(events.PostUpdated, id.Hex(), title, "")
	}
	return nil
}

func toPostUpdate(in dto.UpdatePostRequest) (repositories.PostUpdate, error) {
	var u repositories.PostUpdate
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return u, &ValidationError{Field: "title", Message: "must not be empty"}
		}
		u.Title = &title
	}
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return u, &ValidationError{Field: "content", Message: "must not be empty"}
		}
		u.Content = in.Content
	}
	if in.Author != nil {
		if in.Author.FirstName != nil {
			v := strings.TrimSpace(*in.Author.FirstName)
			if v == "" {
				return u, &ValidationError{Field: "author.firstName", Message: "must not be empty"}
			}
			u.AuthorFirstName = &v
		}
		if in.Author.LastName != nil {
			v := strings.TrimSpace(*in.Author.LastName)
			if v == "" {
				return u, &ValidationError{Field: "author.lastName", Message: "must not be empty"}
			}
			u.AuthorLastName = &v
		}
	}
	if in.Created != nil {
		created := in.Created.UTC().Truncate(time.Millisecond)
		u.Created = &created
	}
	return u, nil
}

// Delete removes the post identified by hexID.
func (s *PostService) Delete(ctx context.Context, hexID string) error {
	id, err := parseID(hexID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.publish(events.PostDeleted, id.Hex(), "", "")
	return nil
}

// publish enqueues a lifecycle event without waiting for the broker.
// A full queue drops the event.
func (s *PostService) publish(typ events.EventType, postID, title, author string) {
	eventID := uuid.NewString()
	evt, err := eventbus.NewJSONEvent(eventID, events.NewPostEvent(eventID, typ, postID, title, author))
	if err != nil {
		logPublishError(typ, postID, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		logger.WarnWithFields("post service closed, event dropped", logger.Fields{"event_type": string(typ), "post_id": postID})
		return
	}
	select {
	case s.queue <- queuedEvent{typ: typ, postID: postID, evt: evt}:
	default:
		logger.WarnWithFields("post event queue full, event dropped", logger.Fields{"event_type": string(typ), "post_id": postID})
	}
}

func (s *PostService) publishLoop() {
	defer close(s.done)
	for q := range s.queue {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		if err := s.publisher.Publish(ctx, s.topic, q.evt); err != nil {
			logPublishError(q.typ, q.postID, err)
		}
		cancel()
	}
}

func logPublishError(typ events.EventType, postID string, err error) {
	logger.ErrorWithFields("failed to publish post event", logger.Fields{
		"event_type": string(typ),
		"post_id":    postID,
		"error":      err.Error(),
	})
}
