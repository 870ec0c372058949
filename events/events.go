package events

import (
	"time"
)

// EventType 이벤트 타입 정의
type EventType string

const (
	PostCreated EventType = "post.created"
	PostUpdated EventType = "post.updated"
	PostDeleted EventType = "post.deleted"
)

const (
	sourceAPI    = "blog-api"
	eventVersion = "1"
)

// BaseEvent 모든 이벤트의 기본 구조
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
}

// PostEvent is published after a post has been created, updated or deleted.
// Title and Author are empty for deletions.
type PostEvent struct {
	BaseEvent
	PostID string `json:"post_id"`
	Title  string `json:"title,omitempty"`
	Author string `json:"author,omitempty"`
}

func NewPostEvent(id string, typ EventType, postID, title, author string) PostEvent {
	return PostEvent{
		BaseEvent: BaseEvent{
			ID:        id,
			Type:      typ,
			Timestamp: time.Now().UTC(),
			Source:    sourceAPI,
			Version:   eventVersion,
		},
		PostID: postID,
		Title:  title,
		Author: author,
	}
}
