package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Author is embedded in Post. It is a value, not a reference to another collection.
type Author struct {
	FirstName string `bson:"firstName" json:"firstName"`
	LastName  string `bson:"lastName" json:"lastName"`
}

// Post represents a blog post document
// Collection: posts
type Post struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Author  Author             `bson:"author" json:"author"`
	Title   string             `bson:"title" json:"title"`
	Content string             `bson:"content" json:"content"`
	Created time.Time          `bson:"created" json:"created"`
}
