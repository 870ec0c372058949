package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blog-api/models"
)

const PostsCollection = "posts"

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection(PostsCollection)}
}

// PostUpdate carries the fields a caller wants to replace. Nil or empty fields are left unchanged.
type PostUpdate struct {
	Title           *string
	Content         *string
	AuthorFirstName *string
	AuthorLastName  *string
	Created         *time.Time
}

// IsEmpty reports whether the update would change nothing.
func (u PostUpdate) IsEmpty() bool {
	return len(u.setDoc()) == 0
}

func (u PostUpdate) setDoc() bson.M {
	set := bson.M{}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Content != nil {
		set["content"] = *u.Content
	}
	if u.AuthorFirstName != nil {
		set["author.firstName"] = *u.AuthorFirstName
	}
	if u.AuthorLastName != nil {
		set["author.lastName"] = *u.AuthorLastName
	}
	if u.Created != nil && !u.Created.IsZero() {
		set["created"] = *u.Created
	}
	return set
}

// EnsureIndexes creates the indexes the posts collection relies on.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "created", Value: -1}},
		Options: options.Index().SetName("idx_created_desc"),
	})
	return storageErr("ensure indexes", err)
}

func prepareForInsert(p *models.Post, now time.Time) {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Created.IsZero() {
		p.Created = now
	}
	// BSON datetimes keep milliseconds; match what a later read returns.
	p.Created = p.Created.Truncate(time.Millisecond)
}

// Insert inserts a new post document, assigning its id and default created time.
func (r *PostRepository) Insert(ctx context.Context, p *models.Post) error {
	prepareForInsert(p, time.Now().UTC())
	_, err := r.col.InsertOne(ctx, p)
	return storageErr("insert", err)
}

// InsertMany bulk-creates posts. Every input receives a fresh id.
func (r *PostRepository) InsertMany(ctx context.Context, posts []models.Post) ([]models.Post, error) {
	if len(posts) == 0 {
		return nil, nil
	}
	now := time.Now().UTC()
	out := make([]models.Post, len(posts))
	docs := make([]interface{}, len(posts))
	for i := range posts {
		p := posts[i]
		p.ID = primitive.NilObjectID
		prepareForInsert(&p, now)
		out[i] = p
		docs[i] = p
	}
	if _, err := r.col.InsertMany(ctx, docs); err != nil {
		return nil, storageErr("insert many", err)
	}
	return out, nil
}

// FindAll returns every post, newest first.
func (r *PostRepository) FindAll(ctx context.Context) ([]models.Post, error) {
	findOpts := options.Find().SetSort(bson.D{
		{Key: "created", Value: -1},
		{Key: "_id", Value: -1},
	})
	cur, err := r.col.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, storageErr("find all", err)
	}
	defer cur.Close(ctx)

	results := make([]models.Post, 0)
	for cur.Next(ctx) {
		var p models.Post
		if err := cur.Decode(&p); err != nil {
			return nil, storageErr("decode post", err)
		}
		results = append(results, p)
	}
	if err := cur.Err(); err != nil {
		return nil, storageErr("find all", err)
	}
	return results, nil
}

// FindOne returns an arbitrary stored post.
func (r *PostRepository) FindOne(ctx context.Context) (*models.Post, error) {
	return r.findOne(ctx, "find one", bson.M{})
}

// FindByID returns a post by its ObjectID
func (r *PostRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	return r.findOne(ctx, "find by id", bson.M{"_id": id})
}

func (r *PostRepository) findOne(ctx context.Context, op string, filter bson.M) (*models.Post, error) {
	var p models.Post
	if err := r.col.FindOne(ctx, filter).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, storageErr(op, err)
	}
	return &p, nil
}

// UpdateByID merges the supplied fields into the stored post.
func (r *PostRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, u PostUpdate) error {
	set := u.setDoc()
	if len(set) == 0 {
		_, err := r.FindByID(ctx, id)
		return err
	}
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return storageErr("update by id", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByID removes a post. ErrNotFound is returned when nothing was deleted.
func (r *PostRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storageErr("delete by id", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of stored posts.
func (r *PostRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, storageErr("count", err)
	}
	return n, nil
}
