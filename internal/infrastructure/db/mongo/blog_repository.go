package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkwell/publishing-api/internal/core/domain"
	"github.com/inkwell/publishing-api/internal/core/ports"
)

const blogsCollection = "blogs"

type BlogRepository struct {
	coll *mongo.Collection
}

func NewBlogRepository(db *mongo.Database) *BlogRepository {
	return &BlogRepository{coll: db.Collection(blogsCollection)}
}

type mongoAuthorRef struct {
	ID       string `bson:"id"`
	Username string `bson:"username"`
	Email    string `bson:"email,omitempty"`
}

type mongoBlog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	Category  string             `bson:"category"`
	Thumbnail string             `bson:"thumbnail,omitempty"`
	AuthorID  string             `bson:"author_id"`
	Author    mongoAuthorRef     `bson:"author"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (r *BlogRepository) Create(ctx context.Context, b *domain.Blog) (*domain.Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, toMongoBlog(b))
	if err != nil {
		return nil, fmt.Errorf("insert blog: %w", err)
	}

	created := *b
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *BlogRepository) FindByID(ctx context.Context, id string) (*domain.Blog, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBlogNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mb mongoBlog
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBlogNotFound
		}
		return nil, fmt.Errorf("find blog: %w", err)
	}
	return mb.toDomain(), nil
}

// List returns blogs matching filter, newest first.
func (r *BlogRepository) List(ctx context.Context, filter ports.ContentFilter) ([]*domain.Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := contentQuery(filter)
	cur, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	defer cur.Close(ctx)

	var blogs []*domain.Blog
	for cur.Next(ctx) {
		var mb mongoBlog
		if err := cur.Decode(&mb); err != nil {
			return nil, fmt.Errorf("decode blog: %w", err)
		}
		blogs = append(blogs, mb.toDomain())
	}
	return blogs, cur.Err()
}

func (r *BlogRepository) Update(ctx context.Context, b *domain.Blog) (*domain.Blog, error) {
	oid, err := primitive.ObjectIDFromHex(b.ID)
	if err != nil {
		return nil, domain.ErrBlogNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"title":      b.Title,
		"content":    b.Content,
		"category":   b.Category,
		"thumbnail":  b.Thumbnail,
		"updated_at": b.UpdatedAt,
	}})
	if err != nil {
		return nil, fmt.Errorf("update blog: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrBlogNotFound
	}
	return b, nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBlogNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBlogNotFound
	}
	return nil
}

func (r *BlogRepository) DeleteByAuthor(ctx context.Context, authorID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"author_id": authorID}); err != nil {
		return fmt.Errorf("delete blogs by author: %w", err)
	}
	return nil
}

// contentQuery builds the shared blog/article filter document.
func contentQuery(filter ports.ContentFilter) bson.M {
	query := bson.M{}
	if filter.Search != "" {
		query["title"] = bson.M{"$regex": filter.Search, "$options": "i"}
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.AuthorID != "" {
		query["author_id"] = filter.AuthorID
	}
	return query
}

func toMongoBlog(b *domain.Blog) mongoBlog {
	return mongoBlog{
		Title:     b.Title,
		Content:   b.Content,
		Category:  b.Category,
		Thumbnail: b.Thumbnail,
		AuthorID:  b.AuthorID,
		Author: mongoAuthorRef{
			ID:       b.Author.ID,
			Username: b.Author.Username,
			Email:    b.Author.Email,
		},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func (mb *mongoBlog) toDomain() *domain.Blog {
	return &domain.Blog{
		ID:        mb.ID.Hex(),
		Title:     mb.Title,
		Content:   mb.Content,
		Category:  mb.Category,
		Thumbnail: mb.Thumbnail,
		AuthorID:  mb.AuthorID,
		Author: domain.AuthorRef{
			ID:       mb.Author.ID,
			Username: mb.Author.Username,
			Email:    mb.Author.Email,
		},
		CreatedAt: mb.CreatedAt,
		UpdatedAt: mb.UpdatedAt,
	}
}
