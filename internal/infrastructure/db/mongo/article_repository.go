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

const articlesCollection = "articles"

type ArticleRepository struct {
	coll *mongo.Collection
}

func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{coll: db.Collection(articlesCollection)}
}

type mongoArticle struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Introduction string             `bson:"introduction"`
	Body         string             `bson:"body"`
	Conclusion   string             `bson:"conclusion"`
	References   []string           `bson:"references,omitempty"`
	Tags         []string           `bson:"tags,omitempty"`
	Category     string             `bson:"category"`
	Thumbnail    string             `bson:"thumbnail,omitempty"`
	AuthorID     string             `bson:"author_id"`
	Author       mongoAuthorRef     `bson:"author"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (r *ArticleRepository) Create(ctx context.Context, a *domain.Article) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, toMongoArticle(a))
	if err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}

	created := *a
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id string) (*domain.Article, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrArticleNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ma mongoArticle
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, fmt.Errorf("find article: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *ArticleRepository) List(ctx context.Context, filter ports.ContentFilter) ([]*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, contentQuery(filter), options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer cur.Close(ctx)

	var articles []*domain.Article
	for cur.Next(ctx) {
		var ma mongoArticle
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode article: %w", err)
		}
		articles = append(articles, ma.toDomain())
	}
	return articles, cur.Err()
}

func (r *ArticleRepository) Update(ctx context.Context, a *domain.Article) (*domain.Article, error) {
	oid, err := primitive.ObjectIDFromHex(a.ID)
	if err != nil {
		return nil, domain.ErrArticleNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"title":        a.Title,
		"introduction": a.Introduction,
		"body":         a.Body,
		"conclusion":   a.Conclusion,
		"references":   a.References,
		"tags":         a.Tags,
		"category":     a.Category,
		"thumbnail":    a.Thumbnail,
		"updated_at":   a.UpdatedAt,
	}})
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrArticleNotFound
	}
	return a, nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrArticleNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

func (r *ArticleRepository) DeleteByAuthor(ctx context.Context, authorID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"author_id": authorID}); err != nil {
		return fmt.Errorf("delete articles by author: %w", err)
	}
	return nil
}

func toMongoArticle(a *domain.Article) mongoArticle {
	return mongoArticle{
		Title:        a.Title,
		Introduction: a.Introduction,
		Body:         a.Body,
		Conclusion:   a.Conclusion,
		References:   a.References,
		Tags:         a.Tags,
		Category:     a.Category,
		Thumbnail:    a.Thumbnail,
		AuthorID:     a.AuthorID,
		Author: mongoAuthorRef{
			ID:       a.Author.ID,
			Username: a.Author.Username,
			Email:    a.Author.Email,
		},
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (ma *mongoArticle) toDomain() *domain.Article {
	return &domain.Article{
		ID:           ma.ID.Hex(),
		Title:        ma.Title,
		Introduction: ma.Introduction,
		Body:         ma.Body,
		Conclusion:   ma.Conclusion,
		References:   ma.References,
		Tags:         ma.Tags,
		Category:     ma.Category,
		Thumbnail:    ma.Thumbnail,
		AuthorID:     ma.AuthorID,
		Author: domain.AuthorRef{
			ID:       ma.Author.ID,
			Username: ma.Author.Username,
			Email:    ma.Author.Email,
		},
		CreatedAt: ma.CreatedAt,
		UpdatedAt: ma.UpdatedAt,
	}
}
