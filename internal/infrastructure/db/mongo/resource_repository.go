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

	"github.com/cedrulion/murika-farm/internal/core/domain"
)

const resourcesCollection = "resources"

// ResourceRepository persists resource metadata; file contents live on disk.
type ResourceRepository struct {
	coll *mongo.Collection
}

func NewResourceRepository(db *mongo.Database) *ResourceRepository {
	return &ResourceRepository{coll: db.Collection(resourcesCollection)}
}

type mongoResource struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	FilePath    string             `bson:"file_path"`
	FileName    string             `bson:"file_name"`
	ContentType string             `bson:"content_type,omitempty"`
	SizeBytes   int64              `bson:"size_bytes"`
	UploadedBy  string             `bson:"uploaded_by"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (mr mongoResource) toDomain() *domain.Resource {
	return &domain.Resource{
		ID:          mr.ID.Hex(),
		Title:       mr.Title,
		Description: mr.Description,
		FilePath:    mr.FilePath,
		FileName:    mr.FileName,
		ContentType: mr.ContentType,
		SizeBytes:   mr.SizeBytes,
		UploadedBy:  mr.UploadedBy,
		CreatedAt:   mr.CreatedAt,
	}
}

func (r *ResourceRepository) Create(ctx context.Context, res *domain.Resource) (*domain.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoResource{
		Title:       res.Title,
		Description: res.Description,
		FilePath:    res.FilePath,
		FileName:    res.FileName,
		ContentType: res.ContentType,
		SizeBytes:   res.SizeBytes,
		UploadedBy:  res.UploadedBy,
		CreatedAt:   res.CreatedAt,
	}

	inserted, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert resource: %w", err)
	}

	created := *res
	created.ID = inserted.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ResourceRepository) FindByID(ctx context.Context, id string) (*domain.Resource, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrResourceNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mr mongoResource
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("find resource: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *ResourceRepository) List(ctx context.Context) ([]*domain.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer cur.Close(ctx)

	var resources []*domain.Resource
	for cur.Next(ctx) {
		var mr mongoResource
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode resource: %w", err)
		}
		resources = append(resources, mr.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	return resources, nil
}

func (r *ResourceRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrResourceNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}
