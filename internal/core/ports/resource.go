package ports

import (
	"context"
	"io"

	"github.com/cedrulion/murika-farm/internal/core/domain"
)

// FileStore persists uploaded file contents. Implementations must assign
// collision-resistant names so concurrent uploads never clobber each other.
type FileStore interface {
	// Save writes the stream and returns the stored relative path and the
	// number of bytes written. originalName is used only for its extension.
	Save(originalName string, r io.Reader) (path string, size int64, err error)
	Remove(path string) error
}

// UploadResourceInput carries the metadata and content of an upload.
type UploadResourceInput struct {
	Title       string
	Description string
	FileName    string
	ContentType string
	Content     io.Reader
}

// ResourceRepository defines persistence operations for resource metadata.
type ResourceRepository interface {
	Create(ctx context.Context, r *domain.Resource) (*domain.Resource, error)
	FindByID(ctx context.Context, id string) (*domain.Resource, error)
	List(ctx context.Context) ([]*domain.Resource, error)
	Delete(ctx context.Context, id string) error
}

// ResourceService defines resource use cases. Delete removes both the
// metadata record and the stored file.
type ResourceService interface {
	Upload(ctx context.Context, actor Actor, input UploadResourceInput) (*domain.Resource, error)
	Get(ctx context.Context, id string) (*domain.Resource, error)
	List(ctx context.Context) ([]*domain.Resource, error)
	Delete(ctx context.Context, id string) error
}
