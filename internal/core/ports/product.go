package ports

import (
	"context"

	"github.com/cedrulion/murika-farm/internal/core/domain"
)

// ProductInput carries the writable product fields.
type ProductInput struct {
	Name        string
	Description string
	Category    string
	Price       float64
	Quantity    int
	ImagePath   string
}

// ListProductsFilter narrows product listings. Zero values mean no filter.
type ListProductsFilter struct {
	Category string
	OwnerID  string
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// Actor identifies the authenticated caller for ownership checks.
type Actor struct {
	UserID string
	Role   domain.Role
}

// ProductService defines product use cases. Suppliers may only mutate their
// own listings; admins and inventory managers may mutate any.
type ProductService interface {
	Create(ctx context.Context, actor Actor, input ProductInput) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, error)
	Update(ctx context.Context, actor Actor, id string, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, actor Actor, id string) error
}
