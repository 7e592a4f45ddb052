package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/cedrulion/murika-farm/internal/core/domain"
	"github.com/cedrulion/murika-farm/internal/core/ports"
)

// ProductService implements marketplace inventory use cases.
type ProductService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

func (s *ProductService) Create(ctx context.Context, actor ports.Actor, input ports.ProductInput) (*domain.Product, error) {
	now := time.Now().UTC()
	product := &domain.Product{
		OwnerID:     actor.UserID,
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Quantity:    input.Quantity,
		ImagePath:   input.ImagePath,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", created.ID).Str("owner_id", actor.UserID).Msg("product created")
	return created, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context, filter ports.ListProductsFilter) ([]*domain.Product, error) {
	return s.repo.List(ctx, filter)
}

func (s *ProductService) Update(ctx context.Context, actor ports.Actor, id string, input ports.ProductInput) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, product); err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Category = input.Category
	product.Price = input.Price
	product.Quantity = input.Quantity
	if input.ImagePath != "" {
		product.ImagePath = input.ImagePath
	}
	product.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, product)
}

func (s *ProductService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(actor, product); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// authorize lets admins and inventory managers touch any listing; suppliers
// only their own.
func (s *ProductService) authorize(actor ports.Actor, product *domain.Product) error {
	switch actor.Role {
	case domain.RoleAdmin, domain.RoleInventoryManager:
		return nil
	}
	if product.OwnerID != actor.UserID {
		return domain.ErrForbidden
	}
	return nil
}
