package ports

import (
	"context"
	"time"

	"github.com/cedrulion/murika-farm/internal/core/domain"
)

// CampaignInput carries the writable campaign fields.
type CampaignInput struct {
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Status      domain.CampaignStatus
}

// CampaignRepository defines persistence operations for campaigns.
type CampaignRepository interface {
	Create(ctx context.Context, c *domain.Campaign) (*domain.Campaign, error)
	FindByID(ctx context.Context, id string) (*domain.Campaign, error)
	List(ctx context.Context) ([]*domain.Campaign, error)
	Update(ctx context.Context, c *domain.Campaign) (*domain.Campaign, error)
	Delete(ctx context.Context, id string) error
}

// CampaignService defines campaign use cases.
type CampaignService interface {
	Create(ctx context.Context, actor Actor, input CampaignInput) (*domain.Campaign, error)
	Get(ctx context.Context, id string) (*domain.Campaign, error)
	List(ctx context.Context) ([]*domain.Campaign, error)
	Update(ctx context.Context, id string, input CampaignInput) (*domain.Campaign, error)
	Delete(ctx context.Context, id string) error
}
