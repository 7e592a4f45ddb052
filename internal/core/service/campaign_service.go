package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/cedrulion/murika-farm/internal/core/domain"
	"github.com/cedrulion/murika-farm/internal/core/ports"
)

// CampaignService implements marketing campaign use cases.
type CampaignService struct {
	repo   ports.CampaignRepository
	logger zerolog.Logger
}

func NewCampaignService(repo ports.CampaignRepository, logger zerolog.Logger) *CampaignService {
	return &CampaignService{repo: repo, logger: logger}
}

func (s *CampaignService) Create(ctx context.Context, actor ports.Actor, input ports.CampaignInput) (*domain.Campaign, error) {
	status := input.Status
	if status == "" {
		status = domain.CampaignDraft
	}

	now := time.Now().UTC()
	campaign := &domain.Campaign{
		Title:       input.Title,
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      status,
		CreatedBy:   actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, campaign)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("campaign_id", created.ID).Str("created_by", actor.UserID).Msg("campaign created")
	return created, nil
}

func (s *CampaignService) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CampaignService) List(ctx context.Context) ([]*domain.Campaign, error) {
	return s.repo.List(ctx)
}

func (s *CampaignService) Update(ctx context.Context, id string, input ports.CampaignInput) (*domain.Campaign, error) {
	campaign, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	campaign.Title = input.Title
	campaign.Description = input.Description
	campaign.StartDate = input.StartDate
	campaign.EndDate = input.EndDate
	if input.Status != "" {
		campaign.Status = input.Status
	}
	campaign.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, campaign)
}

func (s *CampaignService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
