package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/cedrulion/murika-farm/internal/core/domain"
	"github.com/cedrulion/murika-farm/internal/core/ports"
)

// ResourceService implements resource uploads. The file is written first;
// if the metadata insert fails the stored file is removed again so no
// orphan bytes accumulate.
type ResourceService struct {
	repo   ports.ResourceRepository
	files  ports.FileStore
	logger zerolog.Logger
}

func NewResourceService(repo ports.ResourceRepository, files ports.FileStore, logger zerolog.Logger) *ResourceService {
	return &ResourceService{repo: repo, files: files, logger: logger}
}

func (s *ResourceService) Upload(ctx context.Context, actor ports.Actor, input ports.UploadResourceInput) (*domain.Resource, error) {
	path, size, err := s.files.Save(input.FileName, input.Content)
	if err != nil {
		return nil, err
	}

	resource := &domain.Resource{
		Title:       input.Title,
		Description: input.Description,
		FilePath:    path,
		FileName:    input.FileName,
		ContentType: input.ContentType,
		SizeBytes:   size,
		UploadedBy:  actor.UserID,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, resource)
	if err != nil {
		if rmErr := s.files.Remove(path); rmErr != nil {
			s.logger.Warn().Err(rmErr).Str("path", path).Msg("failed to remove stored file after insert failure")
		}
		return nil, err
	}

	s.logger.Info().Str("resource_id", created.ID).Str("path", path).Int64("size", size).Msg("resource uploaded")
	return created, nil
}

func (s *ResourceService) Get(ctx context.Context, id string) (*domain.Resource, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ResourceService) List(ctx context.Context) ([]*domain.Resource, error) {
	return s.repo.List(ctx)
}

func (s *ResourceService) Delete(ctx context.Context, id string) error {
	resource, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.files.Remove(resource.FilePath); err != nil {
		s.logger.Warn().Err(err).Str("path", resource.FilePath).Msg("failed to remove stored file")
	}
	return nil
}
