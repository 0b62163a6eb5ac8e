package services

import (
	"context"
	"errors"

	"luco/internal/models"
	"luco/internal/repositories/interfaces"
	"luco/internal/utils"
	"luco/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrInvalidImageURL = errors.New("image URL must be an absolute http(s) URL")

type BannerService interface {
	GetStorefrontBanners(ctx context.Context) ([]*models.Banner, error)
	ListBanners(ctx context.Context, params *utils.PaginationParams) ([]*models.Banner, int64, error)
	GetBanner(ctx context.Context, id primitive.ObjectID) (*models.Banner, error)
	CreateBanner(ctx context.Context, banner *models.Banner) error
	UpdateBanner(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	DeleteBanner(ctx context.Context, id primitive.ObjectID) error
}

type bannerService struct {
	bannerRepo interfaces.BannerRepository
	logger     *logger.Logger
}

func NewBannerService(bannerRepo interfaces.BannerRepository, log *logger.Logger) BannerService {
	return &bannerService{
		bannerRepo: bannerRepo,
		logger:     log,
	}
}

func (s *bannerService) GetStorefrontBanners(ctx context.Context) ([]*models.Banner, error) {
	return s.bannerRepo.GetLatest(ctx, utils.BannerCarouselSize)
}

func (s *bannerService) ListBanners(ctx context.Context, params *utils.PaginationParams) ([]*models.Banner, int64, error) {
	return s.bannerRepo.GetAll(ctx, params)
}

func (s *bannerService) GetBanner(ctx context.Context, id primitive.ObjectID) (*models.Banner, error) {
	return s.bannerRepo.GetByID(ctx, id)
}

func (s *bannerService) CreateBanner(ctx context.Context, banner *models.Banner) error {
	if !utils.IsValidURL(banner.ImageURL) {
		return ErrInvalidImageURL
	}
	banner.Description = utils.SanitizeString(banner.Description)
	banner.ImageHint = utils.SanitizeString(banner.ImageHint)

	if err := s.bannerRepo.Create(ctx, banner); err != nil {
		return err
	}

	s.logger.WithField("banner_id", banner.ID.Hex()).Info("banner created")
	return nil
}

func (s *bannerService) UpdateBanner(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return s.bannerRepo.Update(ctx, id, updates)
}

func (s *bannerService) DeleteBanner(ctx context.Context, id primitive.ObjectID) error {
	return s.bannerRepo.Delete(ctx, id)
}
