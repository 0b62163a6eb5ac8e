package services

import (
	"context"
	"time"

	"luco/internal/models"
	"luco/internal/repositories/interfaces"
	"luco/pkg/logger"
	"luco/pkg/recommend"
)

const defaultRecommendationLimit = 3

type RecommendationService interface {
	// Recommend returns the active vouchers that best match the buyer's
	// purchase-history text, best match first.
	Recommend(ctx context.Context, history string, limit int) ([]*models.Voucher, error)
}

type recommendationService struct {
	voucherRepo interfaces.VoucherRepository
	scorer      *recommend.Scorer
	logger      *logger.Logger
}

func NewRecommendationService(voucherRepo interfaces.VoucherRepository, log *logger.Logger) RecommendationService {
	return &recommendationService{
		voucherRepo: voucherRepo,
		scorer:      recommend.NewScorer(),
		logger:      log,
	}
}

func (s *recommendationService) Recommend(ctx context.Context, history string, limit int) ([]*models.Voucher, error) {
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}

	active, err := s.voucherRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	byID := make(map[string]*models.Voucher, len(active))
	candidates := make([]recommend.Candidate, 0, len(active))
	for _, v := range active {
		if !v.IsPurchasable(now) {
			continue
		}
		id := v.ID.Hex()
		byID[id] = v
		candidates = append(candidates, recommend.Candidate{
			ID:          id,
			Title:       v.Title,
			Description: v.Description,
			Category:    string(v.Category),
			IsNew:       v.IsNew,
		})
	}

	ranked := s.scorer.Rank(history, candidates, limit)

	vouchers := make([]*models.Voucher, 0, len(ranked))
	for _, rec := range ranked {
		vouchers = append(vouchers, byID[rec.ID])
	}

	return vouchers, nil
}
