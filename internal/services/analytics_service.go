package services

import (
	"context"

	"luco/internal/repositories/interfaces"
	"luco/pkg/logger"
)

type AnalyticsService interface {
	GetVoucherSummary(ctx context.Context) (*VoucherSummary, error)
}

type VoucherSummary struct {
	ByStatus    map[string]int64 `json:"by_status"`
	ByCategory  map[string]int64 `json:"by_category"`
	Revenue     float64          `json:"revenue"`
	Members     int64            `json:"members"`
	Subscribers int64            `json:"subscribers"`
}

type analyticsService struct {
	voucherRepo    interfaces.VoucherRepository
	memberRepo     interfaces.MemberRepository
	subscriberRepo interfaces.SubscriberRepository
	logger         *logger.Logger
}

func NewAnalyticsService(
	voucherRepo interfaces.VoucherRepository,
	memberRepo interfaces.MemberRepository,
	subscriberRepo interfaces.SubscriberRepository,
	log *logger.Logger,
) AnalyticsService {
	return &analyticsService{
		voucherRepo:    voucherRepo,
		memberRepo:     memberRepo,
		subscriberRepo: subscriberRepo,
		logger:         log,
	}
}

func (s *analyticsService) GetVoucherSummary(ctx context.Context) (*VoucherSummary, error) {
	byStatus, err := s.voucherRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	byCategory, err := s.voucherRepo.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}

	revenue, err := s.voucherRepo.SumPurchasedRevenue(ctx)
	if err != nil {
		return nil, err
	}

	members, err := s.memberRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	subscribers, err := s.subscriberRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &VoucherSummary{
		ByStatus:    byStatus,
		ByCategory:  byCategory,
		Revenue:     revenue,
		Members:     members,
		Subscribers: subscribers,
	}, nil
}
