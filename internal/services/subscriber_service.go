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

var ErrAlreadySubscribed = errors.New("phone number is already subscribed")

type SubscriberService interface {
	Subscribe(ctx context.Context, phone string) (*models.Subscriber, error)
	ListSubscribers(ctx context.Context, params *utils.PaginationParams) ([]*models.Subscriber, int64, error)
	UpdateSubscriber(ctx context.Context, id primitive.ObjectID, phone string) error
	DeleteSubscriber(ctx context.Context, id primitive.ObjectID) error
	DeleteSubscribers(ctx context.Context, ids []primitive.ObjectID) (int, error)

	// Broadcast sends one message to the given subscribers, or to every
	// subscriber when phones is empty.
	Broadcast(ctx context.Context, phones []string, message string) (*BroadcastResult, error)
}

type subscriberService struct {
	subscriberRepo interfaces.SubscriberRepository
	smsService     SMSService
	logger         *logger.Logger
}

func NewSubscriberService(subscriberRepo interfaces.SubscriberRepository, smsService SMSService, log *logger.Logger) SubscriberService {
	return &subscriberService{
		subscriberRepo: subscriberRepo,
		smsService:     smsService,
		logger:         log,
	}
}

func (s *subscriberService) Subscribe(ctx context.Context, phone string) (*models.Subscriber, error) {
	subscriber := &models.Subscriber{
		Phone: utils.FormatPhone(phone),
	}

	if err := s.subscriberRepo.Create(ctx, subscriber); err != nil {
		if errors.Is(err, interfaces.ErrDuplicate) {
			return nil, ErrAlreadySubscribed
		}
		return nil, err
	}

	s.logger.WithField("phone", utils.MaskPhone(subscriber.Phone)).Info("new subscriber")
	return subscriber, nil
}

func (s *subscriberService) ListSubscribers(ctx context.Context, params *utils.PaginationParams) ([]*models.Subscriber, int64, error) {
	return s.subscriberRepo.GetAll(ctx, params)
}

func (s *subscriberService) UpdateSubscriber(ctx context.Context, id primitive.ObjectID, phone string) error {
	err := s.subscriberRepo.UpdatePhone(ctx, id, utils.FormatPhone(phone))
	if errors.Is(err, interfaces.ErrDuplicate) {
		return ErrAlreadySubscribed
	}
	return err
}

func (s *subscriberService) DeleteSubscriber(ctx context.Context, id primitive.ObjectID) error {
	return s.subscriberRepo.Delete(ctx, id)
}

func (s *subscriberService) DeleteSubscribers(ctx context.Context, ids []primitive.ObjectID) (int, error) {
	deleted := 0
	for _, id := range ids {
		if err := s.subscriberRepo.Delete(ctx, id); err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				continue
			}
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

func (s *subscriberService) Broadcast(ctx context.Context, phones []string, message string) (*BroadcastResult, error) {
	if len(phones) == 0 {
		all, err := s.subscriberRepo.GetAllPhones(ctx)
		if err != nil {
			return nil, err
		}
		phones = all
	}

	return s.smsService.Broadcast(ctx, phones, message)
}
