package services

import (
	"context"

	"luco/pkg/logger"
	"luco/pkg/sms"
)

// SMSService is the narrow messaging surface the other services consume.
type SMSService interface {
	SendSMS(ctx context.Context, phone, message string) error
	Broadcast(ctx context.Context, phones []string, message string) (*BroadcastResult, error)
}

type BroadcastResult struct {
	Sent   int      `json:"sent"`
	Failed int      `json:"failed"`
	Errors []string `json:"errors,omitempty"`
}

type smsService struct {
	provider sms.SMSProvider
	from     string
	logger   *logger.Logger
}

func NewSMSService(provider sms.SMSProvider, from string, log *logger.Logger) SMSService {
	return &smsService{
		provider: provider,
		from:     from,
		logger:   log,
	}
}

func (s *smsService) SendSMS(ctx context.Context, phone, message string) error {
	_, err := s.provider.SendSMS(ctx, &sms.SMSRequest{
		To:      phone,
		From:    s.from,
		Message: message,
		Type:    "transactional",
	})
	if err != nil {
		s.logger.WithError(err).WithField("phone", phone).Error("failed to send SMS")
		return err
	}

	return nil
}

func (s *smsService) Broadcast(ctx context.Context, phones []string, message string) (*BroadcastResult, error) {
	requests := make([]*sms.SMSRequest, 0, len(phones))
	for _, phone := range phones {
		requests = append(requests, &sms.SMSRequest{
			To:      phone,
			From:    s.from,
			Message: message,
			Type:    "promotional",
		})
	}

	responses, err := s.provider.SendBulkSMS(ctx, requests)
	if err != nil {
		return nil, err
	}

	result := &BroadcastResult{}
	for _, resp := range responses {
		if resp.Status == "failed" {
			result.Failed++
			if resp.Error != "" {
				result.Errors = append(result.Errors, resp.To+": "+resp.Error)
			}
			continue
		}
		result.Sent++
	}

	s.logger.WithFields(map[string]interface{}{
		"sent":   result.Sent,
		"failed": result.Failed,
	}).Info("broadcast completed")

	return result, nil
}
