package services

import (
	"context"
	"errors"
	"fmt"

	"luco/internal/models"
	"luco/internal/repositories/interfaces"
	"luco/internal/utils"
	"luco/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken = errors.New("username is already taken")
	ErrPhoneTaken    = errors.New("phone number is already registered")
	ErrMemberUnknown = errors.New("no member registered with this phone number")
)

type MemberService interface {
	Register(ctx context.Context, member *models.Member, password string) error

	// SignIn looks up the member by phone and texts them a fresh password.
	// The stored hash is rotated; the old password stops working.
	SignIn(ctx context.Context, phone string) error

	GetMember(ctx context.Context, id primitive.ObjectID) (*models.Member, error)
	ListMembers(ctx context.Context, params *utils.PaginationParams) ([]*models.Member, int64, error)
	UpdateMember(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	DeleteMember(ctx context.Context, id primitive.ObjectID) error
}

type memberService struct {
	memberRepo interfaces.MemberRepository
	smsService SMSService
	logger     *logger.Logger
}

func NewMemberService(memberRepo interfaces.MemberRepository, smsService SMSService, log *logger.Logger) MemberService {
	return &memberService{
		memberRepo: memberRepo,
		smsService: smsService,
		logger:     log,
	}
}

func (s *memberService) Register(ctx context.Context, member *models.Member, password string) error {
	member.Phone = utils.FormatPhone(member.Phone)

	// Username and phone are each checked up front so the caller gets a
	// specific message instead of a generic duplicate error.
	if _, err := s.memberRepo.GetByUsername(ctx, member.Username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return err
	}
	if _, err := s.memberRepo.GetByPhone(ctx, member.Phone); err == nil {
		return ErrPhoneTaken
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	member.Password = string(hashed)

	if err := s.memberRepo.Create(ctx, member); err != nil {
		if errors.Is(err, interfaces.ErrDuplicate) {
			// The unique index fired between check and insert.
			return ErrPhoneTaken
		}
		return err
	}

	s.logger.WithField("member_id", member.ID.Hex()).Info("member registered")
	return nil
}

func (s *memberService) SignIn(ctx context.Context, phone string) error {
	phone = utils.FormatPhone(phone)

	member, err := s.memberRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return ErrMemberUnknown
		}
		return err
	}

	newPassword := utils.GenerateRandomNumericString(8)
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.memberRepo.Update(ctx, member.ID, map[string]interface{}{
		"password": string(hashed),
	}); err != nil {
		return err
	}

	message := fmt.Sprintf("Hello %s, your Luco sign-in details: username %s, password %s",
		member.Username, member.Username, newPassword)
	if err := s.smsService.SendSMS(ctx, member.Phone, message); err != nil {
		return fmt.Errorf("failed to send credentials: %w", err)
	}

	s.logger.WithField("member_id", member.ID.Hex()).Info("member credentials sent")
	return nil
}

func (s *memberService) GetMember(ctx context.Context, id primitive.ObjectID) (*models.Member, error) {
	return s.memberRepo.GetByID(ctx, id)
}

func (s *memberService) ListMembers(ctx context.Context, params *utils.PaginationParams) ([]*models.Member, int64, error) {
	return s.memberRepo.GetAll(ctx, params)
}

func (s *memberService) UpdateMember(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	if err := s.memberRepo.Update(ctx, id, updates); err != nil {
		if errors.Is(err, interfaces.ErrDuplicate) {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (s *memberService) DeleteMember(ctx context.Context, id primitive.ObjectID) error {
	return s.memberRepo.Delete(ctx, id)
}
