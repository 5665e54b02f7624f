package service

import (
	"context"
	"database/sql"
	"errors"

	"wheelshare-backend/internal/domain"
	"wheelshare-backend/internal/repository"
)

type inquiryService struct {
	inquiryRepo repository.InquiryRepository
	userRepo    repository.UserRepository
	email       EmailService
}

func NewInquiryService(inquiryRepo repository.InquiryRepository, userRepo repository.UserRepository, email EmailService) InquiryService {
	return &inquiryService{
		inquiryRepo: inquiryRepo,
		userRepo:    userRepo,
		email:       email,
	}
}

func (s *inquiryService) CreateInquiry(ctx context.Context, userID int32, subject, message string) (*domain.Inquiry, error) {
	inquiry := &domain.Inquiry{
		UserID:  userID,
		Subject: subject,
		Message: message,
		Status:  domain.InquiryStatusOpen,
	}
	if err := s.inquiryRepo.Create(ctx, inquiry); err != nil {
		return nil, err
	}
	return inquiry, nil
}

func (s *inquiryService) ListMyInquiries(ctx context.Context, userID int32) ([]domain.Inquiry, error) {
	return s.inquiryRepo.ListByUser(ctx, userID)
}

func (s *inquiryService) ListAllInquiries(ctx context.Context, status string) ([]domain.Inquiry, error) {
	return s.inquiryRepo.ListAll(ctx, status)
}

func (s *inquiryService) ReplyInquiry(ctx context.Context, id int32, reply string, status domain.InquiryStatus) (*domain.Inquiry, error) {
	inquiry, err := s.inquiryRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	inquiry.Reply = reply
	if status != "" {
		inquiry.Status = status
	} else {
		inquiry.Status = domain.InquiryStatusReplied
	}

	if err := s.inquiryRepo.Update(ctx, inquiry); err != nil {
		return nil, err
	}

	if user, lookupErr := s.userRepo.GetByID(ctx, inquiry.UserID); lookupErr == nil {
		subject, body := inquiry.Subject, reply
		notifyAsync("inquiry reply", func(ctx context.Context) error {
			return s.email.SendInquiryReply(ctx, user.Email, user.Name, subject, body)
		})
	}
	return inquiry, nil
}
