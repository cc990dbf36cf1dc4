package service

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"dialoguebot/internal/repository"
)

// ConsentService gates every interaction behind a recorded affirmative
// consent and records consent answers.
type ConsentService struct {
	repo   repository.DialogueRepository
	logger *zap.Logger
}

func NewConsentService(repo repository.DialogueRepository, logger *zap.Logger) *ConsentService {
	return &ConsentService{
		repo:   repo,
		logger: logger,
	}
}

// HasConsented reports whether the user has a recorded "yes".
func (s *ConsentService) HasConsented(ctx context.Context, userID int64) (bool, error) {
	return s.repo.HasConsented(ctx, formatUserID(userID))
}

// Record persists the user's consent answer. Declines are persisted too, so
// the answer is on record even though the user may change it later.
func (s *ConsentService) Record(ctx context.Context, userID int64, granted bool) error {
	value := "yes"
	if !granted {
		value = "no"
	}
	if err := s.repo.SetConsent(ctx, formatUserID(userID), value); err != nil {
		s.logger.Error("Failed to record consent", zap.Int64("user_id", userID), zap.Error(err))
		return err
	}
	s.logger.Info("Consent recorded", zap.Int64("user_id", userID), zap.String("consent", value))
	return nil
}

func formatUserID(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
