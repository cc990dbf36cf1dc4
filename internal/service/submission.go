package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"dialoguebot/internal/malayalam"
	"dialoguebot/internal/repository"
	"dialoguebot/internal/session"
)

// SubmissionService accepts free-text dialogue submissions from consented
// users who have explicitly entered submission mode.
type SubmissionService struct {
	repo     repository.DialogueRepository
	sessions *session.Store
	logger   *zap.Logger
}

func NewSubmissionService(repo repository.DialogueRepository, sessions *session.Store, logger *zap.Logger) *SubmissionService {
	return &SubmissionService{
		repo:     repo,
		sessions: sessions,
		logger:   logger,
	}
}

// Enter puts the user into submission mode; the next plain-text message is
// treated as a submission.
func (s *SubmissionService) Enter(userID int64) {
	s.sessions.SetExpectingSubmission(userID, true)
}

// Submit validates and stores one utterance, returning the assigned
// dialogue identifier. The expecting-submission flag survives a validation
// failure so the user can simply retype.
func (s *SubmissionService) Submit(ctx context.Context, userID int64, username, text string) (string, error) {
	if !s.sessions.ExpectingSubmission(userID) {
		return "", ErrNotExpecting
	}

	text = strings.TrimSpace(text)
	if !malayalam.IsMalayalam(text) {
		return "", ErrInvalidInput
	}

	dialogueID, err := s.repo.AppendDialogue(ctx, formatUserID(userID), username, text)
	if err != nil {
		return "", fmt.Errorf("failed to store submission: %w", err)
	}

	s.sessions.SetExpectingSubmission(userID, false)
	return dialogueID, nil
}

// Stats returns the user's total number of submitted dialogues.
func (s *SubmissionService) Stats(ctx context.Context, userID int64) (int, error) {
	count, err := s.repo.CountByUser(ctx, formatUserID(userID))
	if err != nil {
		s.logger.Error("Failed to count submissions", zap.Int64("user_id", userID), zap.Error(err))
		return 0, err
	}
	return count, nil
}
