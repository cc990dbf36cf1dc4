package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"dialoguebot/internal/models"
	"dialoguebot/internal/repository"
	"dialoguebot/internal/session"
)

// ReviewPrompt carries the dialogue and its current annotations for the
// reviewer's approve/reject decision.
type ReviewPrompt struct {
	DialogueID string
	Utterance  string
	Intent     string
	Emotion    string
	Topic      string
}

// ReviewService drives the approve/reject flow with an optional rejection
// comment.
type ReviewService struct {
	repo      repository.DialogueRepository
	sessions  *session.Store
	reviewers map[int64]struct{}
	logger    *zap.Logger
}

func NewReviewService(repo repository.DialogueRepository, sessions *session.Store, reviewerIDs []int64, logger *zap.Logger) *ReviewService {
	reviewers := make(map[int64]struct{}, len(reviewerIDs))
	for _, id := range reviewerIDs {
		reviewers[id] = struct{}{}
	}
	return &ReviewService{
		repo:      repo,
		sessions:  sessions,
		reviewers: reviewers,
		logger:    logger,
	}
}

// Authorized reports whether the user is in the reviewer set.
func (s *ReviewService) Authorized(userID int64) bool {
	_, ok := s.reviewers[userID]
	return ok
}

// Begin selects the first record awaiting review and creates the session.
// ErrNothingPending means every dialogue has been reviewed.
func (s *ReviewService) Begin(ctx context.Context, userID int64) (*ReviewPrompt, error) {
	if !s.Authorized(userID) {
		return nil, ErrNotAuthorized
	}

	rec, err := s.repo.NextUnreviewed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan for unreviewed dialogues: %w", err)
	}
	if rec == nil {
		return nil, ErrNothingPending
	}

	s.sessions.StartReview(userID, session.ReviewState{
		RowIndex:   rec.RowIndex,
		DialogueID: rec.DialogueID,
	})
	s.logger.Info("Review started",
		zap.Int64("user_id", userID),
		zap.String("dialogue_id", rec.DialogueID),
		zap.Int("row", rec.RowIndex),
	)

	return &ReviewPrompt{
		DialogueID: rec.DialogueID,
		Utterance:  rec.Utterance,
		Intent:     rec.Intent,
		Emotion:    rec.Emotion,
		Topic:      rec.Topic,
	}, nil
}

// Decide records the reviewer and the decision. Approval ends the flow;
// rejection keeps the session alive awaiting a free-text comment.
func (s *ReviewService) Decide(ctx context.Context, userID int64, approve bool) (dialogueID string, awaitComment bool, err error) {
	st := s.sessions.Review(userID)
	if st == nil {
		return "", false, ErrNoActiveSession
	}

	status := models.StatusRejected
	if approve {
		status = models.StatusApproved
	}
	if err := s.repo.SetReview(ctx, st.RowIndex, formatUserID(userID), status); err != nil {
		return "", false, fmt.Errorf("failed to store review: %w", err)
	}

	if approve {
		s.sessions.ClearReview(userID)
		return st.DialogueID, false, nil
	}
	s.sessions.MarkAwaitingComment(userID)
	return st.DialogueID, true, nil
}

// AwaitingComment reports whether the user's next plain-text message should
// be captured as a rejection comment.
func (s *ReviewService) AwaitingComment(userID int64) bool {
	st := s.sessions.Review(userID)
	return st != nil && st.AwaitingComment
}

// SubmitComment stores the rejection comment and ends the flow. Only valid
// while a rejection is awaiting its comment.
func (s *ReviewService) SubmitComment(ctx context.Context, userID int64, text string) (string, error) {
	st := s.sessions.Review(userID)
	if st == nil || !st.AwaitingComment {
		return "", ErrNoActiveSession
	}

	if err := s.repo.SetComment(ctx, st.RowIndex, strings.TrimSpace(text)); err != nil {
		return "", fmt.Errorf("failed to store comment: %w", err)
	}
	s.sessions.ClearReview(userID)
	s.logger.Info("Review comment stored",
		zap.Int64("user_id", userID),
		zap.String("dialogue_id", st.DialogueID),
	)
	return st.DialogueID, nil
}
