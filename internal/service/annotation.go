package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"dialoguebot/internal/models"
	"dialoguebot/internal/repository"
	"dialoguebot/internal/session"
)

// StepPrompt describes what the annotation wizard expects next, or the
// completed labels once the final step is done.
type StepPrompt struct {
	DialogueID string
	Utterance  string
	Next       models.AnnotationField
	Done       bool
	Intent     string
	Emotion    string
	Topic      string
}

// AnnotationService drives the three-step labeling wizard
// (intent → emotion → topic) and the out-of-band field edit path.
type AnnotationService struct {
	repo       repository.DialogueRepository
	sessions   *session.Store
	annotators map[int64]struct{}
	logger     *zap.Logger
}

func NewAnnotationService(repo repository.DialogueRepository, sessions *session.Store, annotatorIDs []int64, logger *zap.Logger) *AnnotationService {
	annotators := make(map[int64]struct{}, len(annotatorIDs))
	for _, id := range annotatorIDs {
		annotators[id] = struct{}{}
	}
	return &AnnotationService{
		repo:       repo,
		sessions:   sessions,
		annotators: annotators,
		logger:     logger,
	}
}

// Authorized reports whether the user is in the annotator set.
func (s *AnnotationService) Authorized(userID int64) bool {
	_, ok := s.annotators[userID]
	return ok
}

// Begin selects the first record awaiting annotation, creates the wizard
// session, and returns the intent prompt. ErrNothingPending means every
// dialogue is already annotated; no session is created.
func (s *AnnotationService) Begin(ctx context.Context, userID int64) (*StepPrompt, error) {
	if !s.Authorized(userID) {
		return nil, ErrNotAuthorized
	}

	rec, err := s.repo.NextUnannotated(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan for unannotated dialogues: %w", err)
	}
	if rec == nil {
		return nil, ErrNothingPending
	}

	s.sessions.StartAnnotation(userID, session.AnnotationState{
		RowIndex:   rec.RowIndex,
		DialogueID: rec.DialogueID,
		Step:       models.FieldIntent,
	})
	s.logger.Info("Annotation started",
		zap.Int64("user_id", userID),
		zap.String("dialogue_id", rec.DialogueID),
		zap.Int("row", rec.RowIndex),
	)

	return &StepPrompt{
		DialogueID: rec.DialogueID,
		Utterance:  rec.Utterance,
		Next:       models.FieldIntent,
	}, nil
}

// Choose records one label and advances the wizard. The field must match
// the step the session expects; after the topic step the stored labels are
// read back, the session is cleared, and Done is set.
func (s *AnnotationService) Choose(ctx context.Context, userID int64, field models.AnnotationField, value string) (*StepPrompt, error) {
	st := s.sessions.Annotation(userID)
	if st == nil {
		return nil, ErrNoActiveSession
	}
	if field != st.Step {
		return nil, ErrInvalidInput
	}
	if !models.IsValidLabel(field, value) {
		return nil, ErrInvalidInput
	}

	if err := s.repo.SetLabel(ctx, st.RowIndex, field, value); err != nil {
		return nil, fmt.Errorf("failed to store %s: %w", field, err)
	}

	switch field {
	case models.FieldIntent:
		s.sessions.AdvanceAnnotation(userID, models.FieldEmotion)
		return &StepPrompt{DialogueID: st.DialogueID, Next: models.FieldEmotion}, nil
	case models.FieldEmotion:
		s.sessions.AdvanceAnnotation(userID, models.FieldTopic)
		return &StepPrompt{DialogueID: st.DialogueID, Next: models.FieldTopic}, nil
	default:
		intent, emotion, topic, err := s.repo.Labels(ctx, st.RowIndex)
		if err != nil {
			return nil, fmt.Errorf("failed to read back labels: %w", err)
		}
		s.sessions.ClearAnnotation(userID)
		s.logger.Info("Annotation completed",
			zap.Int64("user_id", userID),
			zap.String("dialogue_id", st.DialogueID),
		)
		return &StepPrompt{
			DialogueID: st.DialogueID,
			Done:       true,
			Intent:     intent,
			Emotion:    emotion,
			Topic:      topic,
		}, nil
	}
}

// EditField sets a single label on an explicitly named dialogue, bypassing
// the wizard's step order. Ad-hoc correction tool for annotators.
func (s *AnnotationService) EditField(ctx context.Context, userID int64, dialogueID string, field models.AnnotationField, value string) error {
	if !s.Authorized(userID) {
		return ErrNotAuthorized
	}
	if !models.IsValidLabel(field, value) {
		return ErrInvalidInput
	}

	rec, err := s.repo.FindByDialogueID(ctx, dialogueID)
	if err != nil {
		return fmt.Errorf("failed to look up dialogue %s: %w", dialogueID, err)
	}
	if rec == nil {
		return ErrNotFound
	}

	if err := s.repo.SetLabel(ctx, rec.RowIndex, field, value); err != nil {
		return fmt.Errorf("failed to store %s: %w", field, err)
	}
	s.logger.Info("Field edited",
		zap.Int64("user_id", userID),
		zap.String("dialogue_id", dialogueID),
		zap.String("field", string(field)),
		zap.String("value", value),
	)
	return nil
}

// Cancel abandons the wizard. Labels already written in earlier steps stay.
func (s *AnnotationService) Cancel(userID int64) {
	s.sessions.ClearAnnotation(userID)
}
