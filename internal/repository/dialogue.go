package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"dialoguebot/internal/models"
	"dialoguebot/internal/sheets"
)

// Column layout of the collection sheet, 1-based.
const (
	ColUserID     = 1
	ColUsername   = 2
	ColUtterance  = 3
	ColTimestamp  = 4
	ColDialogueID = 5
	ColIntent     = 6
	ColEmotion    = 7
	ColTopic      = 8
	ColReviewerID = 9
	ColStatus     = 10
	ColComment    = 11
	ColConsent    = 12
)

const timestampLayout = "2006-01-02 15:04:05"

// DialogueRepository defines the operations the workflows need against the
// shared sheet.
type DialogueRepository interface {
	AppendDialogue(ctx context.Context, userID, username, utterance string) (string, error)
	All(ctx context.Context) ([]models.DialogueRecord, error)
	NextUnannotated(ctx context.Context) (*models.DialogueRecord, error)
	NextUnreviewed(ctx context.Context) (*models.DialogueRecord, error)
	FindByDialogueID(ctx context.Context, dialogueID string) (*models.DialogueRecord, error)
	SetLabel(ctx context.Context, rowIndex int, field models.AnnotationField, value string) error
	Labels(ctx context.Context, rowIndex int) (intent, emotion, topic string, err error)
	SetReview(ctx context.Context, rowIndex int, reviewerID, status string) error
	SetComment(ctx context.Context, rowIndex int, comment string) error
	CountByUser(ctx context.Context, userID string) (int, error)
	HasConsented(ctx context.Context, userID string) (bool, error)
	SetConsent(ctx context.Context, userID, value string) error
}

type dialogueRepository struct {
	store  sheets.RowStore
	logger *zap.Logger

	// mu guards allocate-then-append so two concurrent submissions cannot
	// compute the same dialogue identifier.
	mu sync.Mutex
}

// NewDialogueRepository creates a sheet-backed dialogue repository.
func NewDialogueRepository(store sheets.RowStore, logger *zap.Logger) DialogueRepository {
	return &dialogueRepository{
		store:  store,
		logger: logger,
	}
}

// AppendDialogue allocates the next dialogue identifier and appends a new
// record in one critical section. Returns the assigned identifier.
func (r *dialogueRepository) AppendDialogue(ctx context.Context, userID, username, utterance string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.All(ctx)
	if err != nil {
		return "", err
	}

	ids := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.DialogueID)
	}
	dialogueID := nextID(ids)

	row := []string{
		userID,
		username,
		utterance,
		time.Now().Format(timestampLayout),
		dialogueID,
	}
	if err := r.store.AppendRow(ctx, row); err != nil {
		r.logger.Error("Failed to append dialogue", zap.String("user_id", userID), zap.Error(err))
		return "", err
	}

	r.logger.Info("Dialogue appended",
		zap.String("user_id", userID),
		zap.String("dialogue_id", dialogueID),
	)
	return dialogueID, nil
}

// All returns every record in physical row order. RowIndex is the 1-based
// sheet row (the header occupies row 1, so data starts at 2).
func (r *dialogueRepository) All(ctx context.Context) ([]models.DialogueRecord, error) {
	rows, err := r.store.Rows(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols := headerIndex(rows[0])
	records := make([]models.DialogueRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		records = append(records, models.DialogueRecord{
			RowIndex:    i + 2,
			UserID:      cell(row, cols.of("user_id")),
			Username:    cell(row, cols.of("username")),
			Utterance:   cell(row, cols.of("utterance")),
			SubmittedAt: cell(row, cols.of("timestamp")),
			DialogueID:  cell(row, cols.of("dialogue_id")),
			Intent:      cell(row, cols.of("intent")),
			Emotion:     cell(row, cols.of("emotion")),
			Topic:       cell(row, cols.of("topic")),
			ReviewerID:  cell(row, cols.of("reviewer_id")),
			Status:      cell(row, cols.of("status")),
			Comment:     cell(row, cols.of("comment")),
			Consent:     cell(row, cols.of("consent")),
		})
	}
	return records, nil
}

func (r *dialogueRepository) NextUnannotated(ctx context.Context) (*models.DialogueRecord, error) {
	records, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].AwaitingAnnotation() {
			return &records[i], nil
		}
	}
	return nil, nil
}

func (r *dialogueRepository) NextUnreviewed(ctx context.Context) (*models.DialogueRecord, error) {
	records, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].AwaitingReview() {
			return &records[i], nil
		}
	}
	return nil, nil
}

func (r *dialogueRepository) FindByDialogueID(ctx context.Context, dialogueID string) (*models.DialogueRecord, error) {
	records, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].DialogueID == dialogueID {
			return &records[i], nil
		}
	}
	return nil, nil
}

func (r *dialogueRepository) SetLabel(ctx context.Context, rowIndex int, field models.AnnotationField, value string) error {
	col, err := columnForField(field)
	if err != nil {
		return err
	}
	if err := r.store.UpdateCell(ctx, rowIndex, col, value); err != nil {
		r.logger.Error("Failed to set label",
			zap.Int("row", rowIndex),
			zap.String("field", string(field)),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// Labels reads the three annotation cells back from the store, so the
// completion summary reflects what was actually persisted.
func (r *dialogueRepository) Labels(ctx context.Context, rowIndex int) (string, string, string, error) {
	intent, err := r.store.ReadCell(ctx, rowIndex, ColIntent)
	if err != nil {
		return "", "", "", err
	}
	emotion, err := r.store.ReadCell(ctx, rowIndex, ColEmotion)
	if err != nil {
		return "", "", "", err
	}
	topic, err := r.store.ReadCell(ctx, rowIndex, ColTopic)
	if err != nil {
		return "", "", "", err
	}
	return intent, emotion, topic, nil
}

// SetReview records the reviewer and decision. Approval clears any stale
// comment left over from an earlier rejection.
func (r *dialogueRepository) SetReview(ctx context.Context, rowIndex int, reviewerID, status string) error {
	if err := r.store.UpdateCell(ctx, rowIndex, ColReviewerID, reviewerID); err != nil {
		return err
	}
	if err := r.store.UpdateCell(ctx, rowIndex, ColStatus, status); err != nil {
		return err
	}
	if status == models.StatusApproved {
		if err := r.store.UpdateCell(ctx, rowIndex, ColComment, ""); err != nil {
			return err
		}
	}
	r.logger.Info("Review recorded",
		zap.Int("row", rowIndex),
		zap.String("reviewer_id", reviewerID),
		zap.String("status", status),
	)
	return nil
}

func (r *dialogueRepository) SetComment(ctx context.Context, rowIndex int, comment string) error {
	return r.store.UpdateCell(ctx, rowIndex, ColComment, comment)
}

// CountByUser counts the user's dialogue rows. Consent-only rows carry no
// dialogue_id and are excluded.
func (r *dialogueRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	records, err := r.All(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, rec := range records {
		if rec.UserID == userID && rec.DialogueID != "" {
			count++
		}
	}
	return count, nil
}

func (r *dialogueRepository) HasConsented(ctx context.Context, userID string) (bool, error) {
	records, err := r.All(ctx)
	if err != nil {
		return false, err
	}
	for _, rec := range records {
		if rec.UserID == userID && strings.EqualFold(rec.Consent, "yes") {
			return true, nil
		}
	}
	return false, nil
}

// SetConsent writes the user's consent answer. Consent lives on a
// consent-only row (no dialogue_id): the first such row is updated, or a new
// one is appended. Dialogue rows are never used to store consent.
func (r *dialogueRepository) SetConsent(ctx context.Context, userID, value string) error {
	records, err := r.All(ctx)
	if err != nil {
		return err
	}
	for _, rec := range records {
		if rec.UserID == userID && rec.DialogueID == "" {
			return r.store.UpdateCell(ctx, rec.RowIndex, ColConsent, value)
		}
	}

	row := make([]string, ColConsent)
	row[ColUserID-1] = userID
	row[ColConsent-1] = value
	return r.store.AppendRow(ctx, row)
}

func columnForField(field models.AnnotationField) (int, error) {
	switch field {
	case models.FieldIntent:
		return ColIntent, nil
	case models.FieldEmotion:
		return ColEmotion, nil
	case models.FieldTopic:
		return ColTopic, nil
	}
	return 0, fmt.Errorf("unknown annotation field %q", field)
}

type columnIndex map[string]int

// headerIndex maps normalized header names to 0-based column offsets.
func headerIndex(header []string) columnIndex {
	cols := make(columnIndex, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}

func (c columnIndex) of(name string) int {
	if i, ok := c[name]; ok {
		return i
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
