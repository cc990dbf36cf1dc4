package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"dialoguebot/internal/repository"
	"dialoguebot/internal/session"
)

var sheetHeader = []string{
	"user_id", "username", "utterance", "timestamp", "dialogue_id",
	"intent", "emotion", "topic", "reviewer_id", "status", "comment", "consent",
}

// fakeStore is an in-memory stand-in for the sheet, using the same 1-based
// addressing as the real adapter.
type fakeStore struct {
	rows    [][]string
	appends int
	updates int
}

func newFakeStore(dataRows ...[]string) *fakeStore {
	f := &fakeStore{rows: [][]string{sheetHeader}}
	for _, row := range dataRows {
		f.rows = append(f.rows, padRow(row))
	}
	return f
}

func padRow(row []string) []string {
	padded := make([]string, len(sheetHeader))
	copy(padded, row)
	return padded
}

func (f *fakeStore) AppendRow(_ context.Context, values []string) error {
	f.appends++
	f.rows = append(f.rows, padRow(values))
	return nil
}

func (f *fakeStore) Rows(_ context.Context) ([][]string, error) {
	return f.rows, nil
}

func (f *fakeStore) UpdateCell(_ context.Context, row, col int, value string) error {
	f.updates++
	f.rows[row-1][col-1] = value
	return nil
}

func (f *fakeStore) ReadCell(_ context.Context, row, col int) (string, error) {
	return f.rows[row-1][col-1], nil
}

func (f *fakeStore) cell(row, col int) string {
	return f.rows[row-1][col-1]
}

func dialogueRow(userID, dialogueID, utterance string) []string {
	return []string{userID, "", utterance, "2024-05-01 10:00:00", dialogueID}
}

func consentRow(userID, value string) []string {
	row := make([]string, repository.ColConsent)
	row[repository.ColUserID-1] = userID
	row[repository.ColConsent-1] = value
	return row
}

// testEnv wires the full service stack over a fake store.
type testEnv struct {
	store       *fakeStore
	sessions    *session.Store
	consent     *ConsentService
	submissions *SubmissionService
	annotations *AnnotationService
	reviews     *ReviewService
}

const (
	annotatorID = int64(11)
	reviewerID  = int64(22)
	volunteerID = int64(33)
)

func newTestEnv(dataRows ...[]string) *testEnv {
	store := newFakeStore(dataRows...)
	logger := zap.NewNop()
	repo := repository.NewDialogueRepository(store, logger)
	sessions := session.NewStore(time.Minute)
	return &testEnv{
		store:       store,
		sessions:    sessions,
		consent:     NewConsentService(repo, logger),
		submissions: NewSubmissionService(repo, sessions, logger),
		annotations: NewAnnotationService(repo, sessions, []int64{annotatorID}, logger),
		reviews:     NewReviewService(repo, sessions, []int64{reviewerID}, logger),
	}
}
