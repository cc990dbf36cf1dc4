package service

import (
	"context"
	"errors"
	"testing"

	"dialoguebot/internal/models"
	"dialoguebot/internal/repository"
)

func annotatedRow(userID, dialogueID, utterance string) []string {
	row := dialogueRow(userID, dialogueID, utterance)
	return append(row, "greeting", "happy", "general")
}

func TestReviewRequiresAuthorization(t *testing.T) {
	env := newTestEnv(annotatedRow("100", "1", "ഹലോ"))

	_, err := env.reviews.Begin(context.Background(), volunteerID)
	if !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("err = %v, want ErrNotAuthorized", err)
	}
}

func TestReviewBeginWithNothingPending(t *testing.T) {
	env := newTestEnv()

	_, err := env.reviews.Begin(context.Background(), reviewerID)
	if !errors.Is(err, ErrNothingPending) {
		t.Fatalf("err = %v, want ErrNothingPending", err)
	}
}

func TestReviewApprovePath(t *testing.T) {
	row := annotatedRow("100", "1", "ഹലോ")
	row = append(row, "", "", "stale comment")
	env := newTestEnv(row)
	ctx := context.Background()

	prompt, err := env.reviews.Begin(ctx, reviewerID)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if prompt.DialogueID != "1" || prompt.Intent != "greeting" {
		t.Fatalf("unexpected prompt: %+v", prompt)
	}

	dialogueID, awaitComment, err := env.reviews.Decide(ctx, reviewerID, true)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if dialogueID != "1" || awaitComment {
		t.Fatalf("Decide returned (%q, %v)", dialogueID, awaitComment)
	}

	if env.store.cell(2, repository.ColStatus) != models.StatusApproved {
		t.Error("status not set to approved")
	}
	if env.store.cell(2, repository.ColReviewerID) != "22" {
		t.Error("reviewer id not recorded")
	}
	if env.store.cell(2, repository.ColComment) != "" {
		t.Error("stale comment not cleared on approval")
	}
	if st := env.sessions.Review(reviewerID); st != nil {
		t.Errorf("session survived approval: %+v", st)
	}
}

func TestReviewRejectPathWithComment(t *testing.T) {
	env := newTestEnv(annotatedRow("100", "1", "ഹലോ"))
	ctx := context.Background()

	if _, err := env.reviews.Begin(ctx, reviewerID); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	dialogueID, awaitComment, err := env.reviews.Decide(ctx, reviewerID, false)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if !awaitComment {
		t.Fatal("rejection did not ask for a comment")
	}
	if env.store.cell(2, repository.ColStatus) != models.StatusRejected {
		t.Error("status not set to rejected")
	}
	if !env.reviews.AwaitingComment(reviewerID) {
		t.Fatal("session not awaiting comment after rejection")
	}

	got, err := env.reviews.SubmitComment(ctx, reviewerID, "wrong topic")
	if err != nil {
		t.Fatalf("SubmitComment: %v", err)
	}
	if got != dialogueID {
		t.Errorf("SubmitComment returned dialogue %q, want %q", got, dialogueID)
	}
	if env.store.cell(2, repository.ColComment) != "wrong topic" {
		t.Error("comment not persisted")
	}
	if st := env.sessions.Review(reviewerID); st != nil {
		t.Errorf("session survived comment: %+v", st)
	}
}

func TestSubmitCommentWithoutPendingReview(t *testing.T) {
	env := newTestEnv(annotatedRow("100", "1", "ഹലോ"))

	updatesBefore := env.store.updates
	_, err := env.reviews.SubmitComment(context.Background(), reviewerID, "stray text")
	if !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("err = %v, want ErrNoActiveSession", err)
	}
	if env.store.updates != updatesBefore {
		t.Error("store mutated by a stray comment")
	}
}

func TestDecideWithoutSession(t *testing.T) {
	env := newTestEnv(annotatedRow("100", "1", "ഹലോ"))

	_, _, err := env.reviews.Decide(context.Background(), reviewerID, true)
	if !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("err = %v, want ErrNoActiveSession", err)
	}
}

func TestReviewPresentsUnannotatedRecord(t *testing.T) {
	// Review order follows row order even when annotation is incomplete;
	// the prompt simply shows the missing labels as empty.
	env := newTestEnv(dialogueRow("100", "1", "ഹലോ"))

	prompt, err := env.reviews.Begin(context.Background(), reviewerID)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if prompt.Intent != "" || prompt.Emotion != "" || prompt.Topic != "" {
		t.Errorf("expected empty annotations, got %+v", prompt)
	}
}
