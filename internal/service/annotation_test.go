package service

import (
	"context"
	"errors"
	"testing"

	"dialoguebot/internal/models"
	"dialoguebot/internal/repository"
)

func TestBeginRequiresAuthorization(t *testing.T) {
	env := newTestEnv(dialogueRow("100", "1", "ഹലോ"))

	_, err := env.annotations.Begin(context.Background(), volunteerID)
	if !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("err = %v, want ErrNotAuthorized", err)
	}
}

func TestBeginWithNothingToAnnotate(t *testing.T) {
	env := newTestEnv()

	_, err := env.annotations.Begin(context.Background(), annotatorID)
	if !errors.Is(err, ErrNothingPending) {
		t.Fatalf("err = %v, want ErrNothingPending", err)
	}
	if st := env.sessions.Annotation(annotatorID); st != nil {
		t.Errorf("session created despite nothing pending: %+v", st)
	}
}

func TestAnnotationWizardFullWalk(t *testing.T) {
	env := newTestEnv(dialogueRow("100", "1", "ഹലോ"))
	ctx := context.Background()

	prompt, err := env.annotations.Begin(ctx, annotatorID)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if prompt.DialogueID != "1" || prompt.Utterance != "ഹലോ" || prompt.Next != models.FieldIntent {
		t.Fatalf("unexpected prompt: %+v", prompt)
	}

	prompt, err = env.annotations.Choose(ctx, annotatorID, models.FieldIntent, "greeting")
	if err != nil {
		t.Fatalf("Choose intent: %v", err)
	}
	if prompt.Next != models.FieldEmotion {
		t.Fatalf("Next = %s, want emotion", prompt.Next)
	}

	prompt, err = env.annotations.Choose(ctx, annotatorID, models.FieldEmotion, "happy")
	if err != nil {
		t.Fatalf("Choose emotion: %v", err)
	}
	if prompt.Next != models.FieldTopic {
		t.Fatalf("Next = %s, want topic", prompt.Next)
	}

	prompt, err = env.annotations.Choose(ctx, annotatorID, models.FieldTopic, "general")
	if err != nil {
		t.Fatalf("Choose topic: %v", err)
	}
	if !prompt.Done {
		t.Fatal("wizard not done after topic step")
	}
	if prompt.Intent != "greeting" || prompt.Emotion != "happy" || prompt.Topic != "general" {
		t.Errorf("echoed labels = (%q, %q, %q)", prompt.Intent, prompt.Emotion, prompt.Topic)
	}

	row := env.store.rows[1]
	if row[repository.ColIntent-1] != "greeting" ||
		row[repository.ColEmotion-1] != "happy" ||
		row[repository.ColTopic-1] != "general" {
		t.Errorf("labels not persisted: %v", row)
	}

	// Session is cleared: another choice is a stale callback.
	_, err = env.annotations.Choose(ctx, annotatorID, models.FieldIntent, "greeting")
	if !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("err after completion = %v, want ErrNoActiveSession", err)
	}
}

func TestChooseRejectsOutOfOrderStep(t *testing.T) {
	env := newTestEnv(dialogueRow("100", "1", "ഹലോ"))
	ctx := context.Background()

	if _, err := env.annotations.Begin(ctx, annotatorID); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	_, err := env.annotations.Choose(ctx, annotatorID, models.FieldTopic, "general")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if env.store.cell(2, repository.ColTopic) != "" {
		t.Error("out-of-order choice was persisted")
	}
}

func TestChooseRejectsUnknownLabel(t *testing.T) {
	env := newTestEnv(dialogueRow("100", "1", "ഹലോ"))
	ctx := context.Background()

	if _, err := env.annotations.Begin(ctx, annotatorID); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	_, err := env.annotations.Choose(ctx, annotatorID, models.FieldIntent, "sarcasm")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestBeginMovesToNextRowAfterAnnotation(t *testing.T) {
	env := newTestEnv(
		dialogueRow("100", "1", "ഒന്ന്"),
		dialogueRow("100", "2", "രണ്ട്"),
	)
	ctx := context.Background()

	prompt, err := env.annotations.Begin(ctx, annotatorID)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if prompt.DialogueID != "1" {
		t.Fatalf("first Begin picked dialogue %s, want 1", prompt.DialogueID)
	}
	for _, step := range []struct {
		field models.AnnotationField
		value string
	}{
		{models.FieldIntent, "question"},
		{models.FieldEmotion, "neutral"},
		{models.FieldTopic, "billing"},
	} {
		if _, err := env.annotations.Choose(ctx, annotatorID, step.field, step.value); err != nil {
			t.Fatalf("Choose %s: %v", step.field, err)
		}
	}

	prompt, err = env.annotations.Begin(ctx, annotatorID)
	if err != nil {
		t.Fatalf("second Begin: %v", err)
	}
	if prompt.DialogueID != "2" {
		t.Errorf("second Begin picked dialogue %s, want 2", prompt.DialogueID)
	}
}

func TestCancelKeepsCompletedSteps(t *testing.T) {
	env := newTestEnv(dialogueRow("100", "1", "ഹലോ"))
	ctx := context.Background()

	if _, err := env.annotations.Begin(ctx, annotatorID); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if _, err := env.annotations.Choose(ctx, annotatorID, models.FieldIntent, "complaint"); err != nil {
		t.Fatalf("Choose: %v", err)
	}

	env.annotations.Cancel(annotatorID)

	if env.store.cell(2, repository.ColIntent) != "complaint" {
		t.Error("cancel reverted an already-persisted step")
	}
	if _, err := env.annotations.Choose(ctx, annotatorID, models.FieldEmotion, "sad"); !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("err after cancel = %v, want ErrNoActiveSession", err)
	}
}

func TestEditFieldBypassesStepOrder(t *testing.T) {
	env := newTestEnv(dialogueRow("100", "7", "ഹലോ"))
	ctx := context.Background()

	// No wizard in progress; topic is set directly.
	if err := env.annotations.EditField(ctx, annotatorID, "7", models.FieldTopic, "technical"); err != nil {
		t.Fatalf("EditField: %v", err)
	}
	if env.store.cell(2, repository.ColTopic) != "technical" {
		t.Error("edit not persisted")
	}
}

func TestEditFieldErrors(t *testing.T) {
	env := newTestEnv(dialogueRow("100", "7", "ഹലോ"))
	ctx := context.Background()

	if err := env.annotations.EditField(ctx, volunteerID, "7", models.FieldTopic, "technical"); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("unauthorized edit: err = %v, want ErrNotAuthorized", err)
	}
	if err := env.annotations.EditField(ctx, annotatorID, "99", models.FieldTopic, "technical"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown dialogue: err = %v, want ErrNotFound", err)
	}
	if err := env.annotations.EditField(ctx, annotatorID, "7", models.FieldTopic, "weather"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("unknown label: err = %v, want ErrInvalidInput", err)
	}
}
