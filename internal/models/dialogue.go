package models

// AnnotationField identifies one of the three label columns of a dialogue.
type AnnotationField string

const (
	FieldIntent  AnnotationField = "intent"
	FieldEmotion AnnotationField = "emotion"
	FieldTopic   AnnotationField = "topic"
)

// Review statuses written to the status column.
const (
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// DialogueRecord represents one row of the collection sheet
type DialogueRecord struct {
	RowIndex    int    `json:"-"` // physical sheet row, 1-based including header
	UserID      string `json:"user_id"`
	Username    string `json:"username,omitempty"`
	Utterance   string `json:"utterance"`
	SubmittedAt string `json:"submitted_at,omitempty"`
	DialogueID  string `json:"dialogue_id"`
	Intent      string `json:"intent,omitempty"`
	Emotion     string `json:"emotion,omitempty"`
	Topic       string `json:"topic,omitempty"`
	ReviewerID  string `json:"reviewer_id,omitempty"`
	Status      string `json:"status,omitempty"` // approved, rejected, or empty
	Comment     string `json:"comment,omitempty"`
	Consent     string `json:"consent,omitempty"` // yes, no, or empty
}

// AwaitingAnnotation reports whether the record still needs labels.
func (r *DialogueRecord) AwaitingAnnotation() bool {
	return r.DialogueID != "" && r.Intent == ""
}

// AwaitingReview reports whether the record still needs a review decision.
func (r *DialogueRecord) AwaitingReview() bool {
	return r.DialogueID != "" && r.Status == ""
}

// Closed label sets. The wizard and the edit path accept nothing outside them.
var (
	IntentLabels  = []string{"request_info", "question", "greeting", "complaint", "feedback"}
	EmotionLabels = []string{"neutral", "happy", "sad", "angry", "confused"}
	TopicLabels   = []string{"internet", "customer_support", "billing", "technical", "general"}
)

// LabelsFor returns the label set for the given field, or nil for an
// unknown field.
func LabelsFor(field AnnotationField) []string {
	switch field {
	case FieldIntent:
		return IntentLabels
	case FieldEmotion:
		return EmotionLabels
	case FieldTopic:
		return TopicLabels
	}
	return nil
}

// IsValidLabel reports whether value belongs to the field's label set.
func IsValidLabel(field AnnotationField, value string) bool {
	for _, label := range LabelsFor(field) {
		if label == value {
			return true
		}
	}
	return false
}
