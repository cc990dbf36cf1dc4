package telegram_bot

import (
	"fmt"
	"strings"

	"dialoguebot/internal/models"
)

// eventKind enumerates every button press the bot understands. Callback
// payloads are colon-separated and parsed once, here; handlers switch on
// the kind instead of matching string prefixes.
type eventKind int

const (
	eventConsent eventKind = iota
	eventWizardLabel
	eventEditMenu
	eventEditField
	eventSetField
	eventReviewDecision
	eventNextAnnotate
	eventMainMenu
	eventCancel
)

type callbackEvent struct {
	kind       eventKind
	granted    bool                   // consent answer
	approve    bool                   // review decision
	field      models.AnnotationField // wizard/edit field
	dialogueID string
	value      string // chosen label
}

// Payload grammar:
//
//	consent:yes | consent:no
//	label:<field>:<value>            wizard step choice
//	edit:<dialogue_id>               open the field submenu
//	editfield:<field>:<dialogue_id>  pick options for one field
//	set:<field>:<dialogue_id>:<value>
//	review:approve | review:reject
//	annotate:next
//	menu:main
//	cancel:<dialogue_id>
func parseCallback(data string) (callbackEvent, error) {
	parts := strings.Split(data, ":")
	switch parts[0] {
	case "consent":
		if len(parts) != 2 || (parts[1] != "yes" && parts[1] != "no") {
			break
		}
		return callbackEvent{kind: eventConsent, granted: parts[1] == "yes"}, nil
	case "label":
		if len(parts) != 3 {
			break
		}
		field, err := parseField(parts[1])
		if err != nil {
			break
		}
		return callbackEvent{kind: eventWizardLabel, field: field, value: parts[2]}, nil
	case "edit":
		if len(parts) != 2 || parts[1] == "" {
			break
		}
		return callbackEvent{kind: eventEditMenu, dialogueID: parts[1]}, nil
	case "editfield":
		if len(parts) != 3 || parts[2] == "" {
			break
		}
		field, err := parseField(parts[1])
		if err != nil {
			break
		}
		return callbackEvent{kind: eventEditField, field: field, dialogueID: parts[2]}, nil
	case "set":
		if len(parts) != 4 || parts[2] == "" {
			break
		}
		field, err := parseField(parts[1])
		if err != nil {
			break
		}
		return callbackEvent{kind: eventSetField, field: field, dialogueID: parts[2], value: parts[3]}, nil
	case "review":
		if len(parts) != 2 || (parts[1] != "approve" && parts[1] != "reject") {
			break
		}
		return callbackEvent{kind: eventReviewDecision, approve: parts[1] == "approve"}, nil
	case "annotate":
		if len(parts) == 2 && parts[1] == "next" {
			return callbackEvent{kind: eventNextAnnotate}, nil
		}
	case "menu":
		if len(parts) == 2 && parts[1] == "main" {
			return callbackEvent{kind: eventMainMenu}, nil
		}
	case "cancel":
		if len(parts) == 2 && parts[1] != "" {
			return callbackEvent{kind: eventCancel, dialogueID: parts[1]}, nil
		}
	}
	return callbackEvent{}, fmt.Errorf("unrecognized callback payload %q", data)
}

func parseField(s string) (models.AnnotationField, error) {
	field := models.AnnotationField(s)
	switch field {
	case models.FieldIntent, models.FieldEmotion, models.FieldTopic:
		return field, nil
	}
	return "", fmt.Errorf("unknown annotation field %q", s)
}
