package telegram_bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"dialoguebot/internal/models"
)

func consentKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Yes, I consent", "consent:yes"),
			tgbotapi.NewInlineKeyboardButtonData("❌ No, I don't consent", "consent:no"),
		),
	)
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/submit"),
			tgbotapi.NewKeyboardButton("/stats"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/annotate"),
			tgbotapi.NewKeyboardButton("/review"),
		),
	)
}

// labelKeyboard lists the field's label set two per row, followed by a
// cancel row. payload builds the callback data for one label value.
func labelKeyboard(field models.AnnotationField, dialogueID string, payload func(value string) string) tgbotapi.InlineKeyboardMarkup {
	labels := models.LabelsFor(field)
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(labels)/2+2)
	for i := 0; i < len(labels); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(titleLabel(labels[i]), payload(labels[i])),
		}
		if i+1 < len(labels) {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(titleLabel(labels[i+1]), payload(labels[i+1])))
		}
		rows = append(rows, row)
	}
	rows = append(rows, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", "cancel:"+dialogueID),
	})
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func wizardStepKeyboard(field models.AnnotationField, dialogueID string) tgbotapi.InlineKeyboardMarkup {
	return labelKeyboard(field, dialogueID, func(value string) string {
		return fmt.Sprintf("label:%s:%s", field, value)
	})
}

func editFieldKeyboard(field models.AnnotationField, dialogueID string) tgbotapi.InlineKeyboardMarkup {
	return labelKeyboard(field, dialogueID, func(value string) string {
		return fmt.Sprintf("set:%s:%s:%s", field, dialogueID, value)
	})
}

func editMenuKeyboard(dialogueID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Intent", fmt.Sprintf("editfield:intent:%s", dialogueID)),
			tgbotapi.NewInlineKeyboardButtonData("Emotion", fmt.Sprintf("editfield:emotion:%s", dialogueID)),
			tgbotapi.NewInlineKeyboardButtonData("Topic", fmt.Sprintf("editfield:topic:%s", dialogueID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", "cancel:"+dialogueID),
		),
	)
}

func reviewKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Approve", "review:approve"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Reject", "review:reject"),
		),
	)
}

func nextStepsKeyboard(editDialogueID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🆕 Annotate another", "annotate:next"),
			tgbotapi.NewInlineKeyboardButtonData("✏️ Edit a field", "edit:"+editDialogueID),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏠 Main menu", "menu:main"),
		),
	)
}

// titleLabel turns a stored label like "request_info" into "Request Info"
// for button text. Labels are ASCII by construction.
func titleLabel(value string) string {
	words := strings.Split(value, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
