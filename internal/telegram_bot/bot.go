package telegram_bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"dialoguebot/internal/models"
	"dialoguebot/internal/service"
)

// Fixed user-visible messages for the failure taxonomy.
const (
	msgStoreUnavailable = "⚠️ Couldn't reach the data store right now. Please try again."
	msgInvalidScript    = "⚠️ Please type only in Malayalam script."
	msgStaleAnnotation  = "❌ Couldn't find which dialogue you're annotating. Send /annotate to start again."
	msgStaleReview      = "❌ No pending review. Send /review to start again."
	msgStaleButton      = "⚠️ That button is no longer valid."
)

// Bot wires the Telegram transport to the consent, submission, annotation,
// and review flows.
type Bot struct {
	api         *tgbotapi.BotAPI
	logger      *zap.Logger
	consent     *service.ConsentService
	submissions *service.SubmissionService
	annotations *service.AnnotationService
	reviews     *service.ReviewService
}

// NewBot creates a new Telegram bot instance.
func NewBot(token string, consent *service.ConsentService, submissions *service.SubmissionService, annotations *service.AnnotationService, reviews *service.ReviewService, logger *zap.Logger) (*Bot, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot API: %w", err)
	}

	logger.Info("Telegram bot authorized", zap.String("username", botAPI.Self.UserName))

	return &Bot{
		api:         botAPI,
		logger:      logger,
		consent:     consent,
		submissions: submissions,
		annotations: annotations,
		reviews:     reviews,
	}, nil
}

// Start begins listening for updates from Telegram.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("Telegram bot started, waiting for updates...")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Telegram bot shutting down...")
			b.api.StopReceivingUpdates()
			return nil
		case update := <-updates:
			if update.CallbackQuery != nil {
				b.handleCallbackQuery(ctx, update.CallbackQuery)
			} else if update.Message != nil {
				b.handleMessage(ctx, update.Message)
			}
		}
	}
}

// handleMessage processes incoming commands and plain text.
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.From == nil {
		return
	}

	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}
	if message.Text != "" {
		b.handleText(ctx, message)
	}
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	userID := message.From.ID

	// Everything except /start's own consent prompt is blocked until the
	// user has consented.
	if message.Command() != "start" && !b.ensureConsent(ctx, chatID, userID) {
		return
	}

	switch message.Command() {
	case "start":
		b.handleStart(ctx, chatID, userID)
	case "submit":
		b.submissions.Enter(userID)
		b.sendMessage(chatID, "📝 Please send your Malayalam sentence or dialogue now:")
	case "stats":
		b.handleStats(ctx, chatID, userID)
	case "annotate":
		b.handleAnnotate(ctx, chatID, userID)
	case "edit":
		b.handleEdit(chatID, userID, strings.TrimSpace(message.CommandArguments()))
	case "review":
		b.handleReview(ctx, chatID, userID)
	case "help":
		b.sendMessage(chatID, helpText)
	default:
		b.sendMessage(chatID, "Unknown command. Send /help for the list of commands.")
	}
}

func (b *Bot) handleStart(ctx context.Context, chatID, userID int64) {
	consented, err := b.consent.HasConsented(ctx, userID)
	if err != nil {
		b.logger.Error("Failed to check consent", zap.Int64("user_id", userID), zap.Error(err))
		b.sendMessage(chatID, msgStoreUnavailable)
		return
	}
	if !consented {
		b.sendConsentPrompt(chatID)
		return
	}
	b.sendWelcome(chatID)
}

func (b *Bot) handleStats(ctx context.Context, chatID, userID int64) {
	count, err := b.submissions.Stats(ctx, userID)
	if err != nil {
		b.sendMessage(chatID, "⚠️ Couldn't retrieve your stats. Please try again later.")
		return
	}
	b.sendMessage(chatID, fmt.Sprintf("📊 You've submitted %d entries. Keep going!", count))
}

func (b *Bot) handleAnnotate(ctx context.Context, chatID, userID int64) {
	prompt, err := b.annotations.Begin(ctx, userID)
	switch {
	case errors.Is(err, service.ErrNotAuthorized):
		b.sendMessage(chatID, "⛔ You're not authorized to annotate.")
	case errors.Is(err, service.ErrNothingPending):
		b.sendMessage(chatID, "✅ All dialogues have been annotated! No more items available.")
	case err != nil:
		b.logger.Error("Failed to start annotation", zap.Int64("user_id", userID), zap.Error(err))
		b.sendMessage(chatID, msgStoreUnavailable)
	default:
		msg := tgbotapi.NewMessage(chatID, annotationPromptText(prompt))
		msg.ReplyMarkup = wizardStepKeyboard(models.FieldIntent, prompt.DialogueID)
		b.send(msg)
	}
}

func (b *Bot) handleEdit(chatID, userID int64, args string) {
	if !b.annotations.Authorized(userID) {
		b.sendMessage(chatID, "⛔ You're not authorized to annotate.")
		return
	}
	dialogueID := args
	if dialogueID == "" {
		b.sendMessage(chatID, "Usage: /edit <dialogue_id>")
		return
	}
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("✏️ Edit Dialogue %s\n\nSelect the field to change:", dialogueID))
	msg.ReplyMarkup = editMenuKeyboard(dialogueID)
	b.send(msg)
}

func (b *Bot) handleReview(ctx context.Context, chatID, userID int64) {
	prompt, err := b.reviews.Begin(ctx, userID)
	switch {
	case errors.Is(err, service.ErrNotAuthorized):
		b.sendMessage(chatID, "⛔ You're not authorized to review.")
	case errors.Is(err, service.ErrNothingPending):
		b.sendMessage(chatID, "✅ All dialogues have been reviewed. Great job!")
	case err != nil:
		b.logger.Error("Failed to start review", zap.Int64("user_id", userID), zap.Error(err))
		b.sendMessage(chatID, msgStoreUnavailable)
	default:
		msg := tgbotapi.NewMessage(chatID, reviewPromptText(prompt))
		msg.ReplyMarkup = reviewKeyboard()
		b.send(msg)
	}
}

// handleText routes plain text: a pending rejection captures it as the
// review comment, submission mode captures it as an utterance, anything
// else gets the command hint.
func (b *Bot) handleText(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	userID := message.From.ID

	if !b.ensureConsent(ctx, chatID, userID) {
		return
	}

	if b.reviews.AwaitingComment(userID) {
		dialogueID, err := b.reviews.SubmitComment(ctx, userID, message.Text)
		if err != nil {
			b.logger.Error("Failed to save review comment", zap.Int64("user_id", userID), zap.Error(err))
			b.sendMessage(chatID, "⚠️ Couldn't save your comment. Please try again.")
			return
		}
		b.sendMessage(chatID, fmt.Sprintf("✍️ Comment saved for Dialogue %s.\n\nSend /review to continue.", dialogueID))
		return
	}

	dialogueID, err := b.submissions.Submit(ctx, userID, message.From.UserName, message.Text)
	switch {
	case errors.Is(err, service.ErrNotExpecting):
		b.sendMessage(chatID, commandHintText)
	case errors.Is(err, service.ErrInvalidInput):
		b.sendMessage(chatID, msgInvalidScript)
	case err != nil:
		b.logger.Error("Failed to save submission", zap.Int64("user_id", userID), zap.Error(err))
		b.sendMessage(chatID, "⚠️ Couldn't save right now. Please try again.")
	default:
		b.sendMessage(chatID, fmt.Sprintf("✅ Saved! Your dialogue ID is %s.\nYou can check your progress with /stats.", dialogueID))
	}
}

// handleCallbackQuery processes button presses.
func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	b.logger.Info("Received callback query",
		zap.String("data", query.Data),
		zap.Int64("user_id", query.From.ID),
	)

	// Acknowledge the callback query
	callback := tgbotapi.NewCallback(query.ID, "")
	if _, err := b.api.Request(callback); err != nil {
		b.logger.Error("Failed to send callback response", zap.Error(err))
	}

	if query.Message == nil {
		return
	}
	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID
	userID := query.From.ID

	event, err := parseCallback(query.Data)
	if err != nil {
		b.logger.Error("Failed to parse callback data", zap.String("data", query.Data), zap.Error(err))
		b.editText(chatID, messageID, msgStaleButton)
		return
	}

	switch event.kind {
	case eventConsent:
		b.handleConsentAnswer(ctx, chatID, messageID, userID, event.granted)
	case eventWizardLabel:
		b.handleWizardChoice(ctx, chatID, messageID, userID, event)
	case eventEditMenu:
		if !b.annotations.Authorized(userID) {
			b.editText(chatID, messageID, "⛔ You're not authorized to annotate.")
			return
		}
		b.editTextAndMarkup(chatID, messageID,
			fmt.Sprintf("✏️ Edit Dialogue %s\n\nSelect the field to change:", event.dialogueID),
			editMenuKeyboard(event.dialogueID))
	case eventEditField:
		b.editTextAndMarkup(chatID, messageID,
			fmt.Sprintf("✏️ Edit %s for Dialogue %s\n\nSelect a new %s:", fieldTitle(event.field), event.dialogueID, event.field),
			editFieldKeyboard(event.field, event.dialogueID))
	case eventSetField:
		b.handleSetField(ctx, chatID, messageID, userID, event)
	case eventReviewDecision:
		b.handleReviewDecision(ctx, chatID, messageID, userID, event.approve)
	case eventNextAnnotate:
		b.handleNextAnnotate(ctx, chatID, messageID, userID)
	case eventMainMenu:
		b.editText(chatID, messageID, "🏠 Returning to main menu…")
		b.sendWelcome(chatID)
	case eventCancel:
		b.annotations.Cancel(userID)
		b.editText(chatID, messageID,
			fmt.Sprintf("❌ Annotation flow cancelled for Dialogue %s.\nSend /annotate or /start to continue.", event.dialogueID))
	}
}

func (b *Bot) handleConsentAnswer(ctx context.Context, chatID int64, messageID int, userID int64, granted bool) {
	if err := b.consent.Record(ctx, userID, granted); err != nil {
		b.editText(chatID, messageID, msgStoreUnavailable)
		return
	}
	if granted {
		b.editText(chatID, messageID, "✅ Thank you for your consent!")
		b.sendWelcome(chatID)
		return
	}
	b.editText(chatID, messageID, "❌ No worries, your data won't be used.")
}

func (b *Bot) handleWizardChoice(ctx context.Context, chatID int64, messageID int, userID int64, event callbackEvent) {
	prompt, err := b.annotations.Choose(ctx, userID, event.field, event.value)
	switch {
	case errors.Is(err, service.ErrNoActiveSession):
		b.editText(chatID, messageID, msgStaleAnnotation)
	case errors.Is(err, service.ErrInvalidInput):
		b.editText(chatID, messageID, "⚠️ That choice wasn't expected here. Send /annotate to start again.")
	case err != nil:
		b.logger.Error("Failed to store annotation choice", zap.Int64("user_id", userID), zap.Error(err))
		b.editText(chatID, messageID, msgStoreUnavailable)
	case prompt.Done:
		b.editTextAndMarkup(chatID, messageID,
			fmt.Sprintf("✅ Completed annotation for Dialogue %s:\n• Intent: %s\n• Emotion: %s\n• Topic: %s\n\n🎉 Great work!",
				prompt.DialogueID, prompt.Intent, prompt.Emotion, prompt.Topic),
			nextStepsKeyboard(prompt.DialogueID))
	default:
		b.editTextAndMarkup(chatID, messageID,
			fmt.Sprintf("✔️ %s set to %s.\n\nStep %d/3: Choose the %s:",
				fieldTitle(event.field), titleLabel(event.value), stepNumber(prompt.Next), fieldTitle(prompt.Next)),
			wizardStepKeyboard(prompt.Next, prompt.DialogueID))
	}
}

func (b *Bot) handleSetField(ctx context.Context, chatID int64, messageID int, userID int64, event callbackEvent) {
	err := b.annotations.EditField(ctx, userID, event.dialogueID, event.field, event.value)
	switch {
	case errors.Is(err, service.ErrNotAuthorized):
		b.editText(chatID, messageID, "⛔ You're not authorized to annotate.")
	case errors.Is(err, service.ErrNotFound):
		b.editText(chatID, messageID, "❌ Couldn't find that dialogue. Send /annotate to pick one instead.")
	case errors.Is(err, service.ErrInvalidInput):
		b.editText(chatID, messageID, msgStaleButton)
	case err != nil:
		b.logger.Error("Failed to edit field", zap.Int64("user_id", userID), zap.Error(err))
		b.editText(chatID, messageID, msgStoreUnavailable)
	default:
		b.editTextAndMarkup(chatID, messageID,
			fmt.Sprintf("✔️ Updated %s to %s for Dialogue %s.\n\nWhat next?",
				fieldTitle(event.field), titleLabel(event.value), event.dialogueID),
			tgbotapi.NewInlineKeyboardMarkup(
				tgbotapi.NewInlineKeyboardRow(
					tgbotapi.NewInlineKeyboardButtonData("🔄 Edit another field", "edit:"+event.dialogueID),
					tgbotapi.NewInlineKeyboardButtonData("🏠 Main menu", "menu:main"),
				),
			))
	}
}

func (b *Bot) handleReviewDecision(ctx context.Context, chatID int64, messageID int, userID int64, approve bool) {
	dialogueID, awaitComment, err := b.reviews.Decide(ctx, userID, approve)
	switch {
	case errors.Is(err, service.ErrNoActiveSession):
		b.editText(chatID, messageID, msgStaleReview)
	case err != nil:
		b.logger.Error("Failed to store review decision", zap.Int64("user_id", userID), zap.Error(err))
		b.editText(chatID, messageID, msgStoreUnavailable)
	case awaitComment:
		b.editText(chatID, messageID,
			fmt.Sprintf("❌ Dialogue %s marked rejected.\n\n📝 Please send your review comment as a message:", dialogueID))
	default:
		b.editText(chatID, messageID,
			fmt.Sprintf("✅ Dialogue %s marked approved!\n\n▶️ Send /review to review the next one.", dialogueID))
	}
}

func (b *Bot) handleNextAnnotate(ctx context.Context, chatID int64, messageID int, userID int64) {
	prompt, err := b.annotations.Begin(ctx, userID)
	switch {
	case errors.Is(err, service.ErrNotAuthorized):
		b.editText(chatID, messageID, "⛔ You're not authorized to annotate.")
	case errors.Is(err, service.ErrNothingPending):
		b.editText(chatID, messageID, "✅ All dialogues have been annotated! No more items available.")
	case err != nil:
		b.logger.Error("Failed to fetch next annotation", zap.Int64("user_id", userID), zap.Error(err))
		b.editText(chatID, messageID, msgStoreUnavailable)
	default:
		b.editTextAndMarkup(chatID, messageID,
			annotationPromptText(prompt),
			wizardStepKeyboard(models.FieldIntent, prompt.DialogueID))
	}
}

// ensureConsent reports whether the user may proceed, prompting for consent
// otherwise.
func (b *Bot) ensureConsent(ctx context.Context, chatID, userID int64) bool {
	consented, err := b.consent.HasConsented(ctx, userID)
	if err != nil {
		b.logger.Error("Failed to check consent", zap.Int64("user_id", userID), zap.Error(err))
		b.sendMessage(chatID, msgStoreUnavailable)
		return false
	}
	if !consented {
		b.sendConsentPrompt(chatID)
		return false
	}
	return true
}

func (b *Bot) sendConsentPrompt(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "Please confirm your consent to participate in this research.")
	msg.ReplyMarkup = consentKeyboard()
	b.send(msg)
}

func (b *Bot) sendWelcome(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, welcomeText)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = mainMenuKeyboard()
	b.send(msg)
}

func annotationPromptText(prompt *service.StepPrompt) string {
	return fmt.Sprintf("✏️ Annotating Dialogue %s:\n\n“%s”\n\nStep 1/3: Choose the Intent:",
		prompt.DialogueID, prompt.Utterance)
}

func reviewPromptText(prompt *service.ReviewPrompt) string {
	return fmt.Sprintf("🕵️ Reviewing Dialogue %s:\n\n“%s”\n\n🔍 Current annotations:\n• Intent: %s\n• Emotion: %s\n• Topic: %s\n\nDo you approve these annotations?",
		prompt.DialogueID, prompt.Utterance,
		orDash(prompt.Intent), orDash(prompt.Emotion), orDash(prompt.Topic))
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func stepNumber(field models.AnnotationField) int {
	switch field {
	case models.FieldEmotion:
		return 2
	case models.FieldTopic:
		return 3
	}
	return 1
}

func fieldTitle(field models.AnnotationField) string {
	return titleLabel(string(field))
}

// sendMessage is a helper to send a simple text message.
func (b *Bot) sendMessage(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) send(msg tgbotapi.MessageConfig) {
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message", zap.Int64("chat_id", msg.ChatID), zap.Error(err))
	}
}

func (b *Bot) editText(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if _, err := b.api.Send(edit); err != nil {
		b.logger.Error("Failed to edit message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (b *Bot) editTextAndMarkup(chatID int64, messageID int, text string, markup tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, markup)
	if _, err := b.api.Send(edit); err != nil {
		b.logger.Error("Failed to edit message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
