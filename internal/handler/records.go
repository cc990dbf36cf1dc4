package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dialoguebot/internal/models"
	"dialoguebot/internal/repository"
)

type RecordsHandler interface {
	List(c *gin.Context)
}

type recordsHandler struct {
	repo   repository.DialogueRepository
	logger *zap.Logger
}

func NewRecordsHandler(repo repository.DialogueRepository, logger *zap.Logger) RecordsHandler {
	return &recordsHandler{
		repo:   repo,
		logger: logger,
	}
}

// List handles GET /api/records: a read-only JSON export of all dialogue
// records. Consent-only rows are not part of the dataset and are skipped.
func (h *recordsHandler) List(c *gin.Context) {
	records, err := h.repo.All(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to read records", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read records"})
		return
	}

	dialogues := make([]models.DialogueRecord, 0, len(records))
	for _, rec := range records {
		if rec.DialogueID != "" {
			dialogues = append(dialogues, rec)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(dialogues),
		"records": dialogues,
	})
}
