package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petalhealth/content-service/internal/events"
	"github.com/petalhealth/content-service/internal/importer"
	"github.com/petalhealth/content-service/internal/logger"
	"github.com/petalhealth/content-service/internal/metadata"
	"github.com/petalhealth/content-service/internal/models"
	"github.com/petalhealth/content-service/internal/store"
)

// AdminHandler serves the editorial surface: link previews and workbook
// imports.
type AdminHandler struct {
	store     *store.Store
	extractor *metadata.Extractor
	publisher *events.Publisher
	logger    logger.Logger
}

func NewAdminHandler(st *store.Store, extractor *metadata.Extractor, pub *events.Publisher, log logger.Logger) *AdminHandler {
	return &AdminHandler{store: st, extractor: extractor, publisher: pub, logger: log}
}

// PreviewResource fetches an external URL and returns its link preview so
// editors can verify outbound resource links.
func (h *AdminHandler) PreviewResource(c *gin.Context) {
	pageURL := c.Query("url")
	if pageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
		return
	}

	preview, err := h.extractor.Extract(c.Request.Context(), pageURL)
	if err != nil {
		h.logger.Debug("Link preview failed",
			logger.String("url", pageURL),
			logger.Error(err),
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to preview URL", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, preview)
}

// ImportWorkbook accepts an editorial xlsx upload and applies the valid rows.
// Rejected rows are reported per row; a sheet with zero valid rows is not
// applied so a bad upload cannot wipe a collection.
func (h *AdminHandler) ImportWorkbook(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file form field is required", "details": err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open upload", "details": err.Error()})
		return
	}
	defer func() { _ = file.Close() }()

	result, err := importer.Parse(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse workbook", "details": err.Error()})
		return
	}

	applied := map[string]int{}
	if len(result.Topics) > 0 {
		if err := h.store.ApplyOverride(c.Request.Context(), models.ResourceTopics, result.Topics); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply topics"})
			return
		}
		applied[models.ResourceTopics.String()] = len(result.Topics)
		h.publishImport(models.ResourceTopics, len(result.Topics), len(result.Errors))
	}
	if len(result.Questions) > 0 {
		if err := h.store.ApplyOverride(c.Request.Context(), models.ResourceQuestions, result.Questions); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply questions"})
			return
		}
		applied[models.ResourceQuestions.String()] = len(result.Questions)
		h.publishImport(models.ResourceQuestions, len(result.Questions), len(result.Errors))
	}

	h.logger.Info("Editorial import applied",
		logger.Int("topics", len(result.Topics)),
		logger.Int("questions", len(result.Questions)),
		logger.Int("rejected_rows", len(result.Errors)),
	)

	c.JSON(http.StatusOK, gin.H{
		"applied": applied,
		"errors":  result.Errors,
	})
}

func (h *AdminHandler) publishImport(res models.Resource, imported, rejected int) {
	h.publisher.PublishAsync(events.Event{
		EventType: events.ContentImported,
		Payload: events.ImportPayload{
			Resource: res.String(),
			Imported: imported,
			Rejected: rejected,
		},
	})
}
