// Package handlers implements the HTTP handlers for the content API, the
// admin surface and the debug inspector.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petalhealth/content-service/internal/logger"
	"github.com/petalhealth/content-service/internal/store"
)

// ContentHandler serves the content collections and refresh operations.
type ContentHandler struct {
	store  *store.Store
	logger logger.Logger
}

func NewContentHandler(st *store.Store, log logger.Logger) *ContentHandler {
	return &ContentHandler{store: st, logger: log}
}

func (h *ContentHandler) ListTopics(c *gin.Context) {
	topics := h.store.Topics()
	c.JSON(http.StatusOK, gin.H{"items": topics, "count": len(topics)})
}

func (h *ContentHandler) ListQuestions(c *gin.Context) {
	questions := h.store.Questions()
	c.JSON(http.StatusOK, gin.H{"items": questions, "count": len(questions)})
}

func (h *ContentHandler) ListPathways(c *gin.Context) {
	steps := h.store.PathwaySteps()
	c.JSON(http.StatusOK, gin.H{"items": steps, "count": len(steps)})
}

func (h *ContentHandler) ListInfertilityInfo(c *gin.Context) {
	info := h.store.InfertilityInfo()
	c.JSON(http.StatusOK, gin.H{"items": info, "count": len(info)})
}

func (h *ContentHandler) ListResources(c *gin.Context) {
	resources := h.store.Resources()
	c.JSON(http.StatusOK, gin.H{"items": resources, "count": len(resources)})
}

// GetStatus exposes the connection status and refresh state the app's status
// indicator is built from.
func (h *ContentHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          h.store.Status(),
		"refresh":         h.store.RefreshState(),
		"counts":          h.store.Counts(),
		"use_remote_data": h.store.UseRemoteData(),
	})
}

// TriggerRefresh runs a refresh cycle. A concurrent call while one is in
// flight is rejected with 409.
func (h *ContentHandler) TriggerRefresh(c *gin.Context) {
	result, err := h.store.Refresh(c.Request.Context())
	if err != nil {
		if errors.Is(err, store.ErrRefreshInFlight) {
			c.JSON(http.StatusConflict, gin.H{"error": "A refresh is already in flight"})
			return
		}
		h.logger.Error("Refresh failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Refresh failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}
