package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petalhealth/content-service/internal/fetcher"
	"github.com/petalhealth/content-service/internal/logger"
	"github.com/petalhealth/content-service/internal/store"
)

// DebugHandler is the developer-only inspector over the store and fetcher.
// It is mounted only when debug mode is enabled.
type DebugHandler struct {
	store   *store.Store
	fetcher *fetcher.Client
	logger  logger.Logger
}

func NewDebugHandler(st *store.Store, client *fetcher.Client, log logger.Logger) *DebugHandler {
	return &DebugHandler{store: st, fetcher: client, logger: log}
}

// Info reports collection counts, the last URLs fetched, and the current
// remote-data toggle.
func (h *DebugHandler) Info(c *gin.Context) {
	var lastURLs map[string]string
	if h.fetcher != nil {
		lastURLs = make(map[string]string)
		for res, url := range h.fetcher.LastURLs() {
			lastURLs[res.String()] = url
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"counts":          h.store.Counts(),
		"last_urls":       lastURLs,
		"use_remote_data": h.store.UseRemoteData(),
		"status":          h.store.Status(),
		"refresh":         h.store.RefreshState(),
	})
}

type setRemoteRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// SetRemote toggles whether refreshes consult the network.
func (h *DebugHandler) SetRemote(c *gin.Context) {
	var req setRemoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	h.store.SetUseRemoteData(*req.Enabled)
	c.JSON(http.StatusOK, gin.H{"use_remote_data": h.store.UseRemoteData()})
}

// ClearCache wipes the snapshot cache and reseeds collections from bundled
// data.
func (h *DebugHandler) ClearCache(c *gin.Context) {
	if err := h.store.ResetToBundled(c.Request.Context()); err != nil {
		h.logger.Error("Failed to reset to bundled data", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cache"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"counts": h.store.Counts()})
}
