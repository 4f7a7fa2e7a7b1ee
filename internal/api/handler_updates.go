package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"factory-status-backend/internal/extract"
	"factory-status-backend/internal/ingest"
	"factory-status-backend/internal/validate"
)

type postUpdateRequest struct {
	Text string `json:"text" binding:"required"`
}

// PostUpdate handles POST /api/updates: one raw text line through the
// full pipeline.
func (h *Handler) PostUpdate(c *gin.Context) {
	var req postUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	result, err := h.ingest.Process(c.Request.Context(), req.Text)
	if err != nil {
		status := http.StatusInternalServerError

		var missing *extract.MissingKeyError
		var invalid *validate.ValidationError
		switch {
		case errors.Is(err, ingest.ErrUnclassified):
			// Not an error to the caller, just nothing to act on.
			status = http.StatusUnprocessableEntity
		case errors.As(err, &missing), errors.As(err, &invalid):
			status = http.StatusBadRequest
		}

		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

type postBatchRequest struct {
	Updates []string `json:"updates" binding:"required"`
}

// PostBatch handles POST /api/updates/batch: every item is processed
// independently and the call itself always succeeds.
func (h *Handler) PostBatch(c *gin.Context) {
	var req postBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "updates must be a list of text lines"})
		return
	}

	result := h.ingest.ProcessBatch(c.Request.Context(), req.Updates)
	c.JSON(http.StatusOK, result)
}
