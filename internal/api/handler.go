package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"factory-status-backend/internal/ingest"
	"factory-status-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	ingest  *ingest.Service
	webpush *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, svc *ingest.Service, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		store:   s,
		ingest:  svc,
		webpush: webpushOptions,
	}
}
