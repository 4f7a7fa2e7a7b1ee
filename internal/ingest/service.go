// Package ingest ties the text pipeline together: classification, field
// extraction, validation, and the keyed upsert. It is the only entry point
// the transport layer talks to.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"factory-status-backend/internal/classify"
	"factory-status-backend/internal/extract"
	"factory-status-backend/internal/model"
	"factory-status-backend/internal/notification"
	"factory-status-backend/internal/store"
	"factory-status-backend/internal/validate"
)

// ErrUnclassified reports text that matched none of the classifier rules.
// It is a normal "no action" outcome for single updates but counts as a
// failure inside a batch.
var ErrUnclassified = errors.New("text could not be classified as a machine, safety, or order update")

// Update is the classified-and-extracted form of one raw text line.
// Exactly one of the entity pointers is set, matching Kind.
type Update struct {
	Kind    classify.Kind          `json:"kind"`
	Machine *extract.MachineUpdate `json:"machine,omitempty"`
	Safety  *extract.SafetyUpdate  `json:"safety,omitempty"`
	Order   *extract.OrderUpdate   `json:"order,omitempty"`
}

// ClassifyAndExtract routes raw text to the matching extractor. It has no
// side effects and is safe to call concurrently.
func ClassifyAndExtract(raw string) (*Update, error) {
	switch kind := classify.Classify(raw); kind {
	case classify.KindMachine:
		upd, err := extract.Machine(raw)
		if err != nil {
			return nil, err
		}
		return &Update{Kind: kind, Machine: upd}, nil
	case classify.KindSafety:
		upd, err := extract.Safety(raw)
		if err != nil {
			return nil, err
		}
		return &Update{Kind: kind, Safety: upd}, nil
	case classify.KindOrder:
		upd, err := extract.Order(raw)
		if err != nil {
			return nil, err
		}
		return &Update{Kind: kind, Order: upd}, nil
	default:
		return nil, ErrUnclassified
	}
}

// Service runs the ingest pipeline against a store and, optionally,
// dispatches alerts for error and critical transitions.
type Service struct {
	store  store.Store
	alerts *notification.WorkerPool
}

// NewService creates the ingest service. The alert pool may be nil when
// push notifications are not configured.
func NewService(s store.Store, alerts *notification.WorkerPool) *Service {
	return &Service{store: s, alerts: alerts}
}

// Result is the outcome of one successfully processed update.
type Result struct {
	Kind      classify.Kind    `json:"kind"`
	Record    any              `json:"record"`
	SafetyLog *model.SafetyLog `json:"safety_log,omitempty"`
}

// Process runs one raw text line through the full pipeline and returns the
// persisted record. Classification, extraction, validation, and persistence
// failures are all returned to the caller as-is.
func (s *Service) Process(ctx context.Context, raw string) (*Result, error) {
	upd, err := ClassifyAndExtract(raw)
	if err != nil {
		return nil, err
	}

	switch upd.Kind {
	case classify.KindMachine:
		rec, err := s.store.UpsertMachine(ctx, upd.Machine)
		if err != nil {
			return nil, err
		}
		if rec.Status == model.MachineError && s.alerts != nil {
			s.alerts.Dispatch(notification.Alert{
				MachineCode: rec.MachineCode,
				Message:     fmt.Sprintf("Machine %s entered Error status: %s", rec.MachineCode, rec.ErrorDescription),
			})
		}
		return &Result{Kind: upd.Kind, Record: rec}, nil

	case classify.KindSafety:
		rec, err := s.store.UpsertSafetyArea(ctx, upd.Safety)
		if err != nil {
			return nil, err
		}

		result := &Result{Kind: upd.Kind, Record: rec}
		if upd.Safety.Compliance != nil {
			entry, err := validate.SafetyLog(upd.Safety, time.Now().UTC())
			if err != nil {
				return nil, err
			}
			if err := s.store.AppendSafetyLog(ctx, entry); err != nil {
				return nil, err
			}
			result.SafetyLog = entry
		}

		if rec.Status == model.AreaCritical && s.alerts != nil {
			s.alerts.Dispatch(notification.Alert{
				Message: fmt.Sprintf("Safety area %s is Critical (risk %s)", rec.AreaName, rec.RiskLevel),
			})
		}
		return result, nil

	case classify.KindOrder:
		rec, err := s.store.UpsertOrder(ctx, upd.Order)
		if err != nil {
			return nil, err
		}
		return &Result{Kind: upd.Kind, Record: rec}, nil
	}

	return nil, ErrUnclassified
}

// ItemOutcome is the per-item result of a batch run.
type ItemOutcome struct {
	Index   int           `json:"index"`
	Success bool          `json:"success"`
	Kind    classify.Kind `json:"kind"`
	Record  any           `json:"record,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// BatchResult aggregates the outcomes of one batch call.
type BatchResult struct {
	Items     []ItemOutcome `json:"items"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
}

// ProcessBatch runs each raw text line through the pipeline independently.
// One item's failure never aborts the rest; outcomes preserve input order.
func (s *Service) ProcessBatch(ctx context.Context, texts []string) BatchResult {
	result := BatchResult{Items: make([]ItemOutcome, 0, len(texts))}

	for i, raw := range texts {
		outcome := ItemOutcome{Index: i, Kind: classify.Classify(raw)}

		res, err := s.Process(ctx, raw)
		if err != nil {
			outcome.Error = err.Error()
			result.Failed++
			log.Printf("Batch item %d failed: %v", i, err)
		} else {
			outcome.Success = true
			outcome.Kind = res.Kind
			outcome.Record = res.Record
			result.Succeeded++
		}

		result.Items = append(result.Items, outcome)
	}

	return result
}
