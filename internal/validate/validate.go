// Package validate enforces the business rules that gate a partial update
// before it is committed: closed-enum membership, entity-specific derived
// rules, and creation-time defaults. Each function merges the update over
// the existing record (or over defaults when there is none) and returns the
// full record to persist.
package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"factory-status-backend/internal/extract"
	"factory-status-backend/internal/model"
)

// DefaultErrorDescription is forced onto a machine entering Error status
// when the update text supplied none.
const DefaultErrorDescription = "Unspecified error"

// DefaultRequiredPPE is the standard PPE set for a newly created safety area.
const DefaultRequiredPPE = "Safety glasses, Gloves, Steel-toe boots"

// ValidationError reports an explicitly supplied enum value that is not a
// member of its field's closed enumeration.
type ValidationError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q, allowed values: %s", e.Field, e.Value, strings.Join(e.Allowed, ", "))
}

func checkEnum(field string, value *string, allowed []string) error {
	if value == nil {
		return nil
	}
	for _, v := range allowed {
		if *value == v {
			return nil
		}
	}
	return &ValidationError{Field: field, Value: *value, Allowed: allowed}
}

// Machine validates upd against the current record and returns the merged
// machine. Passing a nil existing record means creation: defaults are
// filled for every field the update does not mention.
func Machine(upd *extract.MachineUpdate, existing *model.Machine, now time.Time) (*model.Machine, error) {
	if err := checkEnum("status", upd.Status, model.MachineStatusValues()); err != nil {
		return nil, err
	}

	var rec model.Machine
	if existing != nil {
		rec = *existing
	} else {
		rec = model.Machine{
			MachineCode: upd.MachineCode,
			DisplayName: "Machine " + upd.MachineCode,
			Status:      model.MachineIdle,
			Output:      0,
		}
	}

	if upd.Status != nil {
		rec.Status = model.MachineStatus(*upd.Status)
	}
	if upd.Output != nil {
		rec.Output = *upd.Output
	}
	if upd.ErrorDescription != nil {
		rec.ErrorDescription = *upd.ErrorDescription
	}
	if upd.Operator != nil {
		rec.Operator = *upd.Operator
	}

	// Derived rules: an Error machine always carries a description, any
	// other status clears it, and Idle forces output to zero.
	if rec.Status == model.MachineError {
		if rec.ErrorDescription == "" {
			rec.ErrorDescription = DefaultErrorDescription
		}
	} else {
		rec.ErrorDescription = ""
	}
	if rec.Status == model.MachineIdle {
		rec.Output = 0
	}

	rec.LastUpdate = now
	return &rec, nil
}

// SafetyArea validates upd against the current record and returns the
// merged area. A nil existing record means creation.
func SafetyArea(upd *extract.SafetyUpdate, existing *model.SafetyArea, now time.Time) (*model.SafetyArea, error) {
	if err := checkEnum("risk_level", upd.RiskLevel, model.RiskLevelValues()); err != nil {
		return nil, err
	}
	if err := checkEnum("status", upd.Status, model.AreaStatusValues()); err != nil {
		return nil, err
	}

	var rec model.SafetyArea
	if existing != nil {
		rec = *existing
	} else {
		rec = model.SafetyArea{
			AreaName:    upd.AreaName,
			Zone:        upd.Zone,
			RequiredPPE: DefaultRequiredPPE,
			RiskLevel:   model.RiskMedium,
			Status:      model.AreaSafe,
		}
	}

	rec.Zone = upd.Zone
	if upd.RequiredPPE != nil {
		rec.RequiredPPE = *upd.RequiredPPE
	}
	if upd.RiskLevel != nil {
		rec.RiskLevel = model.RiskLevel(*upd.RiskLevel)
	}
	if upd.Status != nil {
		rec.Status = model.AreaStatus(*upd.Status)
	}
	if upd.Notes != nil {
		rec.Notes = *upd.Notes
	}

	rec.LastInspection = now
	return &rec, nil
}

// SafetyLog builds a new append-only compliance event from a safety update
// that carries a compliance classification.
func SafetyLog(upd *extract.SafetyUpdate, now time.Time) (*model.SafetyLog, error) {
	if upd.Compliance == nil {
		return nil, &ValidationError{Field: "ppe_compliance", Value: "", Allowed: model.ComplianceValues()}
	}
	if err := checkEnum("ppe_compliance", upd.Compliance, model.ComplianceValues()); err != nil {
		return nil, err
	}

	entry := model.SafetyLog{
		ID:            uuid.New(),
		AreaName:      upd.AreaName,
		Zone:          upd.Zone,
		PPECompliance: model.Compliance(*upd.Compliance),
		CreatedAt:     now,
	}
	if upd.IncidentType != nil {
		entry.IncidentType = *upd.IncidentType
	}
	if upd.Description != nil {
		entry.Description = *upd.Description
	}
	if upd.ReportedBy != nil {
		entry.ReportedBy = *upd.ReportedBy
	}
	return &entry, nil
}

// Order validates upd against the current record and returns the merged
// order. A nil existing record means creation; the Active status default is
// applied only then, never on updates to an existing order.
func Order(upd *extract.OrderUpdate, existing *model.Order, now time.Time) (*model.Order, error) {
	if err := checkEnum("stage", upd.Stage, model.OrderStageValues()); err != nil {
		return nil, err
	}
	if err := checkEnum("priority", upd.Priority, model.PriorityValues()); err != nil {
		return nil, err
	}
	if err := checkEnum("status", upd.Status, model.OrderStatusValues()); err != nil {
		return nil, err
	}

	var rec model.Order
	if existing != nil {
		rec = *existing
	} else {
		rec = model.Order{
			OrderCode: upd.OrderCode,
			Stage:     model.StagePlanning,
			Priority:  model.PriorityMedium,
			Status:    model.OrderActive,
			Quantity:  0,
			CreatedAt: now,
		}
	}

	if upd.CustomerName != nil {
		rec.CustomerName = *upd.CustomerName
	}
	if upd.Stage != nil {
		rec.Stage = model.OrderStage(*upd.Stage)
	}
	if upd.Priority != nil {
		rec.Priority = model.Priority(*upd.Priority)
	}
	if upd.Quantity != nil {
		rec.Quantity = *upd.Quantity
	}
	if upd.Materials != nil {
		rec.Materials = *upd.Materials
	}
	if upd.ETA != nil {
		rec.ETA = *upd.ETA
	}
	if upd.Status != nil {
		rec.Status = model.OrderStatus(*upd.Status)
	}
	if upd.AssignedTo != nil {
		rec.AssignedTo = *upd.AssignedTo
	}

	rec.LastUpdate = now
	return &rec, nil
}
