package validate

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"factory-status-backend/internal/extract"
	"factory-status-backend/internal/model"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestMachine(t *testing.T) {
	now := time.Now().UTC()

	t.Run("creation fills defaults", func(t *testing.T) {
		rec, err := Machine(&extract.MachineUpdate{MachineCode: "M03"}, nil, now)
		require.NoError(t, err)

		assert.Equal(t, "M03", rec.MachineCode)
		assert.Equal(t, model.MachineIdle, rec.Status)
		assert.Equal(t, 0, rec.Output)
		assert.Empty(t, rec.ErrorDescription)
		assert.Equal(t, now, rec.LastUpdate)
	})

	t.Run("merge leaves unmentioned fields untouched", func(t *testing.T) {
		existing := &model.Machine{
			MachineCode: "M03",
			Status:      model.MachineIdle,
			Output:      80,
			Operator:    "Arun",
		}
		rec, err := Machine(&extract.MachineUpdate{
			MachineCode: "M03",
			Status:      strPtr("Running"),
		}, existing, now)
		require.NoError(t, err)

		assert.Equal(t, model.MachineRunning, rec.Status)
		assert.Equal(t, 80, rec.Output)
		assert.Equal(t, "Arun", rec.Operator)
		assert.Equal(t, now, rec.LastUpdate)
	})

	t.Run("error status without description gets the default", func(t *testing.T) {
		rec, err := Machine(&extract.MachineUpdate{
			MachineCode: "M07",
			Status:      strPtr("Error"),
		}, nil, now)
		require.NoError(t, err)

		assert.Equal(t, model.MachineError, rec.Status)
		assert.Equal(t, DefaultErrorDescription, rec.ErrorDescription)
	})

	t.Run("leaving error status clears the description", func(t *testing.T) {
		existing := &model.Machine{
			MachineCode:      "M07",
			Status:           model.MachineError,
			ErrorDescription: "belt jammed",
		}
		rec, err := Machine(&extract.MachineUpdate{
			MachineCode: "M07",
			Status:      strPtr("Running"),
		}, existing, now)
		require.NoError(t, err)

		assert.Equal(t, model.MachineRunning, rec.Status)
		assert.Empty(t, rec.ErrorDescription)
	})

	t.Run("idle status forces output to zero", func(t *testing.T) {
		existing := &model.Machine{
			MachineCode: "M07",
			Status:      model.MachineRunning,
			Output:      120,
		}
		rec, err := Machine(&extract.MachineUpdate{
			MachineCode: "M07",
			Status:      strPtr("Idle"),
			Output:      intPtr(50),
		}, existing, now)
		require.NoError(t, err)

		assert.Equal(t, model.MachineIdle, rec.Status)
		assert.Equal(t, 0, rec.Output)
	})

	t.Run("passthrough status is rejected", func(t *testing.T) {
		_, err := Machine(&extract.MachineUpdate{
			MachineCode: "M07",
			Status:      strPtr("Standby"),
		}, nil, now)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "status", verr.Field)
		assert.Equal(t, "Standby", verr.Value)
		assert.Equal(t, model.MachineStatusValues(), verr.Allowed)
	})
}

func TestSafetyArea(t *testing.T) {
	now := time.Now().UTC()

	t.Run("creation fills defaults", func(t *testing.T) {
		rec, err := SafetyArea(&extract.SafetyUpdate{
			Zone:     "WeldingZone",
			AreaName: "WeldingZone_Area",
		}, nil, now)
		require.NoError(t, err)

		assert.Equal(t, "WeldingZone_Area", rec.AreaName)
		assert.Equal(t, "WeldingZone", rec.Zone)
		assert.Equal(t, model.RiskMedium, rec.RiskLevel)
		assert.Equal(t, model.AreaSafe, rec.Status)
		assert.Equal(t, DefaultRequiredPPE, rec.RequiredPPE)
		assert.Equal(t, now, rec.LastInspection)
	})

	t.Run("merge over existing area", func(t *testing.T) {
		existing := &model.SafetyArea{
			AreaName:    "WeldingZone_Area",
			Zone:        "WeldingZone",
			RequiredPPE: "Welding mask",
			RiskLevel:   model.RiskMedium,
			Status:      model.AreaSafe,
		}
		rec, err := SafetyArea(&extract.SafetyUpdate{
			Zone:      "WeldingZone",
			AreaName:  "WeldingZone_Area",
			RiskLevel: strPtr("High"),
			Status:    strPtr("Warning"),
		}, existing, now)
		require.NoError(t, err)

		assert.Equal(t, model.RiskHigh, rec.RiskLevel)
		assert.Equal(t, model.AreaWarning, rec.Status)
		assert.Equal(t, "Welding mask", rec.RequiredPPE)
	})

	t.Run("invalid risk level is rejected", func(t *testing.T) {
		_, err := SafetyArea(&extract.SafetyUpdate{
			Zone:      "Dock",
			AreaName:  "Dock_Area",
			RiskLevel: strPtr("Extreme"),
		}, nil, now)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "risk_level", verr.Field)
	})
}

func TestSafetyLog(t *testing.T) {
	now := time.Now().UTC()

	t.Run("builds an event with a fresh id", func(t *testing.T) {
		entry, err := SafetyLog(&extract.SafetyUpdate{
			Zone:       "WeldingZone",
			AreaName:   "WeldingZone_Area",
			Compliance: strPtr("NonCompliant"),
			ReportedBy: strPtr("Priya"),
		}, now)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, entry.ID)
		assert.Equal(t, "WeldingZone_Area", entry.AreaName)
		assert.Equal(t, model.NonCompliant, entry.PPECompliance)
		assert.Equal(t, "Priya", entry.ReportedBy)
		assert.Equal(t, now, entry.CreatedAt)
	})

	t.Run("missing compliance is rejected", func(t *testing.T) {
		_, err := SafetyLog(&extract.SafetyUpdate{Zone: "Dock", AreaName: "Dock_Area"}, now)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "ppe_compliance", verr.Field)
	})
}

func TestOrder(t *testing.T) {
	now := time.Now().UTC()

	t.Run("creation fills defaults", func(t *testing.T) {
		rec, err := Order(&extract.OrderUpdate{OrderCode: "ORD1024"}, nil, now)
		require.NoError(t, err)

		assert.Equal(t, "ORD1024", rec.OrderCode)
		assert.Equal(t, model.StagePlanning, rec.Stage)
		assert.Equal(t, model.PriorityMedium, rec.Priority)
		assert.Equal(t, model.OrderActive, rec.Status)
		assert.Equal(t, 0, rec.Quantity)
		assert.Equal(t, now, rec.CreatedAt)
		assert.Equal(t, now, rec.LastUpdate)
	})

	t.Run("status default is not re-applied on update", func(t *testing.T) {
		existing := &model.Order{
			OrderCode: "ORD1024",
			Stage:     model.StageProduction,
			Priority:  model.PriorityHigh,
			Status:    model.OrderOnHold,
			CreatedAt: now.Add(-time.Hour),
		}
		rec, err := Order(&extract.OrderUpdate{
			OrderCode: "ORD1024",
			Stage:     strPtr("Packaging"),
		}, existing, now)
		require.NoError(t, err)

		assert.Equal(t, model.StagePackaging, rec.Stage)
		assert.Equal(t, model.OrderOnHold, rec.Status, "existing status must survive an update that does not mention STATUS")
		assert.Equal(t, existing.CreatedAt, rec.CreatedAt)
		assert.Equal(t, now, rec.LastUpdate)
	})

	t.Run("passthrough stage is rejected", func(t *testing.T) {
		_, err := Order(&extract.OrderUpdate{
			OrderCode: "ORD1024",
			Stage:     strPtr("Waiting"),
		}, nil, now)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "stage", verr.Field)
		assert.Equal(t, model.OrderStageValues(), verr.Allowed)
	})
}
