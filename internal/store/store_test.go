package store

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"factory-status-backend/internal/extract"
	"factory-status-backend/internal/model"
	"factory-status-backend/internal/validate"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

var testDBSeq atomic.Int64

// newTestStore opens a uniquely named in-memory database so tests do not
// see each other's rows through sqlite's shared cache.
func newTestStore(t *testing.T) Store {
	dsn := fmt.Sprintf("file:storetest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&model.Machine{}, &model.SafetyArea{}, &model.SafetyLog{}, &model.Order{})
	require.NoError(t, err)

	return NewGormStore(db)
}

func TestUpsertMachine(t *testing.T) {
	ctx := context.Background()

	t.Run("creates on first update", func(t *testing.T) {
		s := newTestStore(t)

		rec, err := s.UpsertMachine(ctx, &extract.MachineUpdate{
			MachineCode: "M03",
			Status:      strPtr("Running"),
			Output:      intPtr(130),
			Operator:    strPtr("Arun"),
		})
		require.NoError(t, err)

		assert.Equal(t, "M03", rec.MachineCode)
		assert.Equal(t, model.MachineRunning, rec.Status)
		assert.Equal(t, 130, rec.Output)
		assert.Equal(t, "Arun", rec.Operator)
		assert.WithinDuration(t, time.Now().UTC(), rec.LastUpdate, 5*time.Second)
	})

	t.Run("merges only mentioned fields", func(t *testing.T) {
		s := newTestStore(t)

		_, err := s.UpsertMachine(ctx, &extract.MachineUpdate{
			MachineCode: "M03",
			Status:      strPtr("Idle"),
			Output:      intPtr(0),
			Operator:    strPtr("Arun"),
		})
		require.NoError(t, err)

		first, err := s.UpsertMachine(ctx, &extract.MachineUpdate{
			MachineCode: "M03",
			Status:      strPtr("Running"),
			Output:      intPtr(80),
		})
		require.NoError(t, err)

		rec, err := s.UpsertMachine(ctx, &extract.MachineUpdate{
			MachineCode: "M03",
			Status:      strPtr("Running"),
		})
		require.NoError(t, err)

		assert.Equal(t, model.MachineRunning, rec.Status)
		assert.Equal(t, 80, rec.Output, "output must survive an update that does not mention it")
		assert.Equal(t, "Arun", rec.Operator, "operator must survive an update that does not mention it")
		assert.False(t, rec.LastUpdate.Before(first.LastUpdate))

		stored, err := s.FindMachine(ctx, "M03")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, 80, stored.Output)
	})

	t.Run("no duplicate rows for the same code", func(t *testing.T) {
		s := newTestStore(t)

		for i := 0; i < 3; i++ {
			_, err := s.UpsertMachine(ctx, &extract.MachineUpdate{MachineCode: "M42"})
			require.NoError(t, err)
		}

		machines, err := s.ListMachines(ctx)
		require.NoError(t, err)
		assert.Len(t, machines, 1)
	})

	t.Run("validation failure leaves nothing behind", func(t *testing.T) {
		s := newTestStore(t)

		_, err := s.UpsertMachine(ctx, &extract.MachineUpdate{
			MachineCode: "M9",
			Status:      strPtr("Standby"),
		})

		var verr *validate.ValidationError
		require.ErrorAs(t, err, &verr)

		rec, err := s.FindMachine(ctx, "M9")
		require.NoError(t, err)
		assert.Nil(t, rec)
	})

	t.Run("concurrent updates to one key do not lose fields", func(t *testing.T) {
		s := newTestStore(t)

		_, err := s.UpsertMachine(ctx, &extract.MachineUpdate{MachineCode: "M77"})
		require.NoError(t, err)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := s.UpsertMachine(ctx, &extract.MachineUpdate{
				MachineCode: "M77",
				Operator:    strPtr("Lena"),
			})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := s.UpsertMachine(ctx, &extract.MachineUpdate{
				MachineCode: "M77",
				Status:      strPtr("Running"),
				Output:      intPtr(55),
			})
			assert.NoError(t, err)
		}()
		wg.Wait()

		rec, err := s.FindMachine(ctx, "M77")
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, "Lena", rec.Operator)
		assert.Equal(t, model.MachineRunning, rec.Status)
		assert.Equal(t, 55, rec.Output)
	})
}

func TestUpsertSafetyArea(t *testing.T) {
	ctx := context.Background()

	t.Run("creates with defaults then merges", func(t *testing.T) {
		s := newTestStore(t)

		rec, err := s.UpsertSafetyArea(ctx, &extract.SafetyUpdate{
			Zone:     "WeldingZone",
			AreaName: "WeldingZone_Area",
		})
		require.NoError(t, err)
		assert.Equal(t, model.RiskMedium, rec.RiskLevel)
		assert.Equal(t, model.AreaSafe, rec.Status)
		assert.Equal(t, validate.DefaultRequiredPPE, rec.RequiredPPE)

		rec, err = s.UpsertSafetyArea(ctx, &extract.SafetyUpdate{
			Zone:      "WeldingZone",
			AreaName:  "WeldingZone_Area",
			RiskLevel: strPtr("High"),
			Status:    strPtr("Warning"),
		})
		require.NoError(t, err)
		assert.Equal(t, model.RiskHigh, rec.RiskLevel)
		assert.Equal(t, model.AreaWarning, rec.Status)
		assert.Equal(t, validate.DefaultRequiredPPE, rec.RequiredPPE, "unmentioned PPE must survive")

		areas, err := s.ListSafetyAreas(ctx)
		require.NoError(t, err)
		assert.Len(t, areas, 1)
	})
}

func TestSafetyLogs(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	upd := &extract.SafetyUpdate{
		Zone:       "WeldingZone",
		AreaName:   "WeldingZone_Area",
		Compliance: strPtr("NonCompliant"),
		ReportedBy: strPtr("Priya"),
	}

	first, err := validate.SafetyLog(upd, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, s.AppendSafetyLog(ctx, first))

	second, err := validate.SafetyLog(upd, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, s.AppendSafetyLog(ctx, second))

	logs, err := s.ListSafetyLogs(ctx, "WeldingZone_Area")
	require.NoError(t, err)
	assert.Len(t, logs, 2, "every compliance event appends a new row")
	assert.NotEqual(t, logs[0].ID, logs[1].ID)
}

func TestUpsertOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("creation defaults then stage update", func(t *testing.T) {
		s := newTestStore(t)

		rec, err := s.UpsertOrder(ctx, &extract.OrderUpdate{OrderCode: "ORD1024"})
		require.NoError(t, err)
		assert.Equal(t, model.StagePlanning, rec.Stage)
		assert.Equal(t, model.PriorityMedium, rec.Priority)
		assert.Equal(t, model.OrderActive, rec.Status)
		created := rec.CreatedAt

		rec, err = s.UpsertOrder(ctx, &extract.OrderUpdate{
			OrderCode: "ORD1024",
			Stage:     strPtr("Packaging"),
			ETA:       strPtr("Nov-18"),
		})
		require.NoError(t, err)
		assert.Equal(t, model.StagePackaging, rec.Stage)
		assert.Equal(t, "Nov-18", rec.ETA)
		assert.Equal(t, created.Unix(), rec.CreatedAt.Unix(), "creation time must not move on update")
	})

	t.Run("on-hold status survives later updates", func(t *testing.T) {
		s := newTestStore(t)

		_, err := s.UpsertOrder(ctx, &extract.OrderUpdate{
			OrderCode: "ORD8",
			Status:    strPtr("OnHold"),
		})
		require.NoError(t, err)

		rec, err := s.UpsertOrder(ctx, &extract.OrderUpdate{
			OrderCode: "ORD8",
			Stage:     strPtr("Quality"),
		})
		require.NoError(t, err)
		assert.Equal(t, model.OrderOnHold, rec.Status)
	})
}
