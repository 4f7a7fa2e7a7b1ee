package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"factory-status-backend/internal/extract"
	"factory-status-backend/internal/model"
	"factory-status-backend/internal/validate"
)

// Store defines the interface for all database operations. Find methods
// return (nil, nil) when no record exists for the key. Upserts are
// serialized per business key: concurrent updates to the same machine,
// area, or order cannot interleave.
type Store interface {
	DB() *gorm.DB

	FindMachine(ctx context.Context, code string) (*model.Machine, error)
	UpsertMachine(ctx context.Context, upd *extract.MachineUpdate) (*model.Machine, error)
	ListMachines(ctx context.Context) ([]model.Machine, error)

	FindSafetyArea(ctx context.Context, name string) (*model.SafetyArea, error)
	UpsertSafetyArea(ctx context.Context, upd *extract.SafetyUpdate) (*model.SafetyArea, error)
	ListSafetyAreas(ctx context.Context) ([]model.SafetyArea, error)
	AppendSafetyLog(ctx context.Context, entry *model.SafetyLog) error
	ListSafetyLogs(ctx context.Context, areaName string) ([]model.SafetyLog, error)

	FindOrder(ctx context.Context, code string) (*model.Order, error)
	UpsertOrder(ctx context.Context, upd *extract.OrderUpdate) (*model.Order, error)
	ListOrders(ctx context.Context) ([]model.Order, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db    *gorm.DB
	locks *keyLocks
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db, locks: newKeyLocks()}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func findMachineTx(tx *gorm.DB, code string) (*model.Machine, error) {
	var rec model.Machine
	err := tx.First(&rec, "machine_code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find machine %q: %w", code, err)
	}
	return &rec, nil
}

func (s *gormStore) FindMachine(ctx context.Context, code string) (*model.Machine, error) {
	return findMachineTx(s.db.WithContext(ctx), code)
}

// UpsertMachine validates and merges upd over the current record (or over
// machine defaults when the code is new) and persists the result.
func (s *gormStore) UpsertMachine(ctx context.Context, upd *extract.MachineUpdate) (*model.Machine, error) {
	unlock := s.locks.lock("machine", upd.MachineCode)
	defer unlock()

	var rec *model.Machine
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findMachineTx(tx, upd.MachineCode)
		if err != nil {
			return err
		}

		rec, err = validate.Machine(upd, existing, time.Now().UTC())
		if err != nil {
			return err
		}

		if existing == nil {
			if err := tx.Create(rec).Error; err != nil {
				return fmt.Errorf("failed to create machine %q: %w", upd.MachineCode, err)
			}
			return nil
		}
		if err := tx.Save(rec).Error; err != nil {
			return fmt.Errorf("failed to update machine %q: %w", upd.MachineCode, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *gormStore) ListMachines(ctx context.Context) ([]model.Machine, error) {
	var machines []model.Machine
	if err := s.db.WithContext(ctx).Order("machine_code").Find(&machines).Error; err != nil {
		return nil, fmt.Errorf("failed to list machines: %w", err)
	}
	return machines, nil
}

func findSafetyAreaTx(tx *gorm.DB, name string) (*model.SafetyArea, error) {
	var rec model.SafetyArea
	err := tx.First(&rec, "area_name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find safety area %q: %w", name, err)
	}
	return &rec, nil
}

func (s *gormStore) FindSafetyArea(ctx context.Context, name string) (*model.SafetyArea, error) {
	return findSafetyAreaTx(s.db.WithContext(ctx), name)
}

// UpsertSafetyArea validates and merges upd over the current record (or
// over area defaults when the area is new) and persists the result.
func (s *gormStore) UpsertSafetyArea(ctx context.Context, upd *extract.SafetyUpdate) (*model.SafetyArea, error) {
	unlock := s.locks.lock("safety", upd.AreaName)
	defer unlock()

	var rec *model.SafetyArea
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findSafetyAreaTx(tx, upd.AreaName)
		if err != nil {
			return err
		}

		rec, err = validate.SafetyArea(upd, existing, time.Now().UTC())
		if err != nil {
			return err
		}

		if existing == nil {
			if err := tx.Create(rec).Error; err != nil {
				return fmt.Errorf("failed to create safety area %q: %w", upd.AreaName, err)
			}
			return nil
		}
		if err := tx.Save(rec).Error; err != nil {
			return fmt.Errorf("failed to update safety area %q: %w", upd.AreaName, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *gormStore) ListSafetyAreas(ctx context.Context) ([]model.SafetyArea, error) {
	var areas []model.SafetyArea
	if err := s.db.WithContext(ctx).Order("area_name").Find(&areas).Error; err != nil {
		return nil, fmt.Errorf("failed to list safety areas: %w", err)
	}
	return areas, nil
}

// AppendSafetyLog inserts a compliance event. Logs are append-only, so this
// is always a create, never a save.
func (s *gormStore) AppendSafetyLog(ctx context.Context, entry *model.SafetyLog) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append safety log for area %q: %w", entry.AreaName, err)
	}
	return nil
}

func (s *gormStore) ListSafetyLogs(ctx context.Context, areaName string) ([]model.SafetyLog, error) {
	var logs []model.SafetyLog
	if err := s.db.WithContext(ctx).Where("area_name = ?", areaName).Order("created_at DESC").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list safety logs for area %q: %w", areaName, err)
	}
	return logs, nil
}

func findOrderTx(tx *gorm.DB, code string) (*model.Order, error) {
	var rec model.Order
	err := tx.First(&rec, "order_code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find order %q: %w", code, err)
	}
	return &rec, nil
}

func (s *gormStore) FindOrder(ctx context.Context, code string) (*model.Order, error) {
	return findOrderTx(s.db.WithContext(ctx), code)
}

// UpsertOrder validates and merges upd over the current record (or over
// order defaults when the code is new) and persists the result.
func (s *gormStore) UpsertOrder(ctx context.Context, upd *extract.OrderUpdate) (*model.Order, error) {
	unlock := s.locks.lock("order", upd.OrderCode)
	defer unlock()

	var rec *model.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findOrderTx(tx, upd.OrderCode)
		if err != nil {
			return err
		}

		rec, err = validate.Order(upd, existing, time.Now().UTC())
		if err != nil {
			return err
		}

		if existing == nil {
			if err := tx.Create(rec).Error; err != nil {
				return fmt.Errorf("failed to create order %q: %w", upd.OrderCode, err)
			}
			return nil
		}
		if err := tx.Save(rec).Error; err != nil {
			return fmt.Errorf("failed to update order %q: %w", upd.OrderCode, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *gormStore) ListOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := s.db.WithContext(ctx).Order("order_code").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
