package model

import "time"

// OrderStage is the canonical production stage of an order.
type OrderStage string

const (
	StagePlanning   OrderStage = "Planning"
	StageProduction OrderStage = "Production"
	StageQuality    OrderStage = "Quality"
	StagePackaging  OrderStage = "Packaging"
	StageShipping   OrderStage = "Shipping"
	StageCompleted  OrderStage = "Completed"
)

// OrderStageValues lists the allowed stages in canonical spelling.
func OrderStageValues() []string {
	return []string{
		string(StagePlanning),
		string(StageProduction),
		string(StageQuality),
		string(StagePackaging),
		string(StageShipping),
		string(StageCompleted),
	}
}

// Priority is the canonical urgency of an order.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

// PriorityValues lists the allowed priorities in canonical spelling.
func PriorityValues() []string {
	return []string{string(PriorityLow), string(PriorityMedium), string(PriorityHigh), string(PriorityUrgent)}
}

// OrderStatus is the canonical lifecycle status of an order.
type OrderStatus string

const (
	OrderActive    OrderStatus = "Active"
	OrderOnHold    OrderStatus = "OnHold"
	OrderCompleted OrderStatus = "Completed"
	OrderCancelled OrderStatus = "Cancelled"
)

// OrderStatusValues lists the allowed order statuses in canonical spelling.
func OrderStatusValues() []string {
	return []string{string(OrderActive), string(OrderOnHold), string(OrderCompleted), string(OrderCancelled)}
}

// Order represents a manufacturing order, keyed by its order code.
type Order struct {
	OrderCode    string      `gorm:"primaryKey;size:32" json:"order_code"`
	CustomerName string      `gorm:"size:256" json:"customer_name,omitempty"`
	Stage        OrderStage  `gorm:"size:32;not null" json:"stage"`
	Priority     Priority    `gorm:"size:32;not null" json:"priority"`
	Quantity     int         `gorm:"not null" json:"quantity"`
	Materials    string      `gorm:"size:512" json:"materials,omitempty"`
	ETA          string      `gorm:"size:64" json:"eta,omitempty"`
	Status       OrderStatus `gorm:"size:32;not null" json:"status"`
	AssignedTo   string      `gorm:"size:128" json:"assigned_to,omitempty"`
	CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
	LastUpdate   time.Time   `gorm:"not null" json:"last_update"`
}
