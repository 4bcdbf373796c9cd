package types

import "time"

// Maintenance request lifecycle states.
const (
	MaintenancePending   = "pending"
	MaintenanceOngoing   = "ongoing"
	MaintenanceCompleted = "completed"
)

// MaintenanceRequest is a repair or service request filed against a unit.
type MaintenanceRequest struct {
	ID             int    `json:"id" db:"id"`
	PropertyUnitID int    `json:"property_unit_id" db:"property_unit_id"`
	TenantID       int    `json:"tenant_id" db:"tenant_id"`
	Title          string `json:"title" db:"title"`
	Description    string `json:"description" db:"description"`

	// Status is one of pending, ongoing or completed.
	Status string `json:"status" db:"status"`

	// Comment is the manager's note attached on status changes.
	Comment string `json:"comment" db:"comment"`

	// ScheduledAt is when the work is scheduled, nil while pending.
	ScheduledAt *time.Time `json:"scheduled_at" db:"scheduled_at"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
