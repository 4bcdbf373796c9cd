package types

import "time"

// Tenant represents a registered renter.
type Tenant struct {
	ID        int    `json:"id" db:"id"`
	FirstName string `json:"firstName" db:"first_name"`
	LastName  string `json:"lastName" db:"last_name"`
	Email     string `json:"email" db:"email"`
	Phone     string `json:"phone" db:"phone"`

	// Status is "active" or "inactive".
	Status string `json:"status" db:"status"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Owner represents a property owner on record.
type Owner struct {
	ID        int    `json:"id" db:"id"`
	FirstName string `json:"firstName" db:"first_name"`
	LastName  string `json:"lastName" db:"last_name"`
	Email     string `json:"email" db:"email"`
	Phone     string `json:"phone" db:"phone"`
	Status    string `json:"status" db:"status"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Lease binds a tenant to a property unit for a period of time.
type Lease struct {
	ID             int     `json:"id" db:"id"`
	PropertyID     int     `json:"property_id" db:"property_id"`
	PropertyUnitID int     `json:"property_unit_id" db:"property_unit_id"`
	TenantID       int     `json:"tenant_id" db:"tenant_id"`
	RentPrice      float64 `json:"rentPrice" db:"rent_price"`
	DepositPrice   float64 `json:"depositPrice" db:"deposit_price"`

	StartDate time.Time `json:"startDate" db:"start_date"`
	EndDate   time.Time `json:"endDate" db:"end_date"`

	// Documents holds object storage keys of signed lease documents.
	Documents []string `json:"documents" db:"documents"`

	Status string `json:"status" db:"status"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
