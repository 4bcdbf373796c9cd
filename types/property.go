package types

import "time"

// Property represents a managed building or estate.
type Property struct {
	ID              int    `json:"id" db:"id"`
	Name            string `json:"propertyName" db:"name"`
	RegisteredOwner string `json:"registeredOwner" db:"registered_owner"`
	AreaMeasurement string `json:"areaMeasurement" db:"area_measurement"`
	Description     string `json:"description" db:"description"`

	// Address fields follow the original registration form.
	Street   string `json:"street" db:"street"`
	Barangay string `json:"barangay" db:"barangay"`
	City     string `json:"city" db:"city"`
	Province string `json:"province" db:"province"`

	Notes string `json:"propertyNotes" db:"notes"`

	// Units is the declared number of rentable units.
	Units int `json:"units" db:"units"`

	// Features are free-form labels (pool, parking, ...).
	Features []string `json:"features" db:"features"`

	// Images holds object storage keys of uploaded property photos.
	Images []string `json:"images" db:"images"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PropertyUnit represents a single rentable unit within a property.
type PropertyUnit struct {
	ID                   int      `json:"id" db:"id"`
	PropertyID           int      `json:"propertyId" db:"property_id"`
	UnitType             string   `json:"unitType" db:"unit_type"`
	UnitNumber           string   `json:"unitNumber" db:"unit_number"`
	CommissionPercentage float64  `json:"commissionPercentage" db:"commission_percentage"`
	RentPrice            float64  `json:"rentPrice" db:"rent_price"`
	DepositPrice         float64  `json:"depositPrice" db:"deposit_price"`
	Floor                string   `json:"floor" db:"floor"`
	Size                 string   `json:"size" db:"size"`
	Description          string   `json:"description" db:"description"`
	Images               []string `json:"images" db:"images"`

	// Occupied is true while an active lease references the unit.
	Occupied bool `json:"occupied" db:"occupied"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
