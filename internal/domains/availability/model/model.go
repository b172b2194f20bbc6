package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"shine/shared/model"
)

const (
	TableName  = "availability"
	EntityName = "availability"

	FieldID              = "id"
	FieldBusinessHours   = "business_hours"
	FieldHolidays        = "holidays"
	FieldDefaultCapacity = "default_capacity"

	// ConstraintSingleton is the primary key guarding the single record.
	ConstraintSingleton = "availability_pkey"
)

// BusinessHour is one weekly opening window. Day runs 0 (Sunday) to 6.
type BusinessHour struct {
	Day   int    `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type BusinessHours []BusinessHour

func (b BusinessHours) Value() (driver.Value, error) {
	value, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal business hours: %w", err)
	}

	return value, nil
}

func (b *BusinessHours) Scan(src any) error {
	return scanJSON(src, b)
}

// Holidays is a set of ISO dates the business is closed on.
type Holidays []string

func (h Holidays) Value() (driver.Value, error) {
	value, err := json.Marshal(h)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal holidays: %w", err)
	}

	return value, nil
}

func (h *Holidays) Scan(src any) error {
	return scanJSON(src, h)
}

func scanJSON(src, dest any) error {
	switch value := src.(type) {
	case []byte:
		return json.Unmarshal(value, dest) //nolint:wrapcheck
	case string:
		return json.Unmarshal([]byte(value), dest) //nolint:wrapcheck
	case nil:
		return nil
	default:
		return errors.New("unsupported source type for jsonb column")
	}
}

// Availability is the single business-hours record. Its primary key is
// fixed, so at most one row can ever exist.
type Availability struct {
	ID              string        `db:"id"`
	BusinessHours   BusinessHours `db:"business_hours"`
	Holidays        Holidays      `db:"holidays"`
	DefaultCapacity int           `db:"default_capacity"`
	model.Metadata
}
