package model

import (
	"shine/shared/model"
)

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID    = "id"
	FieldName  = "name"
	FieldPhone = "phone"
	FieldEmail = "email"

	// ConstraintPhone deduplicates customers by phone number.
	ConstraintPhone = "customers_phone_key"
)

type Customer struct {
	ID    string `db:"id"`
	Name  string `db:"name"`
	Phone string `db:"phone"`
	Email string `db:"email"`

	model.Metadata
}
