package model

import "shine/shared/model"

const (
	TableName  = "services"
	EntityName = "service"

	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldDurationMin = "duration_min"
	FieldImage       = "image"
	FieldActive      = "active"
)

type Service struct {
	ID          string `db:"id"`
	Title       string `db:"title"`
	Description string `db:"description"`
	Price       int64  `db:"price"`
	DurationMin int    `db:"duration_min"`
	Image       string `db:"image"`
	Active      bool   `db:"active"`
	model.Metadata
}
