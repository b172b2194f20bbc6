package model

import (
	"database/sql"
	"slices"
	"time"

	"shine/shared/constant"
	"shine/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldServiceID    = "service_id"
	FieldCustomerID   = "customer_id"
	FieldBookingDate  = "booking_date"
	FieldSlotTime     = "slot_time"
	FieldVehicleMake  = "vehicle_make"
	FieldVehicleModel = "vehicle_model"
	FieldVehicleYear  = "vehicle_year"
	FieldVehicleColor = "vehicle_color"
	FieldVehiclePlate = "vehicle_plate"
	FieldStatus       = "status"

	// ConstraintServiceSlot guards one booking per (service, date, time).
	ConstraintServiceSlot = "bookings_service_slot_key"
)

// statusTransitions is the closed transition table. Completed and
// cancelled are terminal.
var statusTransitions = map[string][]string{
	constant.BookingStatusPending:   {constant.BookingStatusConfirmed, constant.BookingStatusCancelled},
	constant.BookingStatusConfirmed: {constant.BookingStatusCompleted, constant.BookingStatusCancelled},
	constant.BookingStatusCompleted: {},
	constant.BookingStatusCancelled: {},
}

// CanTransition reports whether a booking may move from one status to
// another.
func CanTransition(from, to string) bool {
	return slices.Contains(statusTransitions[from], to)
}

// Booking joins its service and customer on reads. The joined columns are
// nullable: a booking keeps no foreign key to the catalog, so a deleted
// service expands to null instead of failing the query.
type Booking struct {
	ID           string    `db:"id"`
	ServiceID    string    `db:"service_id"`
	CustomerID   string    `db:"customer_id"`
	BookingDate  time.Time `db:"booking_date"`
	SlotTime     string    `db:"slot_time"`
	VehicleMake  string    `db:"vehicle_make"`
	VehicleModel string    `db:"vehicle_model"`
	VehicleYear  string    `db:"vehicle_year"`
	VehicleColor string    `db:"vehicle_color"`
	VehiclePlate string    `db:"vehicle_plate"`
	Status       string    `db:"status"`

	ServiceTitle       sql.NullString `db:"service_title"        table:"services"  column:"title"`
	ServicePrice       sql.NullInt64  `db:"service_price"        table:"services"  column:"price"`
	ServiceDurationMin sql.NullInt64  `db:"service_duration_min" table:"services"  column:"duration_min"`
	CustomerName       sql.NullString `db:"customer_name"        table:"customers" column:"name"`
	CustomerPhone      sql.NullString `db:"customer_phone"       table:"customers" column:"phone"`
	CustomerEmail      sql.NullString `db:"customer_email"       table:"customers" column:"email"`

	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "LEFT JOIN services ON services.id = bookings.service_id " +
		"LEFT JOIN customers ON customers.id = bookings.customer_id"
}
