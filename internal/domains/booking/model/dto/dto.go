package dto

import (
	"time"

	"shine/internal/domains/booking/model"
	customerModel "shine/internal/domains/customer/model"
	"shine/shared"
	"shine/shared/constant"
	gDto "shine/shared/dto"
	gModel "shine/shared/model"
	"shine/shared/timezone"

	"github.com/google/uuid"
)

type BookingCustomerRequest struct {
	Name  string `json:"name"  validate:"required,max=100"`
	Phone string `json:"phone" validate:"required,max=20"`
	Email string `json:"email" validate:"omitempty,email,max=100"`
}

type BookingVehicleRequest struct {
	Make  string `json:"make"  validate:"omitempty,max=50"`
	Model string `json:"model" validate:"omitempty,max=50"`
	Year  string `json:"year"  validate:"omitempty,max=10"`
	Color string `json:"color" validate:"omitempty,max=30"`
	Plate string `json:"plate" validate:"omitempty,max=20"`
}

type CreateBookingRequest struct {
	ServiceID string                 `json:"service_id" validate:"required"`
	Date      string                 `json:"date"       validate:"required,datetime=2006-01-02"`
	Time      string                 `json:"time"       validate:"required,datetime=15:04"`
	Vehicle   *BookingVehicleRequest `json:"vehicle"    validate:"omitempty"`
	Customer  BookingCustomerRequest `json:"customer"   validate:"required"`
}

func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	bookingDate, err := time.Parse(constant.BookingDateFormat, c.Date)
	if err != nil {
		return model.Booking{}, err //nolint:wrapcheck
	}

	vehicle := BookingVehicleRequest{}
	if c.Vehicle != nil {
		vehicle = *c.Vehicle
	}

	return model.Booking{
		ID:           uuid.NewString(),
		ServiceID:    c.ServiceID,
		BookingDate:  bookingDate,
		SlotTime:     c.Time,
		VehicleMake:  vehicle.Make,
		VehicleModel: vehicle.Model,
		VehicleYear:  vehicle.Year,
		VehicleColor: vehicle.Color,
		VehiclePlate: vehicle.Plate,
		Status:       constant.BookingStatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

func (c *CreateBookingRequest) ToCustomerModel(user string) customerModel.Customer {
	return customerModel.Customer{
		ID:    uuid.NewString(),
		Name:  c.Customer.Name,
		Phone: c.Customer.Phone,
		Email: c.Customer.Email,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateBookingStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}

type SlotResponse struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type ServiceSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Price       int64  `json:"price"`
	DurationMin int    `json:"duration_min"`
}

type CustomerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type VehicleResponse struct {
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  string `json:"year"`
	Color string `json:"color"`
	Plate string `json:"plate"`
}

type BookingResponse struct {
	ID       string           `json:"id"`
	Service  *ServiceSummary  `json:"service"`
	Customer *CustomerSummary `json:"customer"`
	Date     string           `json:"date"`
	Time     string           `json:"time"`
	Vehicle  VehicleResponse  `json:"vehicle"`
	Status   string           `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.Date = model.BookingDate.Format(constant.BookingDateFormat)
	r.Time = model.SlotTime
	r.Vehicle = VehicleResponse{
		Make:  model.VehicleMake,
		Model: model.VehicleModel,
		Year:  model.VehicleYear,
		Color: model.VehicleColor,
		Plate: model.VehiclePlate,
	}
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)

	// A booking may outlive its service; expand to null instead of a
	// partially-filled summary.
	if model.ServiceTitle.Valid {
		r.Service = &ServiceSummary{
			ID:          model.ServiceID,
			Title:       model.ServiceTitle.String,
			Price:       model.ServicePrice.Int64,
			DurationMin: int(model.ServiceDurationMin.Int64),
		}
	}

	if model.CustomerName.Valid {
		r.Customer = &CustomerSummary{
			ID:    model.CustomerID,
			Name:  model.CustomerName.String,
			Phone: model.CustomerPhone.String,
			Email: model.CustomerEmail.String,
		}
	}
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
