package dto

import (
	bookingDto "shine/internal/domains/booking/model/dto"
	"shine/internal/domains/customer/model"
	"shine/shared"
	gDto "shine/shared/dto"
)

type CustomerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	gDto.Metadata
}

func (r *CustomerResponse) FromModel(model model.Customer) {
	r.ID = model.ID
	r.Name = model.Name
	r.Phone = model.Phone
	r.Email = model.Email
	r.Metadata.FromModel(model.Metadata)
}

type GetCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetCustomersResponse) FromModels(models []model.Customer, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Customers = make([]CustomerResponse, len(models))
	for i, mod := range models {
		r.Customers[i].FromModel(mod)
	}
}

type CustomerHistoryResponse struct {
	Customer CustomerResponse             `json:"customer"`
	History  []bookingDto.BookingResponse `json:"history"`
}
