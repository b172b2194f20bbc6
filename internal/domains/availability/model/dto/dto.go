package dto

import (
	"shine/internal/domains/availability/model"
	"shine/shared/constant"
	gDto "shine/shared/dto"
	gModel "shine/shared/model"
	"shine/shared/timezone"
)

type BusinessHourPayload struct {
	Day   int    `json:"day"   validate:"gte=0,lte=6"`
	Start string `json:"start" validate:"required,datetime=15:04"`
	End   string `json:"end"   validate:"required,datetime=15:04"`
}

type UpsertAvailabilityRequest struct {
	BusinessHours   []BusinessHourPayload `json:"business_hours"   validate:"omitempty,dive"`
	Holidays        []string              `json:"holidays"         validate:"omitempty,dive,datetime=2006-01-02"`
	DefaultCapacity *int                  `json:"default_capacity" validate:"omitempty,min=1"`
}

func (u *UpsertAvailabilityRequest) ToModel(user string) model.Availability {
	capacity := 1
	if u.DefaultCapacity != nil {
		capacity = *u.DefaultCapacity
	}

	hours := make(model.BusinessHours, len(u.BusinessHours))
	for i, h := range u.BusinessHours {
		hours[i] = model.BusinessHour{Day: h.Day, Start: h.Start, End: h.End}
	}

	return model.Availability{
		ID:              constant.AvailabilitySingletonID,
		BusinessHours:   hours,
		Holidays:        model.Holidays(u.Holidays),
		DefaultCapacity: capacity,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type AvailabilityResponse struct {
	BusinessHours   []BusinessHourPayload `json:"business_hours"`
	Holidays        []string              `json:"holidays"`
	DefaultCapacity int                   `json:"default_capacity"`
	gDto.Metadata
}

func (r *AvailabilityResponse) FromModel(model model.Availability) {
	r.BusinessHours = make([]BusinessHourPayload, len(model.BusinessHours))
	for i, h := range model.BusinessHours {
		r.BusinessHours[i] = BusinessHourPayload{Day: h.Day, Start: h.Start, End: h.End}
	}

	r.Holidays = []string(model.Holidays)
	if r.Holidays == nil {
		r.Holidays = []string{}
	}

	r.DefaultCapacity = model.DefaultCapacity
	r.Metadata.FromModel(model.Metadata)
}
