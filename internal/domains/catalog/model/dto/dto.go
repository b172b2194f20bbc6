package dto

import (
	"mime/multipart"

	"shine/internal/domains/catalog/model"
	"shine/shared"
	gDto "shine/shared/dto"
	gModel "shine/shared/model"
	"shine/shared/timezone"

	"github.com/google/uuid"
)

type CreateServiceRequest struct {
	Title       string                `json:"title"        validate:"required,max=120"`
	Description string                `json:"description"  validate:"omitempty,max=500"`
	Price       int64                 `json:"price"        validate:"min=0"`
	DurationMin int                   `json:"duration_min" validate:"required,gt=0"`
	Image       *multipart.FileHeader `json:"image"        validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile   multipart.File        `json:"-"`
	Active      *bool                 `json:"active"       validate:"omitempty"`
}

func (c *CreateServiceRequest) ToModel(user string, imageURL string) model.Service {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Service{
		ID:          uuid.NewString(),
		Title:       c.Title,
		Description: c.Description,
		Price:       c.Price,
		DurationMin: c.DurationMin,
		Image:       imageURL,
		Active:      active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateServiceRequest struct {
	Title       string                `db:"title"        json:"title"        validate:"omitempty,max=120"`
	Description string                `db:"description"  json:"description"  validate:"omitempty,max=500"`
	Price       *int64                `db:"price"        json:"price"        validate:"omitempty,min=0"`
	DurationMin *int                  `db:"duration_min" json:"duration_min" validate:"omitempty,gt=0"`
	Image       *multipart.FileHeader `json:"image"      validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile   multipart.File        `json:"-"`
	Active      *bool                 `db:"active"       json:"active"       validate:"omitempty"`
}

type ServiceResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	DurationMin int    `json:"duration_min"`
	Image       string `json:"image"`
	Active      bool   `json:"active"`
	gDto.Metadata
}

func (r *ServiceResponse) FromModel(model model.Service) {
	r.ID = model.ID
	r.Title = model.Title
	r.Description = model.Description
	r.Price = model.Price
	r.DurationMin = model.DurationMin
	r.Image = model.Image
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetServicesResponse struct {
	Services  []ServiceResponse `json:"services"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetServicesResponse) FromModels(models []model.Service, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Services = make([]ServiceResponse, len(models))
	for i, mod := range models {
		r.Services[i].FromModel(mod)
	}
}
