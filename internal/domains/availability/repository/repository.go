package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"shine/infras/otel"
	"shine/infras/postgres"
	"shine/internal/domains/availability/model"
	gDto "shine/shared/dto"
	gRepo "shine/shared/repository"
)

type Availability interface {
	Insert(ctx context.Context, model model.Availability) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Availability, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Availability]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Availability {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Availability](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
