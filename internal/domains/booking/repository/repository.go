package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"shine/infras/otel"
	"shine/infras/postgres"
	"shine/internal/domains/booking/model"
	customerModel "shine/internal/domains/customer/model"
	"shine/shared/constant"
	gDto "shine/shared/dto"
	"shine/shared/logger"
	gRepo "shine/shared/repository"
)

const insertCustomerQuery = `INSERT INTO customers (id, name, phone, email, created_at, modified_at, created_by, modified_by)
VALUES (:id, :name, :phone, :email, :created_at, :modified_at, :created_by, :modified_by)
ON CONFLICT (phone) DO NOTHING`

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	CreateWithCustomer(ctx context.Context, booking model.Booking, customer customerModel.Customer) (model.Booking, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// CreateWithCustomer resolves the customer by phone and inserts the booking
// in one transaction. An existing phone reuses the existing customer row,
// so concurrent requests for the same person converge on one record. The
// returned booking carries the resolved customer id.
func (repo *repositoryImpl) CreateWithCustomer(ctx context.Context, booking model.Booking, customer customerModel.Customer) (model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CreateWithCustomer")
	defer scope.End()

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return booking, fmt.Errorf("failed to begin transaction (%s): %w", model.EntityName, err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				logger.ErrorWithStack(rollbackErr)
			}
		}
	}()

	_, err = tx.NamedExecContext(ctx, insertCustomerQuery, customer)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return booking, fmt.Errorf("failed to upsert customer (%s): %w", customerModel.EntityName, err)
	}

	err = tx.GetContext(ctx, &booking.CustomerID, "SELECT id FROM customers WHERE phone = $1", customer.Phone)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return booking, fmt.Errorf("failed to resolve customer (%s): %w", customerModel.EntityName, err)
	}

	err = repo.InsertTx(ctx, tx, booking)
	if err != nil {
		scope.TraceError(err)

		return booking, err //nolint:wrapcheck
	}

	err = tx.Commit()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return booking, fmt.Errorf("failed to commit transaction (%s): %w", model.EntityName, err)
	}

	return booking, nil
}
