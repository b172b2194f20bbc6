package customer

import (
	"net/http"
	"shine/infras/otel"
	"shine/internal/domains/customer/model"
	"shine/internal/domains/customer/service"
	"shine/shared/constant"
	gDto "shine/shared/dto"
	"shine/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Customer
	otel    otel.Otel
}

func New(service service.Customer, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/customers", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetCustomers)
		routerGroup.Get("/{id}", handler.GetCustomerByID)
	})
}

// GetCustomers retrieves the customer directory, newest first by default.
// @Summary Get all customers
// @Description Retrieve all customers with optional filtering and pagination.
// @Tags Customer
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param phone query string false "Filter by phone"
// @Success 200 {object} response.Data[dto.GetCustomersResponse] "List of customers"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/customers [get]
// @Security BearerAuth
func (handler *Handler) GetCustomers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCustomers")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.SanitizeSort(model.FieldName, model.FieldPhone, constant.FieldCreatedAt)

	if queryParams.SortBy == constant.Empty {
		queryParams.SortBy = constant.FieldCreatedAt
		queryParams.SortDir = gDto.SortDirDesc
	}

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if name := r.URL.Query().Get(model.FieldName); name != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if phone := r.URL.Query().Get(model.FieldPhone); phone != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPhone,
			Operator: gDto.FilterOperatorLike,
			Value:    phone,
			Table:    model.TableName,
		})
	}

	customers, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get customers")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Customers retrieved successfully")

	response.WithJSON(w, http.StatusOK, customers)
}

// GetCustomerByID retrieves a customer with their booking history.
// @Summary Get a customer by ID
// @Description Retrieve a customer and their bookings, newest date first.
// @Tags Customer
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} response.Data[dto.CustomerHistoryResponse] "Customer with history"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/customers/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetCustomerByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCustomerByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	customer, err := handler.service.GetWithHistory(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get customer by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Customer retrieved successfully")

	response.WithJSON(w, http.StatusOK, customer)
}
