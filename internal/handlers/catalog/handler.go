package catalog

import (
	"net/http"
	"shine/infras/otel"
	"shine/internal/domains/catalog/model"
	"shine/internal/domains/catalog/model/dto"
	"shine/internal/domains/catalog/service"
	"shine/shared"
	"shine/shared/constant"
	gDto "shine/shared/dto"
	"shine/shared/validator"
	"shine/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Catalog
	otel    otel.Otel
}

func New(service service.Catalog, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/services", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetServices)
		routerGroup.Get("/{id}", handler.GetServiceByID)
		routerGroup.Post("/", handler.CreateService)
		routerGroup.Post("/seed", handler.SeedServices)
		routerGroup.Put("/{id}", handler.UpdateService)
		routerGroup.Patch("/{id}", handler.UpdateService)
		routerGroup.Delete("/{id}", handler.DeleteService)
	})
}

// GetServices retrieves the service catalog.
// @Summary Get all services
// @Description Retrieve all services with optional filtering and pagination.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param title query string false "Filter by title"
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetServicesResponse] "List of services"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/services [get]
func (handler *Handler) GetServices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServices")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.SanitizeSort(model.FieldTitle, model.FieldPrice, model.FieldDurationMin, constant.FieldCreatedAt)

	title := r.URL.Query().Get(model.FieldTitle)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTitle,
				Operator: gDto.FilterOperatorLike,
				Value:    title,
				Table:    model.TableName,
			},
		},
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	services, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get services")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Services retrieved successfully")

	response.WithJSON(w, http.StatusOK, services)
}

// GetServiceByID retrieves a service by its ID.
// @Summary Get a service by ID
// @Description Retrieve a service by its unique identifier.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} response.Data[dto.ServiceResponse] "Service details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/services/{id} [get]
func (handler *Handler) GetServiceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServiceByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	service, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get service by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Service retrieved successfully")

	response.WithJSON(w, http.StatusOK, service)
}

// CreateService handles the creation of a new catalog entry.
// @Summary Create a new service
// @Description Create a new service with the provided details.
// @Tags Catalog
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Service title"
// @Param description formData string false "Service description"
// @Param price formData integer false "Service price"
// @Param duration_min formData integer true "Service duration in minutes"
// @Param active formData boolean false "Service active status"
// @Param image formData file false "Service image"
// @Success 201 {object} response.Message "Service created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/services [post]
// @Security BearerAuth
func (handler *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateService")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := dto.CreateServiceRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}

	if priceStr := r.FormValue("price"); priceStr != "" {
		if p, err := shared.ConvertStringToInt(priceStr); err == nil {
			req.Price = int64(p)
		}
	}

	if durationStr := r.FormValue("duration_min"); durationStr != "" {
		if d, err := shared.ConvertStringToInt(durationStr); err == nil {
			req.DurationMin = d
		}
	}

	if activeStr := r.FormValue("active"); activeStr != "" {
		req.Active = shared.ConvertStringToBool(activeStr)
	}

	file, fileHeader, err := r.FormFile("image")
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create service")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Service created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Service created successfully")
}

// SeedServices installs the default catalog.
// @Summary Seed the default catalog
// @Description Insert the default set of services.
// @Tags Catalog
// @Accept json
// @Produce json
// @Success 201 {object} response.Message "Catalog seeded successfully"
// @Failure 500 {object} response.Error
// @Router /v1/services/seed [post]
// @Security BearerAuth
func (handler *Handler) SeedServices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SeedServices")
	defer scope.End()

	if err := handler.service.Seed(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to seed catalog")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Catalog seeded successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Catalog seeded successfully")
}

// UpdateService updates an existing catalog entry by its ID.
// @Summary Update a service by ID
// @Description Update the details of an existing service.
// @Tags Catalog
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Service ID"
// @Param title formData string false "Service title"
// @Param description formData string false "Service description"
// @Param price formData integer false "Service price"
// @Param duration_min formData integer false "Service duration in minutes"
// @Param active formData boolean false "Service active status"
// @Param image formData file false "Service image"
// @Success 200 {object} response.Message "Service updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/services/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateService")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := dto.UpdateServiceRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}

	if priceStr := r.FormValue("price"); priceStr != "" {
		if p, err := shared.ConvertStringToInt(priceStr); err == nil {
			price := int64(p)
			req.Price = &price
		}
	}

	if durationStr := r.FormValue("duration_min"); durationStr != "" {
		if d, err := shared.ConvertStringToInt(durationStr); err == nil {
			req.DurationMin = &d
		}
	}

	if activeStr := r.FormValue("active"); activeStr != "" {
		req.Active = shared.ConvertStringToBool(activeStr)
	}

	file, fileHeader, err := r.FormFile("image")
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update service")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Service updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Service updated successfully")
}

// DeleteService deletes a catalog entry by its ID.
// @Summary Delete a service by ID
// @Description Delete a service using its unique identifier. Existing bookings keep their reference.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} response.Message "Service deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/services/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteService")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete service")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Service deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Service deleted successfully")
}
