package booking

import (
	"net/http"
	"shine/infras/otel"
	"shine/internal/domains/booking/model"
	"shine/internal/domains/booking/model/dto"
	"shine/internal/domains/booking/service"
	"shine/shared/constant"
	gDto "shine/shared/dto"
	"shine/shared/validator"
	"shine/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/slots", handler.GetSlots)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}/status", handler.UpdateBookingStatus)
		routerGroup.Delete("/{id}", handler.DeleteBooking)
	})
}

// CreateBooking books a slot for a service.
// @Summary Create a new booking
// @Description Book a slot for a service. The customer is matched by phone number.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse] "Created booking"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking created successfully")

	response.WithJSON(w, http.StatusCreated, booking)
}

// GetSlots lists slot start times for a service on a date.
// @Summary Get slots for a service on a date
// @Description List the slot start times within the working window, marking booked ones unavailable.
// @Tags Booking
// @Accept json
// @Produce json
// @Param service_id query string true "Service ID"
// @Param date query string true "Date (2006-01-02)"
// @Success 200 {object} response.Data[dto.SlotResponse] "Slot list"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/slots [get]
func (handler *Handler) GetSlots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSlots")
	defer scope.End()

	serviceID := r.URL.Query().Get(constant.RequestParamServiceID)
	date := r.URL.Query().Get(constant.RequestParamDate)

	slots, err := handler.service.Slots(ctx, serviceID, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get slots")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Slots retrieved successfully")

	response.WithJSON(w, http.StatusOK, slots)
}

// GetBookings retrieves bookings, newest date first by default.
// @Summary Get all bookings
// @Description Retrieve all bookings with optional filtering and pagination.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param service_id query string false "Filter by service"
// @Param status query string false "Filter by status"
// @Param date query string false "Filter by date (2006-01-02)"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.SanitizeSort(model.FieldBookingDate, model.FieldSlotTime, model.FieldStatus, constant.FieldCreatedAt)

	if queryParams.SortBy == constant.Empty {
		queryParams.SortBy = model.FieldBookingDate
		queryParams.SortDir = gDto.SortDirDesc
	}

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if serviceID := r.URL.Query().Get(constant.RequestParamServiceID); serviceID != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldServiceID,
			Operator: gDto.FilterOperatorEq,
			Value:    serviceID,
			Table:    model.TableName,
		})
	}

	if status := r.URL.Query().Get(model.FieldStatus); status != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if date := r.URL.Query().Get(constant.RequestParamDate); date != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldBookingDate,
			Operator: gDto.FilterOperatorEq,
			Value:    date,
			Table:    model.TableName,
		})
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Description Retrieve a booking by its unique identifier.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking retrieved successfully")

	response.WithJSON(w, http.StatusOK, booking)
}

// UpdateBookingStatus moves a booking to a new status.
// @Summary Update booking status
// @Description Move a booking along the status lifecycle. Illegal transitions are rejected.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateBookingStatusRequest true "Update Booking Status Request"
// @Success 200 {object} response.Data[dto.BookingResponse] "Updated booking"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBookingStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateBookingStatusRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.UpdateStatus(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking status")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking status updated successfully by user " + user)

	response.WithJSON(w, http.StatusOK, booking)
}

// DeleteBooking deletes a booking by its ID.
// @Summary Delete a booking by ID
// @Description Delete a booking using its unique identifier.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Booking deleted successfully")
}
