package availability

import (
	"net/http"
	"shine/infras/otel"
	"shine/internal/domains/availability/model/dto"
	"shine/internal/domains/availability/service"
	"shine/shared/constant"
	"shine/shared/validator"
	"shine/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/availability", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetAvailability)
		routerGroup.Post("/", handler.UpsertAvailability)
	})
}

// GetAvailability retrieves the availability record.
// @Summary Get the availability record
// @Description Retrieve business hours, holidays and default capacity. Returns null when never configured.
// @Tags Availability
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Availability record"
// @Failure 500 {object} response.Error
// @Router /v1/availability [get]
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	availability, err := handler.service.Get(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get availability")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Availability retrieved successfully")

	response.WithJSON(w, http.StatusOK, availability)
}

// UpsertAvailability creates or merges the availability record.
// @Summary Upsert the availability record
// @Description Create the availability record or merge the supplied fields into it.
// @Tags Availability
// @Accept json
// @Produce json
// @Param request body dto.UpsertAvailabilityRequest true "Upsert Availability Request"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Availability record"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability [post]
// @Security BearerAuth
func (handler *Handler) UpsertAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpsertAvailability")
	defer scope.End()

	req := dto.UpsertAvailabilityRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	availability, err := handler.service.Upsert(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upsert availability")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Availability upserted successfully by user " + user)

	response.WithJSON(w, http.StatusOK, availability)
}
