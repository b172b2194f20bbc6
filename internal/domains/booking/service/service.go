package service

import (
	"context"
	"fmt"
	"time"

	"shine/config"
	"shine/infras/kafka"
	"shine/infras/otel"
	"shine/internal/domains/booking/model"
	"shine/internal/domains/booking/model/dto"
	"shine/internal/domains/booking/repository"
	catalogModel "shine/internal/domains/catalog/model"
	catalogRepository "shine/internal/domains/catalog/repository"
	customerService "shine/internal/domains/customer/service"
	"shine/shared"
	"shine/shared/cache"
	"shine/shared/constant"
	gDto "shine/shared/dto"
	"shine/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

const (
	msgServiceNotFound = "service not found"
	msgBookingNotFound = "booking not found"
	msgSlotUnavailable = "selected slot is no longer available"
)

const (
	eventBookingCreated       = "booking.created"
	eventBookingStatusChanged = "booking.status_changed"
	eventBookingDeleted       = "booking.deleted"
)

type bookingEvent struct {
	Event     string `json:"event"`
	BookingID string `json:"booking_id"`
	ServiceID string `json:"service_id,omitempty"`
	Status    string `json:"status,omitempty"`
}

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Slots(ctx context.Context, serviceID, date string) ([]dto.SlotResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id string) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.Booking
	catalogRepo catalogRepository.Catalog
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	kafka       kafka.Client
}

func New(repo repository.Booking, catalogRepo catalogRepository.Catalog, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, kafka kafka.Client) Booking {
	return &serviceImpl{
		repo:        repo,
		catalogRepo: catalogRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		kafka:       kafka,
	}
}

// Create books a slot for a service. The customer is resolved by phone, the
// slot conflict is decided by the unique constraint, and the response comes
// back expanded with the service and customer.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		user = constant.ContextGuest
	}

	service, err := s.catalogRepo.Get(ctx, shared.FilterByID(req.ServiceID, catalogModel.FieldID, catalogModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service")

		return res, fmt.Errorf("failed to get service: %w", err)
	}

	if service.ID == constant.Empty {
		return res, failure.NotFound(msgServiceNotFound) // nolint:wrapcheck
	}

	booking, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking date")

		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	exist, err := s.repo.Exist(ctx, slotFilter(req.ServiceID, req.Date, req.Time))
	if err != nil {
		log.Error().Err(err).Msg("failed to check slot")

		return res, fmt.Errorf("failed to check slot: %w", err)
	}

	if exist {
		return res, failure.Conflict(msgSlotUnavailable) // nolint:wrapcheck
	}

	created, err := s.repo.CreateWithCustomer(ctx, booking, req.ToCustomerModel(user))
	if err != nil {
		// A concurrent request can win the slot between the Exist check and
		// the insert; the constraint is the authority.
		if shared.IsUniqueViolation(err, model.ConstraintServiceSlot) {
			return res, failure.Conflict(msgSlotUnavailable) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	expanded, err := s.repo.Get(ctx, shared.FilterByID(created.ID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get created booking")

		return res, fmt.Errorf("failed to get created booking: %w", err)
	}

	res.FromModel(expanded)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)

		// The booking lands in the customer's history, and a first-time
		// customer changes the directory listing too.
		s.invalidateCustomer(c, created.CustomerID)
		shared.InvalidateCaches(c, s.cache, customerService.CacheGetAllCustomer)
		shared.InvalidateCaches(c, s.cache, customerService.CacheCountCustomer)
	}()

	s.publishEvent(ctx, bookingEvent{
		Event:     eventBookingCreated,
		BookingID: created.ID,
		ServiceID: created.ServiceID,
		Status:    created.Status,
	})

	return res, nil
}

// Slots lists the start times for a service on a date, marking taken ones.
func (s *serviceImpl) Slots(ctx context.Context, serviceID, date string) (res []dto.SlotResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Slots")
	defer scope.End()
	defer scope.TraceIfError(err)

	if serviceID == constant.Empty || date == constant.Empty {
		return res, failure.BadRequestFromString("service_id and date are required") // nolint:wrapcheck
	}

	if _, err = time.Parse(constant.BookingDateFormat, date); err != nil {
		return res, failure.BadRequestFromString("date must use the format 2006-01-02") // nolint:wrapcheck
	}

	service, err := s.catalogRepo.Get(ctx, shared.FilterByID(serviceID, catalogModel.FieldID, catalogModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service")

		return res, fmt.Errorf("failed to get service: %w", err)
	}

	if service.ID == constant.Empty {
		return res, failure.NotFound(msgServiceNotFound) // nolint:wrapcheck
	}

	bookings, err := s.repo.GetAll(ctx, gDto.QueryParams{}, dayFilter(serviceID, date), model.FieldSlotTime)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	booked := make(map[string]bool, len(bookings))
	for _, booking := range bookings {
		booked[booking.SlotTime] = true
	}

	times := BuildSlotTimes(service.DurationMin)
	res = make([]dto.SlotResponse, len(times))

	for i, t := range times {
		res[i] = dto.SlotResponse{Time: t, Available: !booked[t]}
	}

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound(msgBookingNotFound) // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// UpdateStatus moves a booking along the transition table. Completed and
// cancelled bookings never change again.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound(msgBookingNotFound) // nolint:wrapcheck
	}

	if !model.CanTransition(booking.Status, req.Status) {
		return res, failure.Conflict(fmt.Sprintf("booking status cannot change from %s to %s", booking.Status, req.Status)) // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return res, fmt.Errorf("failed to update booking status: %w", err)
	}

	booking.Status = req.Status
	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)

		s.invalidateCustomer(c, booking.CustomerID)
	}()

	s.publishEvent(ctx, bookingEvent{
		Event:     eventBookingStatusChanged,
		BookingID: id,
		ServiceID: booking.ServiceID,
		Status:    req.Status,
	})

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound(msgBookingNotFound) // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)

		s.invalidateCustomer(c, booking.CustomerID)
	}()

	s.publishEvent(ctx, bookingEvent{
		Event:     eventBookingDeleted,
		BookingID: id,
	})

	return nil
}

// invalidateCustomer drops the cached history of the customer a booking
// mutation touched.
func (s *serviceImpl) invalidateCustomer(ctx context.Context, customerID string) {
	if customerID == constant.Empty {
		return
	}

	if err := s.cache.Delete(ctx, shared.BuildCacheKey(customerService.CacheGetCustomer, customerID)); err != nil {
		log.Error().Err(err).Msg("failed to delete customer history from cache")
	}
}

func (s *serviceImpl) publishEvent(ctx context.Context, event bookingEvent) {
	topic := s.cfg.Kafka.Topic.BookingEvents
	if topic == constant.Empty {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.kafka.SendMessages(c, topic, kafka.Message{Key: event.BookingID, Value: event}); err != nil {
			log.Error().Err(err).Str("event", event.Event).Msg("failed to publish booking event")
		}
	}()
}

func slotFilter(serviceID, date, slotTime string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldServiceID, Value: serviceID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldBookingDate, Value: date, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldSlotTime, Value: slotTime, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}
}

func dayFilter(serviceID, date string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldServiceID, Value: serviceID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldBookingDate, Value: date, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}
}
