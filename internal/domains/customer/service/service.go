package service

import (
	"context"
	"fmt"

	"shine/config"
	"shine/infras/otel"
	bookingModel "shine/internal/domains/booking/model"
	bookingDto "shine/internal/domains/booking/model/dto"
	bookingRepository "shine/internal/domains/booking/repository"
	"shine/internal/domains/customer/model"
	"shine/internal/domains/customer/model/dto"
	"shine/internal/domains/customer/repository"
	"shine/shared"
	"shine/shared/cache"
	"shine/shared/constant"
	gDto "shine/shared/dto"
	"shine/shared/failure"

	"github.com/rs/zerolog/log"
)

// Cache key prefixes, exported so booking mutations can invalidate the
// customer history they touch.
const (
	CacheGetCustomer    = "customer:get"
	CacheGetAllCustomer = "customer:gets"
	CacheCountCustomer  = "customer:count"
)

type Customer interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCustomersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	GetWithHistory(ctx context.Context, id string) (dto.CustomerHistoryResponse, error)
}

type serviceImpl struct {
	repo        repository.Customer
	bookingRepo bookingRepository.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Customer, bookingRepo bookingRepository.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Customer {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCustomersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(CacheGetAllCustomer, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for customers")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count customers")

		return res, fmt.Errorf("failed to count customers: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get customers")

		return res, fmt.Errorf("failed to get customers: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save customers to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(CacheCountCustomer, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for customer count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count customers")

		return res, fmt.Errorf("failed to count customers: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save customer count to cache")
		}
	}()

	return res, nil
}

// GetWithHistory returns a customer with their bookings, newest date first.
func (s *serviceImpl) GetWithHistory(ctx context.Context, id string) (res dto.CustomerHistoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetWithHistory")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(CacheGetCustomer, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for customer history")

		return res, nil
	}

	customer, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer")

		return res, fmt.Errorf("failed to get customer: %w", err)
	}

	if customer.ID == constant.Empty {
		return res, failure.NotFound("customer not found") // nolint:wrapcheck
	}

	params := gDto.QueryParams{
		SortBy:  bookingModel.FieldBookingDate,
		SortDir: gDto.SortDirDesc,
	}

	bookings, err := s.bookingRepo.GetAll(ctx, params, customerFilter(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer bookings")

		return res, fmt.Errorf("failed to get customer bookings: %w", err)
	}

	res.Customer.FromModel(customer)

	res.History = make([]bookingDto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		res.History[i].FromModel(booking)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save customer history to cache")
		}
	}()

	return res, nil
}

func customerFilter(id string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldCustomerID,
				Value:    id,
				Operator: gDto.FilterOperatorEq,
				Table:    bookingModel.TableName,
			},
		},
	}
}
