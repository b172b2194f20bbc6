package service

import (
	"context"
	"fmt"

	"shine/config"
	"shine/infras/otel"
	"shine/internal/domains/availability/model"
	"shine/internal/domains/availability/model/dto"
	"shine/internal/domains/availability/repository"
	"shine/shared"
	"shine/shared/cache"
	"shine/shared/constant"
	gDto "shine/shared/dto"
	"shine/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAvailability = "availability:get"
)

type Availability interface {
	Get(ctx context.Context) (*dto.AvailabilityResponse, error)
	Upsert(ctx context.Context, req dto.UpsertAvailabilityRequest) (dto.AvailabilityResponse, error)
}

type serviceImpl struct {
	repo  repository.Availability
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Availability, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Availability {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// Get returns the availability record, or nil when it was never configured.
func (s *serviceImpl) Get(ctx context.Context) (res *dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cached := dto.AvailabilityResponse{}

	err = s.cache.Get(ctx, cacheGetAvailability, &cached)
	if err == nil {
		log.Info().Str("cacheKey", cacheGetAvailability).Msg("cache hit for availability")

		return &cached, nil
	}

	availability, err := s.repo.Get(ctx, shared.FilterByID(constant.AvailabilitySingletonID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get availability")

		return nil, fmt.Errorf("failed to get availability: %w", err)
	}

	if availability.ID == constant.Empty {
		return nil, nil
	}

	res = &dto.AvailabilityResponse{}
	res.FromModel(availability)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheGetAvailability, *res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save availability to cache")
		}
	}()

	return res, nil
}

// Upsert creates the record under its fixed key, or merges the supplied
// fields into the existing one.
func (s *serviceImpl) Upsert(ctx context.Context, req dto.UpsertAvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upsert")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(constant.AvailabilitySingletonID, model.FieldID, model.TableName)

	existing, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get availability")

		return res, fmt.Errorf("failed to get availability: %w", err)
	}

	if existing.ID == constant.Empty {
		record := req.ToModel(user)

		err = s.repo.Insert(ctx, record)

		switch {
		case err == nil:
			res.FromModel(record)
		case shared.IsUniqueViolation(err, model.ConstraintSingleton):
			// A concurrent first upsert created the row between the read and
			// the insert; merge into the winner's record instead.
			existing, err = s.repo.Get(ctx, filter)
			if err != nil {
				log.Error().Err(err).Msg("failed to get availability")

				return res, fmt.Errorf("failed to get availability: %w", err)
			}

			if res, err = s.merge(ctx, req, existing, filter, user); err != nil {
				return res, err
			}
		default:
			log.Error().Err(err).Msg("failed to create availability")

			return res, fmt.Errorf("failed to create availability: %w", err)
		}
	} else {
		if res, err = s.merge(ctx, req, existing, filter, user); err != nil {
			return res, err
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, cacheGetAvailability); err != nil {
			log.Error().Err(err).Msg("failed to delete availability from cache")
		}
	}()

	return res, nil
}

// merge applies the supplied fields to the existing record. Hour and holiday
// arrays are replaced wholesale, never merged element-wise.
func (s *serviceImpl) merge(ctx context.Context, req dto.UpsertAvailabilityRequest, existing model.Availability, filter gDto.FilterGroup, user string) (res dto.AvailabilityResponse, err error) {
	updatedFields := map[string]any{
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if req.BusinessHours != nil {
		hours := make(model.BusinessHours, len(req.BusinessHours))
		for i, h := range req.BusinessHours {
			hours[i] = model.BusinessHour{Day: h.Day, Start: h.Start, End: h.End}
		}

		existing.BusinessHours = hours
		updatedFields[model.FieldBusinessHours] = hours
	}

	if req.Holidays != nil {
		existing.Holidays = model.Holidays(req.Holidays)
		updatedFields[model.FieldHolidays] = model.Holidays(req.Holidays)
	}

	if req.DefaultCapacity != nil {
		existing.DefaultCapacity = *req.DefaultCapacity
		updatedFields[model.FieldDefaultCapacity] = *req.DefaultCapacity
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update availability")

		return res, fmt.Errorf("failed to update availability: %w", err)
	}

	res.FromModel(existing)

	return res, nil
}
