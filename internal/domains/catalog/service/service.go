package service

import (
	"context"
	"fmt"
	"strings"

	"shine/config"
	"shine/infras/otel"
	"shine/infras/s3"
	"shine/internal/domains/catalog/model"
	"shine/internal/domains/catalog/model/dto"
	"shine/internal/domains/catalog/repository"
	"shine/shared"
	"shine/shared/cache"
	"shine/shared/constant"
	gDto "shine/shared/dto"
	"shine/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetService    = "service:get"
	cacheGetAllService = "service:gets"
	cacheCountService  = "service:count"
)

// defaultCatalog is the fixed catalog installed by Seed.
var defaultCatalog = []dto.CreateServiceRequest{
	{Title: "Express Wash", Description: "Exterior hand wash and dry", Price: 35, DurationMin: 45},
	{Title: "Interior Detail", Description: "Vacuum, upholstery shampoo and trim care", Price: 120, DurationMin: 90},
	{Title: "Full Detail", Description: "Complete interior and exterior detail", Price: 250, DurationMin: 180},
	{Title: "Paint Correction", Description: "Machine polish to remove swirls and light scratches", Price: 400, DurationMin: 240},
	{Title: "Express Wax", Description: "Spray wax and tyre shine", Price: 75, DurationMin: 60},
}

type Catalog interface {
	Create(ctx context.Context, req dto.CreateServiceRequest) error
	Seed(ctx context.Context) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetServicesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ServiceResponse, error)
	Update(ctx context.Context, req dto.UpdateServiceRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Catalog
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Catalog, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Catalog {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateServiceRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	imageURL := constant.Empty
	var uploadedObjectName string
	if req.Image != nil {
		bucketName := s.cfg.External.S3.BucketName
		filename := uuid.NewString()

		parts := strings.Split(req.Image.Filename, ".")
		if len(parts) > 1 {
			filename = fmt.Sprintf("%s.%s", filename, parts[len(parts)-1])
		}

		url, err := s.s3.UploadFile(ctx, bucketName, model.EntityName, req.ImageFile, req.Image, filename)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload service image")

			return fmt.Errorf("failed to upload image: %w", err)
		}
		imageURL = url
		uploadedObjectName = filename
	}

	if err = s.repo.Insert(ctx, req.ToModel(user, imageURL)); err != nil {
		if uploadedObjectName != constant.Empty {
			bucketName := s.cfg.External.S3.BucketName
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, uploadedObjectName)
		}

		log.Error().Err(err).Msg("failed to create service")

		return fmt.Errorf("failed to create service: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllService)
		shared.InvalidateCaches(c, s.cache, cacheCountService)
	}()

	return nil
}

// Seed installs the default catalog. Repeated calls insert fresh copies;
// idempotency is intentionally not guaranteed.
func (s *serviceImpl) Seed(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Seed")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	services := make([]model.Service, len(defaultCatalog))
	for i, req := range defaultCatalog {
		services[i] = req.ToModel(user, constant.Empty)
	}

	if err = s.repo.InsertBulk(ctx, services); err != nil {
		log.Error().Err(err).Msg("failed to seed default catalog")

		return fmt.Errorf("failed to seed default catalog: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllService)
		shared.InvalidateCaches(c, s.cache, cacheCountService)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetServicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllService, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for services")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count services")

		return res, fmt.Errorf("failed to count services: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get services")

		return res, fmt.Errorf("failed to get services: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save services to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountService, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for service count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count services")

		return res, fmt.Errorf("failed to count services: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save service count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetService, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for service")

		return res, nil
	}

	service, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service")

		return res, fmt.Errorf("failed to get service: %w", err)
	}

	if service.ID == constant.Empty {
		return res, failure.NotFound("service not found") // nolint:wrapcheck
	}

	res.FromModel(service)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save service to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateServiceRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	service, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get service")

		return fmt.Errorf("failed to get service: %w", err)
	}

	if service.ID == constant.Empty {
		return failure.NotFound("service not found") // nolint:wrapcheck
	}

	imageURL := constant.Empty
	var uploadedObjectName string
	if req.Image != nil {
		bucketName := s.cfg.External.S3.BucketName
		filename := uuid.NewString()

		parts := strings.Split(req.Image.Filename, ".")
		if len(parts) > 1 {
			filename = fmt.Sprintf("%s.%s", filename, parts[len(parts)-1])
		}

		url, err := s.s3.UploadFile(ctx, bucketName, model.EntityName, req.ImageFile, req.Image, filename)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload service image")

			return fmt.Errorf("failed to upload image: %w", err)
		}
		imageURL = url
		uploadedObjectName = filename
	}

	updatedFields := shared.TransformFields(req, user)
	if imageURL != constant.Empty {
		updatedFields[model.FieldImage] = imageURL
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		if uploadedObjectName != constant.Empty {
			bucketName := s.cfg.External.S3.BucketName
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, uploadedObjectName)
		}

		log.Error().Err(err).Msg("failed to update service")

		return fmt.Errorf("failed to update service: %w", err)
	}

	if imageURL != constant.Empty && service.Image != constant.Empty {
		bucketName := s.cfg.External.S3.BucketName
		objectName := s.s3.GetObjectNameFromURL(bucketName, service.Image)

		if objectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, objectName)
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetService, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete service from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllService)
		shared.InvalidateCaches(c, s.cache, cacheCountService)
	}()

	return nil
}

// Delete removes a catalog entry. Bookings that reference it are kept and
// expand to a null service afterwards.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	service, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get service")

		return fmt.Errorf("failed to get service: %w", err)
	}

	if service.ID == constant.Empty {
		return failure.NotFound("service not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete service")

		return fmt.Errorf("failed to delete service: %w", err)
	}

	if service.Image != constant.Empty {
		bucketName := s.cfg.External.S3.BucketName
		objectName := s.s3.GetObjectNameFromURL(bucketName, service.Image)

		if objectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, objectName)
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetService, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete service from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllService)
		shared.InvalidateCaches(c, s.cache, cacheCountService)
	}()

	return nil
}
