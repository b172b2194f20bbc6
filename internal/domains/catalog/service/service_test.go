package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"shine/config"
	"shine/infras/otel/mocks"
	s3Mocks "shine/infras/s3/mocks"
	catalogMocks "shine/internal/domains/catalog/mocks"
	"shine/internal/domains/catalog/model"
	"shine/internal/domains/catalog/model/dto"
	"shine/internal/domains/catalog/service"
	cacheMocks "shine/shared/cache/mocks"
	"shine/shared/constant"
	gDto "shine/shared/dto"
	"shine/shared/failure"
	gModel "shine/shared/model"
	"shine/shared/timezone"
)

func validService() model.Service {
	return model.Service{
		ID:          "service-id-123",
		Title:       "Full Detail",
		Description: "Complete interior and exterior detail",
		Price:       250,
		DurationMin: 180,
		Active:      true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "test-user",
			ModifiedBy: "test-user",
		},
	}
}

func TestCatalogService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := catalogMocks.NewMockCatalog(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	svc := service.New(mockRepo, cfg, mockCache, mockOtel, mockS3)

	tests := []struct {
		name      string
		req       dto.CreateServiceRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful creation",
			req: dto.CreateServiceRequest{
				Title:       "Express Wash",
				Description: "Exterior hand wash and dry",
				Price:       35,
				DurationMin: 45,
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "repository error",
			req: dto.CreateServiceRequest{
				Title:       "Express Wash",
				DurationMin: 45,
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCatalogService_Seed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := catalogMocks.NewMockCatalog(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	svc := service.New(mockRepo, cfg, mockCache, mockOtel, mockS3)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful seed installs five services",
			setupMock: func() {
				mockRepo.EXPECT().
					InsertBulk(gomock.Any(), gomock.Len(5)).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "repository error",
			setupMock: func() {
				mockRepo.EXPECT().
					InsertBulk(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Seed(ctx)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCatalogService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := catalogMocks.NewMockCatalog(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel, mockS3)

	tests := []struct {
		name       string
		params     gDto.QueryParams
		filter     gDto.FilterGroup
		setupMock  func()
		wantErr    bool
		wantResult dto.GetServicesResponse
	}{
		{
			name: "successful get all",
			params: gDto.QueryParams{
				Limit: 10,
				Page:  1,
			},
			filter: gDto.FilterGroup{},
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Service{validService()}, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			wantResult: dto.GetServicesResponse{
				TotalData: 1,
				TotalPage: 1,
			},
		},
		{
			name: "count error",
			params: gDto.QueryParams{
				Limit: 10,
				Page:  1,
			},
			filter: gDto.FilterGroup{},
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, errors.New("count error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.Background()
			result, err := svc.GetAll(ctx, tt.params, tt.filter)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantResult.TotalData, result.TotalData)
				assert.Equal(t, tt.wantResult.TotalPage, result.TotalPage)
			}
		})
	}
}

func TestCatalogService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := catalogMocks.NewMockCatalog(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel, mockS3)

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
		wantCode  int
		wantID    string
	}{
		{
			name: "cache hit",
			id:   "service-id-123",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
			wantID:  "",
		},
		{
			name: "cache miss, successful get from db",
			id:   "service-id-123",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validService(), nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			wantID:  "service-id-123",
		},
		{
			name: "service not found",
			id:   "nonexistent-id",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Service{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.Background()
			result, err := svc.Get(ctx, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, result.ID)
			}
		})
	}
}

func TestCatalogService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := catalogMocks.NewMockCatalog(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	svc := service.New(mockRepo, cfg, mockCache, mockOtel, mockS3)

	newTitle := "Premium Detail"

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful update",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validService(), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "service not found",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Service{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "update error",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validService(), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Update(ctx, dto.UpdateServiceRequest{Title: newTitle}, "service-id-123")

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCatalogService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := catalogMocks.NewMockCatalog(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "test-bucket"

	mockCache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	svc := service.New(mockRepo, cfg, mockCache, mockOtel, mockS3)

	serviceWithImage := validService()
	serviceWithImage.Image = "https://cdn.example.com/test-bucket/service/image.png"

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful deletion",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validService(), nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "deletion removes the stored image",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(serviceWithImage, nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				mockS3.EXPECT().
					GetObjectNameFromURL("test-bucket", serviceWithImage.Image).
					Return("image.png")

				mockS3.EXPECT().
					DeleteFile(gomock.Any(), "test-bucket", model.EntityName, "image.png").
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "service not found",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Service{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.Background()
			err := svc.Delete(ctx, "service-id-123")

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
