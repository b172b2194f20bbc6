package service_test

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"shine/config"
	kafkaMocks "shine/infras/kafka/mocks"
	"shine/infras/otel/mocks"
	bookingMocks "shine/internal/domains/booking/mocks"
	catalogMocks "shine/internal/domains/catalog/mocks"
	"shine/internal/domains/booking/model"
	"shine/internal/domains/booking/model/dto"
	"shine/internal/domains/booking/service"
	catalogModel "shine/internal/domains/catalog/model"
	cacheMocks "shine/shared/cache/mocks"
	"shine/shared/constant"
	gDto "shine/shared/dto"
	"shine/shared/failure"
	gModel "shine/shared/model"
	"shine/shared/timezone"
)

func validService() catalogModel.Service {
	return catalogModel.Service{
		ID:          "service-id-123",
		Title:       "Full Wash",
		Price:       150000,
		DurationMin: 60,
		Active:      true,
	}
}

func validBooking() model.Booking {
	return model.Booking{
		ID:          "booking-id-123",
		ServiceID:   "service-id-123",
		CustomerID:  "customer-id-123",
		BookingDate: timezone.Now(),
		SlotTime:    "09:00",
		Status:      constant.BookingStatusPending,
		ServiceTitle: sql.NullString{
			String: "Full Wash",
			Valid:  true,
		},
		ServicePrice: sql.NullInt64{
			Int64: 150000,
			Valid: true,
		},
		ServiceDurationMin: sql.NullInt64{
			Int64: 60,
			Valid: true,
		},
		CustomerName: sql.NullString{
			String: "Jane Smith",
			Valid:  true,
		},
		CustomerPhone: sql.NullString{
			String: "081234567890",
			Valid:  true,
		},
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "test-user",
			ModifiedBy: "test-user",
		},
	}
}

func TestBookingService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockCatalogRepo := catalogMocks.NewMockCatalog(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Topic.BookingEvents = "booking-events"

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	// A new booking drops the cached history of its customer.
	mockCache.EXPECT().
		Delete(gomock.Any(), "customer:get:customer-id-123").
		Return(nil).
		AnyTimes()

	mockKafka.EXPECT().
		SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	svc := service.New(mockRepo, mockCatalogRepo, cfg, mockCache, mockOtel, mockKafka)

	validReq := dto.CreateBookingRequest{
		ServiceID: "service-id-123",
		Date:      "2024-06-01",
		Time:      "09:00",
		Customer: dto.BookingCustomerRequest{
			Name:  "Jane Smith",
			Phone: "081234567890",
		},
	}

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			req:  validReq,
			setupMock: func() {
				mockCatalogRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validService(), nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					CreateWithCustomer(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(validBooking(), nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validBooking(), nil)
			},
			wantErr: false,
		},
		{
			name: "service not found",
			req:  validReq,
			setupMock: func() {
				mockCatalogRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(catalogModel.Service{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "slot already taken",
			req:  validReq,
			setupMock: func() {
				mockCatalogRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validService(), nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "slot lost to concurrent insert",
			req:  validReq,
			setupMock: func() {
				mockCatalogRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validService(), nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					CreateWithCustomer(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Booking{}, &pq.Error{
						Code:       "23505",
						Constraint: model.ConstraintServiceSlot,
					})
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "repository error",
			req:  validReq,
			setupMock: func() {
				mockCatalogRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validService(), nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					CreateWithCustomer(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Booking{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			result, err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "booking-id-123", result.ID)
				assert.Equal(t, constant.BookingStatusPending, result.Status)
				assert.NotNil(t, result.Service)
				assert.NotNil(t, result.Customer)
			}
		})
	}
}

func TestBookingService_Slots(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockCatalogRepo := catalogMocks.NewMockCatalog(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockCatalogRepo, cfg, mockCache, mockOtel, mockKafka)

	tests := []struct {
		name      string
		serviceID string
		date      string
		setupMock func()
		wantErr   bool
		wantCode  int
		check     func(t *testing.T, slots []dto.SlotResponse)
	}{
		{
			name:      "booked slot marked unavailable",
			serviceID: "service-id-123",
			date:      "2024-06-01",
			setupMock: func() {
				mockCatalogRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validService(), nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{{SlotTime: "09:00"}}, nil)
			},
			wantErr: false,
			check: func(t *testing.T, slots []dto.SlotResponse) {
				assert.Len(t, slots, 9)
				assert.Equal(t, "08:00", slots[0].Time)
				assert.True(t, slots[0].Available)
				assert.Equal(t, "09:00", slots[1].Time)
				assert.False(t, slots[1].Available)
				assert.Equal(t, "16:00", slots[8].Time)
			},
		},
		{
			name:      "missing params",
			serviceID: "",
			date:      "",
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "malformed date",
			serviceID: "service-id-123",
			date:      "01-06-2024",
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "service not found",
			serviceID: "nonexistent-id",
			date:      "2024-06-01",
			setupMock: func() {
				mockCatalogRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(catalogModel.Service{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name:      "repository error",
			serviceID: "service-id-123",
			date:      "2024-06-01",
			setupMock: func() {
				mockCatalogRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validService(), nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.Background()
			slots, err := svc.Slots(ctx, tt.serviceID, tt.date)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				tt.check(t, slots)
			}
		})
	}
}

func TestBookingService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockCatalogRepo := catalogMocks.NewMockCatalog(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockCatalogRepo, cfg, mockCache, mockOtel, mockKafka)

	tests := []struct {
		name       string
		params     gDto.QueryParams
		filter     gDto.FilterGroup
		setupMock  func()
		wantErr    bool
		wantResult dto.GetBookingsResponse
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
					Return([]model.Booking{validBooking()}, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			wantResult: dto.GetBookingsResponse{
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
		{
			name: "get all error",
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
					Return(nil, errors.New("get all error"))

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
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

func TestBookingService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockCatalogRepo := catalogMocks.NewMockCatalog(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockCatalogRepo, cfg, mockCache, mockOtel, mockKafka)

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
		wantID    string
	}{
		{
			name: "cache hit",
			id:   "booking-id-123",
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
			id:   "booking-id-123",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validBooking(), nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			wantID:  "booking-id-123",
		},
		{
			name: "booking not found",
			id:   "nonexistent-id",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr: true,
		},
		{
			name: "repository error",
			id:   "booking-id-123",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.Background()
			result, err := svc.Get(ctx, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, result.ID)
			}
		})
	}
}

func TestBookingService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockCatalogRepo := catalogMocks.NewMockCatalog(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Topic.BookingEvents = "booking-events"

	mockCache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockKafka.EXPECT().
		SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	svc := service.New(mockRepo, mockCatalogRepo, cfg, mockCache, mockOtel, mockKafka)

	bookingWithStatus := func(status string) model.Booking {
		booking := validBooking()
		booking.Status = status

		return booking
	}

	tests := []struct {
		name       string
		status     string
		setupMock  func()
		wantErr    bool
		wantCode   int
		wantStatus string
	}{
		{
			name:   "pending to confirmed",
			status: constant.BookingStatusConfirmed,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingWithStatus(constant.BookingStatusPending), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr:    false,
			wantStatus: constant.BookingStatusConfirmed,
		},
		{
			name:   "confirmed to completed",
			status: constant.BookingStatusCompleted,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingWithStatus(constant.BookingStatusConfirmed), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr:    false,
			wantStatus: constant.BookingStatusCompleted,
		},
		{
			name:   "pending cannot skip to completed",
			status: constant.BookingStatusCompleted,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingWithStatus(constant.BookingStatusPending), nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name:   "cancelled is terminal",
			status: constant.BookingStatusPending,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingWithStatus(constant.BookingStatusCancelled), nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name:   "booking not found",
			status: constant.BookingStatusConfirmed,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name:   "update error",
			status: constant.BookingStatusConfirmed,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingWithStatus(constant.BookingStatusPending), nil)

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
			result, err := svc.UpdateStatus(ctx, dto.UpdateBookingStatusRequest{Status: tt.status}, "booking-id-123")

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantStatus, result.Status)
			}
		})
	}
}

func TestBookingService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockCatalogRepo := catalogMocks.NewMockCatalog(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Topic.BookingEvents = "booking-events"

	mockCache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockKafka.EXPECT().
		SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	svc := service.New(mockRepo, mockCatalogRepo, cfg, mockCache, mockOtel, mockKafka)

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful deletion",
			id:   "booking-id-123",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validBooking(), nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "booking not found",
			id:   "nonexistent-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "delete error",
			id:   "booking-id-123",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validBooking(), nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.Background()
			err := svc.Delete(ctx, tt.id)

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
