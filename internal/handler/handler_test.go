package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/Lovely-Solutions-LLC/AppEvents/internal/domain"
	"github.com/Lovely-Solutions-LLC/AppEvents/internal/dto"
	"github.com/Lovely-Solutions-LLC/AppEvents/internal/service"
)

// MockDeliveryRepository is a mock implementation of repository.DeliveryRepository
type MockDeliveryRepository struct {
	mock.Mock
}

func (m *MockDeliveryRepository) InitSchema(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryRepository) RecordDelivery(ctx context.Context, record *domain.DeliveryRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockLifecycleService is a mock implementation of service.LifecycleServicer
type MockLifecycleService struct {
	mock.Mock
}

func (m *MockLifecycleService) HandleEvent(ctx context.Context, req *dto.WebhookRequest) (*service.Result, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Result), args.Error(1)
}

func postWebhook(h *Handler, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHandler_HealthCheck(t *testing.T) {
	mockService := new(MockLifecycleService)
	log := zap.NewNop()

	handler := NewHandler(mockService, nil, log)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "ok", response["status"])
}

func TestHandler_HealthCheck_AuditStoreHealthy(t *testing.T) {
	mockService := new(MockLifecycleService)
	deliveries := new(MockDeliveryRepository)
	log := zap.NewNop()

	deliveries.On("Ping", mock.Anything).Return(nil).Once()

	handler := NewHandler(mockService, deliveries, log)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	deliveries.AssertExpectations(t)
}

func TestHandler_HealthCheck_AuditStoreDown(t *testing.T) {
	mockService := new(MockLifecycleService)
	deliveries := new(MockDeliveryRepository)
	log := zap.NewNop()

	deliveries.On("Ping", mock.Anything).Return(errors.New("connection refused")).Once()

	handler := NewHandler(mockService, deliveries, log)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "degraded", response["status"])
	deliveries.AssertExpectations(t)
}

func TestHandler_Webhook_Install(t *testing.T) {
	mockService := new(MockLifecycleService)
	log := zap.NewNop()

	handler := NewHandler(mockService, nil, log)

	mockService.On("HandleEvent", mock.Anything, mock.MatchedBy(func(req *dto.WebhookRequest) bool {
		return req.Type == "install" && req.Data != nil
	})).Return(&service.Result{Outcome: domain.OutcomeCreated, ItemID: "123"}, nil).Once()

	body := []byte(`{
		"type": "install",
		"data": {
			"app_id": "10142077",
			"account_id": "555",
			"user_name": "Jane Doe",
			"account_tier": "pro",
			"timestamp": "2024-01-01T00:00:00Z"
		}
	}`)
	w := postWebhook(handler, body)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.WebhookResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, domain.OutcomeCreated, response.Status)
	assert.Equal(t, "Webhook processed successfully.", response.Message)
	mockService.AssertExpectations(t)
}

func TestHandler_Webhook_MalformedJSON(t *testing.T) {
	mockService := new(MockLifecycleService)
	log := zap.NewNop()

	handler := NewHandler(mockService, nil, log)

	w := postWebhook(handler, []byte(`{"type": "install", invalid}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "validation_error", response.Error)
	mockService.AssertNotCalled(t, "HandleEvent")
}

func TestHandler_Webhook_MissingData(t *testing.T) {
	mockService := new(MockLifecycleService)
	log := zap.NewNop()

	handler := NewHandler(mockService, nil, log)

	w := postWebhook(handler, []byte(`{"type": "install"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "HandleEvent")
}

func TestHandler_Webhook_MissingAppID(t *testing.T) {
	mockService := new(MockLifecycleService)
	log := zap.NewNop()

	handler := NewHandler(mockService, nil, log)

	w := postWebhook(handler, []byte(`{"type": "install", "data": {"account_id": "555"}}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "HandleEvent")
}

func TestHandler_Webhook_UnmappedApp(t *testing.T) {
	mockService := new(MockLifecycleService)
	log := zap.NewNop()

	handler := NewHandler(mockService, nil, log)

	mockService.On("HandleEvent", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("resolving board for app 99999999: %w", domain.ErrBoardNotMapped)).Once()

	w := postWebhook(handler, []byte(`{"type": "install", "data": {"app_id": "99999999"}}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "mapping_error", response.Error)
	mockService.AssertExpectations(t)
}

func TestHandler_Webhook_ServiceError(t *testing.T) {
	mockService := new(MockLifecycleService)
	log := zap.NewNop()

	handler := NewHandler(mockService, nil, log)

	mockService.On("HandleEvent", mock.Anything, mock.Anything).
		Return(nil, errors.New("create_item failed")).Once()

	w := postWebhook(handler, []byte(`{"type": "install", "data": {"app_id": "10142077"}}`))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "internal_error", response.Error)
	mockService.AssertExpectations(t)
}

func TestHandler_Webhook_IgnoredEventKind(t *testing.T) {
	mockService := new(MockLifecycleService)
	log := zap.NewNop()

	handler := NewHandler(mockService, nil, log)

	mockService.On("HandleEvent", mock.Anything, mock.Anything).
		Return(&service.Result{Outcome: domain.OutcomeIgnored}, nil).Once()

	w := postWebhook(handler, []byte(`{"type": "app_trial_subscription_started", "data": {"app_id": "10142077"}}`))

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.WebhookResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Event type ignored.", response.Message)
}

func TestHandler_Webhook_Preflight(t *testing.T) {
	mockService := new(MockLifecycleService)
	log := zap.NewNop()

	handler := NewHandler(mockService, nil, log)

	req := httptest.NewRequest(http.MethodOptions, "/webhook", nil)
	req.Header.Set("Origin", "https://example.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Body.String())
	mockService.AssertNotCalled(t, "HandleEvent")
}
