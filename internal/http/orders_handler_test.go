package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Kanikabudhiraja/GreenBasket-CarbonEmission-sub000/internal/domain"
	"github.com/Kanikabudhiraja/GreenBasket-CarbonEmission-sub000/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withOrderID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("order_id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestGetBySession_Success(t *testing.T) {
	mock := &OrderServiceMock{Order: sampleOrder()}
	handler := NewOrdersHandler(mock)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/v1/orders?session_handle=cs_test_abcdef123456", nil)

	handler.GetBySession(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response OrderResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, "GB-ef123456-1773478800", response.ID)
	assert.Equal(t, "2026-03-14T09:00:00Z", response.CreatedAt)
	assert.Equal(t, "2026-03-21T09:00:00Z", response.EstimatedDelivery)
	assert.NotEmpty(t, response.FulfillmentStatus)
	assert.Equal(t, "cs_test_abcdef123456", mock.LastSession)
}

func TestGetBySession_MissingParam(t *testing.T) {
	handler := NewOrdersHandler(&OrderServiceMock{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/v1/orders", nil)

	handler.GetBySession(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetBySession_SessionNotFound(t *testing.T) {
	handler := NewOrdersHandler(&OrderServiceMock{Err: service.ErrSessionNotFound})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/v1/orders?session_handle=cs_gone", nil)

	handler.GetBySession(recorder, request)

	require.Equal(t, http.StatusNotFound, recorder.Code)

	var response ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, "session_not_found", response.Code)
}

func TestGetBySession_TransientUnavailable(t *testing.T) {
	handler := NewOrdersHandler(&OrderServiceMock{Err: service.ErrMaterializeUnavailable})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/v1/orders?session_handle=cs_1", nil)

	handler.GetBySession(recorder, request)

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}

func TestGetByID_NotFound(t *testing.T) {
	handler := NewOrdersHandler(&OrderServiceMock{})

	recorder := httptest.NewRecorder()
	request := withOrderID(httptest.NewRequest("GET", "/api/v1/orders/GB-unknown-0", nil), "GB-unknown-0")

	handler.GetByID(recorder, request)

	require.Equal(t, http.StatusNotFound, recorder.Code)

	var response ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, "order_not_found", response.Code)
}

func TestGetByID_Success(t *testing.T) {
	handler := NewOrdersHandler(&OrderServiceMock{Order: sampleOrder()})

	recorder := httptest.NewRecorder()
	request := withOrderID(httptest.NewRequest("GET", "/api/v1/orders/GB-ef123456-1773478800", nil), "GB-ef123456-1773478800")

	handler.GetByID(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestListMine_EmptyIs200(t *testing.T) {
	handler := NewOrdersHandler(&OrderServiceMock{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/v1/orders/mine", nil)

	handler.ListMine(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response OrdersListResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.NotNil(t, response.Orders)
	assert.Empty(t, response.Orders)
}

func TestListMine_FiltersByAuthenticatedBuyer(t *testing.T) {
	mock := &OrderServiceMock{Orders: []*domain.Order{sampleOrder()}}
	handler := NewOrdersHandler(mock)

	recorder := httptest.NewRecorder()
	request := withBuyer(httptest.NewRequest("GET", "/api/v1/orders/mine", nil), "asha@example.com")

	handler.ListMine(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "asha@example.com", mock.LastBuyerFilter)

	var response OrdersListResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	require.Len(t, response.Orders, 1)
	assert.Equal(t, "asha@example.com", response.Orders[0].BuyerEmail)
}
