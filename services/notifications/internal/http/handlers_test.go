package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kormo-mela/kormo-services/services/notifications/internal/domain"
	"github.com/kormo-mela/kormo-services/services/notifications/internal/notifier"
	"github.com/kormo-mela/kormo-services/services/notifications/internal/service"
)

type mockDevices struct {
	mock.Mock
}

func (m *mockDevices) ForUsers(ctx context.Context, userIDs []int64) ([]domain.Device, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Device), args.Error(1)
}

func newTestRouter(devices service.DeviceStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewNotifySvc(devices, notifier.NewConsole(zerolog.Nop()), zerolog.Nop())
	r := gin.New()
	NewHandler(svc, zerolog.Nop()).Register(r)
	return r
}

func postNotify(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/notify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestNotify_NoDevices(t *testing.T) {
	devices := &mockDevices{}
	devices.On("ForUsers", mock.Anything, []int64{5}).Return([]domain.Device{}, nil)
	r := newTestRouter(devices)

	w := postNotify(r, `{"user_id":5,"title":"Hi","body":"there"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var res service.NotifyResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.False(t, res.Delivered)
	assert.Equal(t, "no registered devices", res.Reason)
}

func TestNotify_ReportsCount(t *testing.T) {
	devices := &mockDevices{}
	devices.On("ForUsers", mock.Anything, []int64{5}).Return([]domain.Device{
		{UserID: 5, PushToken: "a", Platform: "ios"},
		{UserID: 5, PushToken: "b", Platform: "android"},
	}, nil)
	r := newTestRouter(devices)

	w := postNotify(r, `{"user_id":5,"title":"Hi","body":"there"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var res service.NotifyResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Delivered)
	assert.Equal(t, 2, res.Devices)
}

func TestNotify_MissingFields(t *testing.T) {
	r := newTestRouter(&mockDevices{})
	w := postNotify(r, `{"user_id":5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotify_StoreErrorIsServerError(t *testing.T) {
	devices := &mockDevices{}
	devices.On("ForUsers", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))
	r := newTestRouter(devices)

	w := postNotify(r, `{"user_id":5,"title":"Hi","body":"there"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&mockDevices{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
