package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kormo-mela/kormo-services/services/notifications/internal/domain"
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

// recordingNotifier records every push and can fail selected tokens.
type recordingNotifier struct {
	pushed   []domain.Device
	failWhen map[string]error
}

func (n *recordingNotifier) Push(_ context.Context, d domain.Device, _, _ string) error {
	n.pushed = append(n.pushed, d)
	if err, ok := n.failWhen[d.PushToken]; ok {
		return err
	}
	return nil
}

func TestFanOut_BatchedLookupAndDispatch(t *testing.T) {
	devices := &mockDevices{}
	// user 5 has two devices, user 9 has none
	devices.On("ForUsers", mock.Anything, []int64{5, 9}).Return([]domain.Device{
		{UserID: 5, PushToken: "tok-a", Platform: "ios"},
		{UserID: 5, PushToken: "tok-b", Platform: "android"},
	}, nil)
	n := &recordingNotifier{}
	svc := NewNotifySvc(devices, n, zerolog.Nop())

	results, err := svc.FanOut(context.Background(), []int64{5, 9}, "t", "b")
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Len(t, n.pushed, 2)
	for _, d := range n.pushed {
		assert.Equal(t, int64(5), d.UserID)
	}
	devices.AssertNumberOfCalls(t, "ForUsers", 1)
}

func TestFanOut_DeviceFailureDoesNotAbortBatch(t *testing.T) {
	devices := &mockDevices{}
	devices.On("ForUsers", mock.Anything, mock.Anything).Return([]domain.Device{
		{UserID: 1, PushToken: "bad"},
		{UserID: 1, PushToken: "good"},
	}, nil)
	n := &recordingNotifier{failWhen: map[string]error{"bad": errors.New("gone")}}
	svc := NewNotifySvc(devices, n, zerolog.Nop())

	results, err := svc.FanOut(context.Background(), []int64{1}, "t", "b")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Error(t, results[0].Err)
	assert.NoError(t, results[1].Err)
	assert.Len(t, n.pushed, 2)
}

func TestHandleEvent_FanOutToBothParties(t *testing.T) {
	devices := &mockDevices{}
	devices.On("ForUsers", mock.Anything, []int64{5, 9}).Return([]domain.Device{
		{UserID: 5, PushToken: "tok-a"},
		{UserID: 5, PushToken: "tok-b"},
	}, nil)
	n := &recordingNotifier{}
	svc := NewNotifySvc(devices, n, zerolog.Nop())

	svc.HandleEvent(context.Background(), []byte(
		`{"type":"booking.confirmed","id":77,"customer_id":5,"provider_id":9,"title":"Booking confirmed","body":"Booking #77 is now CONFIRMED"}`))

	assert.Len(t, n.pushed, 2)
}

func TestHandleEvent_EmptyTargetsIsNoop(t *testing.T) {
	devices := &mockDevices{}
	n := &recordingNotifier{}
	svc := NewNotifySvc(devices, n, zerolog.Nop())

	svc.HandleEvent(context.Background(), []byte(`{"type":"booking.created","id":1}`))

	devices.AssertNotCalled(t, "ForUsers", mock.Anything, mock.Anything)
	assert.Empty(t, n.pushed)
}

func TestHandleEvent_MalformedPayloadIsDropped(t *testing.T) {
	devices := &mockDevices{}
	n := &recordingNotifier{}
	svc := NewNotifySvc(devices, n, zerolog.Nop())

	svc.HandleEvent(context.Background(), []byte(`not json at all`))

	devices.AssertNotCalled(t, "ForUsers", mock.Anything, mock.Anything)
	assert.Empty(t, n.pushed)
}

func TestHandleEvent_StoreErrorIsNotFatal(t *testing.T) {
	devices := &mockDevices{}
	devices.On("ForUsers", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))
	svc := NewNotifySvc(devices, &recordingNotifier{}, zerolog.Nop())

	// must not panic; the subscriber loop keeps running
	svc.HandleEvent(context.Background(), []byte(`{"id":1,"customer_id":2}`))
}

func TestNotifyUser_NoDevices(t *testing.T) {
	devices := &mockDevices{}
	devices.On("ForUsers", mock.Anything, []int64{3}).Return([]domain.Device{}, nil)
	svc := NewNotifySvc(devices, &recordingNotifier{}, zerolog.Nop())

	res, err := svc.NotifyUser(context.Background(), 3, "t", "b")
	require.NoError(t, err)
	assert.False(t, res.Delivered)
	assert.Equal(t, "no registered devices", res.Reason)
}

func TestNotifyUser_ReportsDeviceCount(t *testing.T) {
	devices := &mockDevices{}
	devices.On("ForUsers", mock.Anything, []int64{3}).Return([]domain.Device{
		{UserID: 3, PushToken: "a"},
		{UserID: 3, PushToken: "b"},
		{UserID: 3, PushToken: "c"},
	}, nil)
	svc := NewNotifySvc(devices, &recordingNotifier{}, zerolog.Nop())

	res, err := svc.NotifyUser(context.Background(), 3, "t", "b")
	require.NoError(t, err)
	assert.True(t, res.Delivered)
	assert.Equal(t, 3, res.Devices)
	assert.Equal(t, int64(3), res.UserID)
}

func TestNotifyUser_StoreErrorSurfaces(t *testing.T) {
	devices := &mockDevices{}
	devices.On("ForUsers", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))
	svc := NewNotifySvc(devices, &recordingNotifier{}, zerolog.Nop())

	_, err := svc.NotifyUser(context.Background(), 3, "t", "b")
	assert.Error(t, err)
}
