package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kormo-mela/kormo-services/services/notifications/internal/domain"
	"github.com/kormo-mela/kormo-services/services/notifications/internal/notifier"
)

// DeviceStore is the device directory lookup.
type DeviceStore interface {
	ForUsers(ctx context.Context, userIDs []int64) ([]domain.Device, error)
}

// DispatchResult records the outcome per device; one failing device never
// aborts the batch.
type DispatchResult struct {
	Device domain.Device
	Err    error
}

type NotifyResult struct {
	Delivered bool   `json:"delivered"`
	Devices   int    `json:"devices,omitempty"`
	UserID    int64  `json:"user_id,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

type NotifySvc struct {
	devices  DeviceStore
	notifier notifier.Notifier
	logger   zerolog.Logger
}

func NewNotifySvc(devices DeviceStore, n notifier.Notifier, logger zerolog.Logger) *NotifySvc {
	return &NotifySvc{devices: devices, notifier: n, logger: logger}
}

// FanOut dispatches title/body to every device of every target user,
// best-effort per device.
func (s *NotifySvc) FanOut(ctx context.Context, userIDs []int64, title, body string) ([]DispatchResult, error) {
	devices, err := s.devices.ForUsers(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("device lookup: %w", err)
	}

	results := make([]DispatchResult, 0, len(devices))
	for _, d := range devices {
		err := s.notifier.Push(ctx, d, title, body)
		if err != nil {
			s.logger.Warn().Err(err).
				Int64("user_id", d.UserID).
				Str("platform", d.Platform).
				Msg("push failed")
		}
		results = append(results, DispatchResult{Device: d, Err: err})
	}
	return results, nil
}

// HandleEvent turns one booking event payload into a push fan-out to both
// parties. Malformed payloads and missing devices are logged, never fatal.
func (s *NotifySvc) HandleEvent(ctx context.Context, payload []byte) {
	evt, err := domain.ParseBookingEvent(payload)
	if err != nil {
		s.logger.Warn().Err(err).Str("payload", string(payload)).Msg("bad event payload")
		return
	}

	targets := evt.Targets()
	if len(targets) == 0 {
		return
	}

	title := evt.Title
	if title == "" {
		title = "Booking update"
	}
	body := evt.Body
	if body == "" {
		body = fmt.Sprintf("Booking #%d updated", evt.ID)
	}

	results, err := s.FanOut(ctx, targets, title, body)
	if err != nil {
		s.logger.Error().Err(err).Int64("booking_id", evt.ID).Msg("fan-out failed")
		return
	}
	if len(results) == 0 {
		s.logger.Info().Int64("booking_id", evt.ID).Msg("no devices registered")
	}
}

// NotifyUser is the direct /notify path. Unlike the subscriber it is
// synchronous, so store errors surface to the caller.
func (s *NotifySvc) NotifyUser(ctx context.Context, userID int64, title, body string) (NotifyResult, error) {
	results, err := s.FanOut(ctx, []int64{userID}, title, body)
	if err != nil {
		return NotifyResult{}, err
	}
	if len(results) == 0 {
		return NotifyResult{Delivered: false, Reason: "no registered devices"}, nil
	}
	return NotifyResult{Delivered: true, Devices: len(results), UserID: userID}, nil
}
