package notifier

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kormo-mela/kormo-services/services/notifications/internal/domain"
)

// Notifier delivers one push to one device. Swappable for FCM/APNs later.
type Notifier interface {
	Push(ctx context.Context, d domain.Device, title, body string) error
}

// ConsoleNotifier logs pushes instead of delivering them; real provider
// integration is out of scope.
type ConsoleNotifier struct {
	logger zerolog.Logger
}

func NewConsole(logger zerolog.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{logger: logger}
}

func (n *ConsoleNotifier) Push(_ context.Context, d domain.Device, title, body string) error {
	n.logger.Info().
		Int64("user_id", d.UserID).
		Str("platform", d.Platform).
		Str("token", d.PushToken).
		Str("title", title).
		Str("body", body).
		Msg("push")
	return nil
}
