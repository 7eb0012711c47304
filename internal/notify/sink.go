// Package notify delivers best-effort event notifications. Sends never block
// or roll back the data mutation that triggered them; callers log failures
// and move on.
package notify

import (
	"context"
	"errors"

	"github.com/amitkumarsingh01/ACS-Cyber/internal/model"
)

// ErrDelivery wraps any transport failure while sending a notification.
var ErrDelivery = errors.New("notification delivery failed")

// Sink delivers one message per event to a user.
type Sink interface {
	Notify(ctx context.Context, user model.User, subject, body string) error
}

// Multi fans a notification out to several sinks. Every sink is attempted;
// failures are joined into one error.
type Multi []Sink

func (m Multi) Notify(ctx context.Context, user model.User, subject, body string) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Notify(ctx, user, subject, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
