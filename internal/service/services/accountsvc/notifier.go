package accountsvc

import (
	"context"
	"log/slog"
)

// Notifier delivers one-time passwords to customers. SMS and email
// providers plug in here.
type Notifier interface {
	SendOTP(ctx context.Context, phone string, otp int) error
}

// LogNotifier writes the OTP to the log instead of sending it. Used in
// development and in environments without an SMS provider.
type LogNotifier struct{}

func (LogNotifier) SendOTP(_ context.Context, phone string, otp int) error {
	slog.Info("OTP issued", "phone", phone, "otp", otp)

	return nil
}
