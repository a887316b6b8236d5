package metrics

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// userCreationSpikeThreshold is the hourly creation count above which an
// alert fires.
const userCreationSpikeThreshold = 100

// Alerter records operational alerts: each alert increments the
// alerts.triggered.total counter and logs at error level. Alert delivery is
// best-effort and never fails the surrounding operation.
type Alerter struct {
	sink Sink
	log  *zap.Logger
}

// NewAlerter creates an Alerter backed by the given counter sink.
func NewAlerter(sink Sink, log *zap.Logger) *Alerter {
	return &Alerter{sink: sink, log: log}
}

// Alert records an alert of the given type.
func (a *Alerter) Alert(ctx context.Context, alertType, message string) {
	a.sink.Increment(ctx, AlertsTriggered)
	a.log.Error("ALERT",
		zap.String("type", alertType),
		zap.String("message", message),
	)
}

// DatabaseConnectionIssue raises an alert for store-level failures.
func (a *Alerter) DatabaseConnectionIssue(ctx context.Context, err error) {
	a.Alert(ctx, "DATABASE_CONNECTION", fmt.Sprintf("Database connection issue: %v", err))
}

// UserCreationSpike raises an alert when the hourly user creation count
// crosses the spike threshold.
func (a *Alerter) UserCreationSpike(ctx context.Context, usersCreatedInLastHour int) {
	if usersCreatedInLastHour > userCreationSpikeThreshold {
		a.Alert(ctx, "USER_CREATION_SPIKE",
			fmt.Sprintf("Unusual user creation spike: %d users in last hour", usersCreatedInLastHour))
	}
}
