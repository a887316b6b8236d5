package metrics

import "context"

// Counter names emitted by the entity services.
const (
	UsersCreated    = "users.created.total"
	UsersUpdated    = "users.updated.total"
	UsersDeleted    = "users.deleted.total"
	UsersNotFound   = "users.not_found.total"
	EmailConflicts  = "users.email_conflict.total"
	ProductsCreated = "products.created.total"
	ProductsUpdated = "products.updated.total"
	ProductsDeleted = "products.deleted.total"
	ProductNotFound = "products.not_found.total"
	AlertsTriggered = "alerts.triggered.total"
)

// Sink receives fire-and-forget counter increments. Implementations must
// never return control-flow-relevant failures: emission errors are logged
// and swallowed so metrics can never alter a business outcome.
type Sink interface {
	Increment(ctx context.Context, name string)
}

// NopSink discards all increments.
type NopSink struct{}

// Increment implements Sink.
func (NopSink) Increment(context.Context, string) {}
