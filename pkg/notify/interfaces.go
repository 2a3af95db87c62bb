package notify

import "context"

// Sink delivers run-completion events to a downstream system (HTTP, SQS, etc).
type Sink interface {
	ID() string
	Type() string
	Notify(ctx context.Context, evt Event) error
}
