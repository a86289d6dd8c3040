package event

import "errors"

// Errors returned by notifier operations.
var (
	// ErrNilHandler indicates a subscription was attempted with a nil handler.
	ErrNilHandler = errors.New("handler is nil")

	// ErrSubscriptionNotFound indicates the subscription is not registered.
	ErrSubscriptionNotFound = errors.New("subscription not found")
)
