package contract

import "errors"

var (
	// ErrModelInvoke covers transport failures reaching the reasoning service.
	ErrModelInvoke = errors.New("model invoke failed")
	// ErrSchemaViolation covers replies without a parseable structured object.
	ErrSchemaViolation = errors.New("model response violates schema")
	// ErrValidation covers malformed caller input or internal state.
	ErrValidation = errors.New("validation failed")
	// ErrProviderUnavailable covers capabilities with no reachable provider.
	ErrProviderUnavailable = errors.New("capability provider unavailable")
	// ErrPromptMissing covers an empty embedded prompt at construction time.
	ErrPromptMissing = errors.New("required prompt is missing")
)
