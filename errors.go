package lingobridge

import "fmt"

// Direction identifies which leg of the relay an error occurred on.
type Direction string

const (
	// DirectionForward is the inbound leg: original language to pivot.
	DirectionForward Direction = "forward"
	// DirectionReverse is the reply leg: pivot back to the original language.
	DirectionReverse Direction = "reverse"
)

// TranslationFailure indicates the translator failed or timed out.
// No relay state is mutated when this occurs; the affected party receives a
// stable user-facing message instead of the raw cause.
type TranslationFailure struct {
	Direction Direction
	Cause     error
}

func (e *TranslationFailure) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s translation failed: %v", e.Direction, e.Cause)
	}
	return fmt.Sprintf("%s translation failed", e.Direction)
}

func (e *TranslationFailure) Unwrap() error {
	return e.Cause
}

// PersistenceFailure indicates a store read or write error. It is logged and
// degrades reply-back for the affected message only; it is never fatal to the
// relay.
type PersistenceFailure struct {
	Op    string // "save" or "find"
	Cause error
}

func (e *PersistenceFailure) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("persistence failure during %s", e.Op)
}

func (e *PersistenceFailure) Unwrap() error {
	return e.Cause
}

// ProviderError indicates a translation backend failure (API error, rate
// limit, timeout).
type ProviderError struct {
	Message   string
	Cause     error
	Retryable bool // Whether the operation can be retried
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// TransportError indicates a delivery failure at the transport boundary.
type TransportError struct {
	Message string
	Cause   error
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("transport error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("transport error: %s", e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// Stable user-facing messages per failure direction. The raw error text never
// reaches chat participants.
const (
	userMessageForwardFailed = "Sorry, I couldn't translate your message. Please try again later."
	userMessageReverseFailed = "Sorry, I couldn't translate your response. Please try again later."
)

// UserMessage returns the user-facing text for a translation failure.
func (e *TranslationFailure) UserMessage() string {
	if e.Direction == DirectionReverse {
		return userMessageReverseFailed
	}
	return userMessageForwardFailed
}
