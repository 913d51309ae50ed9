// Package transport connects the relay to a message delivery service.
package transport

import (
	"context"

	"github.com/lingobridge/lingobridge"
)

// Sender is the outbound half of a transport.
// This is an alias to the main package interface for convenience.
type Sender = lingobridge.Sender

// Handler consumes inbound chat events. *lingobridge.Relay satisfies it:
// non-replies go to the forward path, replies to the reverse path.
type Handler interface {
	HandleInbound(ctx context.Context, msg lingobridge.Message) (*lingobridge.Result, error)
	HandleReply(ctx context.Context, msg lingobridge.Message) (*lingobridge.Result, error)
}
