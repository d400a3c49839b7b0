// Package gateway holds the buyer and seller orchestrators: stateless
// routers that validate a session and compose downstream store calls per
// request.
package gateway

import (
	"context"
	"errors"

	"github.com/ankurvarma7/online-marketplace/internal/protocol"
	"github.com/ankurvarma7/online-marketplace/internal/transport"
)

// Caller performs one request/response exchange with a downstream service.
type Caller interface {
	Call(ctx context.Context, req *protocol.Message) (*protocol.Message, error)
}

// Downstream reaches a service at a fixed peer address with a fresh
// connection per call.
type Downstream struct {
	addr string
}

func NewDownstream(addr string) *Downstream {
	return &Downstream{addr: addr}
}

func (d *Downstream) Call(ctx context.Context, req *protocol.Message) (*protocol.Message, error) {
	return transport.Call(ctx, d.addr, req)
}

// roundTrip calls a downstream and checks the response tag. A downstream
// error frame surfaces verbatim; a transport failure or unexpected variant
// collapses into the operation's fixed fallback message.
func roundTrip(ctx context.Context, c Caller, req *protocol.Message, want protocol.MessageType, fallback string) (*protocol.Message, error) {
	resp, err := c.Call(ctx, req)
	if err != nil {
		return nil, errors.New(fallback)
	}
	switch resp.Type {
	case want:
		return resp, nil
	case protocol.TypeError:
		if msg := resp.ErrorText(); msg != "" {
			return nil, errors.New(msg)
		}
		return nil, errors.New(fallback)
	default:
		return nil, errors.New(fallback)
	}
}
