package transport

import (
	"bufio"
	"context"
	"fmt"
	"net"

	"github.com/ankurvarma7/online-marketplace/internal/protocol"
)

// Call performs one inter-service round trip: dial a fresh connection,
// write one frame, read one frame, close. Connections are never reused
// between calls and the address is resolved on every call.
func Call(ctx context.Context, addr string, req *protocol.Message) (*protocol.Message, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	if err := WriteFrame(conn, req); err != nil {
		return nil, err
	}
	return ReadFrame(bufio.NewReader(conn))
}
