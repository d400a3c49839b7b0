// Package transport frames tagged messages over plain TCP: one JSON value
// per newline-terminated line, one response per request, in order, per
// connection.
package transport

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"go.uber.org/zap"

	"github.com/ankurvarma7/online-marketplace/internal/protocol"
)

// Handler answers one decoded request frame with exactly one response frame.
type Handler func(ctx context.Context, req *protocol.Message) *protocol.Message

// Server accepts TCP connections and runs one goroutine per connection.
// Requests on a single connection are processed strictly sequentially; the
// next line is not read until the current response has been written.
type Server struct {
	name    string
	log     *zap.Logger
	handler Handler

	lis    net.Listener
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewServer(name string, log *zap.Logger, handler Handler) *Server {
	return &Server{name: name, log: log, handler: handler}
}

// Listen binds the server to addr. Use Addr to recover the bound address
// when addr carries port 0.
func (s *Server) Listen(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("%s: listen on %s: %w", s.name, addr, err)
	}
	s.lis = lis
	return nil
}

// Addr returns the bound listen address.
func (s *Server) Addr() string {
	if s.lis == nil {
		return ""
	}
	return s.lis.Addr().String()
}

// Serve runs the accept loop until Close is called. Every accepted
// connection gets its own goroutine; there is no admission limit.
func (s *Server) Serve(ctx context.Context) error {
	if s.lis == nil {
		return fmt.Errorf("%s: serve before listen", s.name)
	}
	for {
		conn, err := s.lis.Accept()
		if err != nil {
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if closed {
				return nil
			}
			return fmt.Errorf("%s: accept: %w", s.name, err)
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(ctx, conn)
		}()
	}
}

// Close stops the accept loop and waits for in-flight connections.
func (s *Server) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	var err error
	if s.lis != nil {
		err = s.lis.Close()
	}
	s.wg.Wait()
	return err
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	remote := conn.RemoteAddr().String()
	reader := bufio.NewReader(conn)

	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				s.log.Warn("connection read failed",
					zap.String("remote", remote), zap.Error(err))
			}
			return
		}

		var req protocol.Message
		var resp *protocol.Message
		if err := json.Unmarshal(line, &req); err != nil {
			// A malformed line is answered on the same connection;
			// the connection keeps serving subsequent lines.
			resp = protocol.ErrorMessage(fmt.Sprintf("Invalid request: %v", err))
		} else {
			resp = s.handler(ctx, &req)
		}

		if err := WriteFrame(conn, resp); err != nil {
			// Not retried and not reported to the client; the
			// connection is abandoned.
			s.log.Warn("response write failed",
				zap.String("remote", remote), zap.Error(err))
			return
		}
	}
}

// WriteFrame serializes one message as a single newline-terminated line.
func WriteFrame(w io.Writer, m *protocol.Message) error {
	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// ReadFrame reads exactly one newline-terminated message.
func ReadFrame(r *bufio.Reader) (*protocol.Message, error) {
	line, err := r.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("read frame: %w", err)
	}
	var m protocol.Message
	if err := json.Unmarshal(line, &m); err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	return &m, nil
}
