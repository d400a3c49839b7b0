package gateway

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ankurvarma7/online-marketplace/internal/domain"
	"github.com/ankurvarma7/online-marketplace/internal/protocol"
)

// mockCaller is a canned downstream: it answers by request type and records
// every request it sees.
type mockCaller struct {
	m         sync.Mutex
	responses map[protocol.MessageType]*protocol.Message
	errs      map[protocol.MessageType]error
	requests  []*protocol.Message
}

func newMockCaller() *mockCaller {
	return &mockCaller{
		responses: make(map[protocol.MessageType]*protocol.Message),
		errs:      make(map[protocol.MessageType]error),
	}
}

func (m *mockCaller) Call(_ context.Context, req *protocol.Message) (*protocol.Message, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.requests = append(m.requests, req)
	if err, ok := m.errs[req.Type]; ok {
		return nil, err
	}
	if resp, ok := m.responses[req.Type]; ok {
		return resp, nil
	}
	return nil, fmt.Errorf("unexpected downstream request %q", req.Type)
}

func (m *mockCaller) respond(reqType protocol.MessageType, resp *protocol.Message) {
	m.m.Lock()
	defer m.m.Unlock()
	m.responses[reqType] = resp
}

func (m *mockCaller) fail(reqType protocol.MessageType, err error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.errs[reqType] = err
}

func (m *mockCaller) requestsOf(reqType protocol.MessageType) []*protocol.Message {
	m.m.Lock()
	defer m.m.Unlock()
	var out []*protocol.Message
	for _, req := range m.requests {
		if req.Type == reqType {
			out = append(out, req)
		}
	}
	return out
}

// withSession wires a valid session of the given role into the mock account
// store and returns the session id.
func withSession(accounts *mockCaller, userID uuid.UUID, userType domain.UserType) uuid.UUID {
	sessionID := uuid.New()
	accounts.respond(protocol.AccountGetSession, protocol.MustMessage(protocol.AccountSession,
		protocol.SessionPayload{Session: &domain.Session{
			SessionID:  sessionID,
			UserID:     userID,
			UserType:   userType,
			Expiration: time.Now().Add(time.Hour).Unix(),
		}}))
	return sessionID
}
