package account

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ankurvarma7/online-marketplace/internal/domain"
)

// DefaultSessionTTL is how long a fresh session stays valid.
const DefaultSessionTTL = time.Hour

// MemoryStore implements Store with process-memory maps behind one RWMutex.
// Passwords are stored as received; hashing is out of scope at this layer.
type MemoryStore struct {
	sessionTTL time.Duration

	mu       sync.RWMutex
	buyers   map[uuid.UUID]domain.Buyer
	sellers  map[uuid.UUID]domain.Seller
	names    map[string]struct{}
	sessions map[uuid.UUID]domain.Session
}

// NewMemoryStore creates an empty account store. A non-positive ttl falls
// back to DefaultSessionTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &MemoryStore{
		sessionTTL: ttl,
		buyers:     make(map[uuid.UUID]domain.Buyer),
		sellers:    make(map[uuid.UUID]domain.Seller),
		names:      make(map[string]struct{}),
		sessions:   make(map[uuid.UUID]domain.Session),
	}
}

func (s *MemoryStore) CreateBuyer(name, password string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.names[name]; taken {
		return uuid.Nil, ErrNameTaken
	}
	buyerID := uuid.New()
	s.buyers[buyerID] = domain.Buyer{BuyerID: buyerID, Name: name, Password: password}
	s.names[name] = struct{}{}
	return buyerID, nil
}

func (s *MemoryStore) CreateSeller(name, password string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.names[name]; taken {
		return uuid.Nil, ErrNameTaken
	}
	sellerID := uuid.New()
	s.sellers[sellerID] = domain.Seller{SellerID: sellerID, Name: name, Password: password}
	s.names[name] = struct{}{}
	return sellerID, nil
}

func (s *MemoryStore) BuyerByName(name string) *domain.Buyer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.buyers {
		if b.Name == name {
			return &b
		}
	}
	return nil
}

func (s *MemoryStore) SellerByName(name string) *domain.Seller {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sel := range s.sellers {
		if sel.Name == name {
			return &sel
		}
	}
	return nil
}

func (s *MemoryStore) Seller(sellerID uuid.UUID) *domain.Seller {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sel, ok := s.sellers[sellerID]
	if !ok {
		return nil
	}
	return &sel
}

func (s *MemoryStore) CreateSession(userID uuid.UUID, userType domain.UserType) domain.Session {
	sess := domain.Session{
		SessionID:  uuid.New(),
		UserID:     userID,
		UserType:   userType,
		Expiration: time.Now().Add(s.sessionTTL).Unix(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.SessionID] = sess
	return sess
}

func (s *MemoryStore) Session(sessionID uuid.UUID) *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	return &sess
}

func (s *MemoryStore) DeleteSession(sessionID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
