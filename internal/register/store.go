package register

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pos2025/pos-backend/internal/cart"
	"github.com/pos2025/pos-backend/internal/checkout"
	"github.com/pos2025/pos-backend/pkg/config"
	"github.com/pos2025/pos-backend/pkg/enums"
	pkgerrors "github.com/pos2025/pos-backend/pkg/errors"
	"github.com/pos2025/pos-backend/pkg/logger"
	"github.com/pos2025/pos-backend/pkg/metrics"
	"github.com/pos2025/pos-backend/pkg/types"
)

// Store keeps register sessions in process, keyed by session id. Idle
// sessions are swept lazily when the store is next touched.
type Store struct {
	creator  checkout.OrderCreator
	metrics  *metrics.CheckoutMetrics
	logg     *logger.Logger
	ttl      time.Duration
	decimals int
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore builds a session store.
func NewStore(creator checkout.OrderCreator, m *metrics.CheckoutMetrics, logg *logger.Logger, cfg config.RegisterConfig, decimals int) (*Store, error) {
	if creator == nil {
		return nil, fmt.Errorf("order creator required")
	}
	if decimals < 0 {
		decimals = types.DefaultCurrencyDecimals
	}
	return &Store{
		creator:  creator,
		metrics:  m,
		logg:     logg,
		ttl:      cfg.SessionTTL,
		decimals: decimals,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}, nil
}

// Create opens a fresh session: empty cart, direct sale, nothing selected.
func (s *Store) Create() (*Session, error) {
	orch, err := checkout.NewOrchestrator(s.creator, s.metrics, s.logg)
	if err != nil {
		return nil, err
	}

	session := &Session{
		id:       uuid.NewString(),
		cart:     cart.New(),
		saleType: enums.SaleTypeDirect,
		orch:     orch,
		lastSeen: s.now(),
		decimals: s.decimals,
	}

	s.mu.Lock()
	s.sweepLocked()
	s.sessions[session.id] = session
	s.mu.Unlock()
	return session, nil
}

// Get returns a live session and refreshes its idle timer.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	s.sweepLocked()
	session, ok := s.sessions[id]
	s.mu.Unlock()

	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "register session not found")
	}
	session.touch(s.now())
	return session, nil
}

// Delete closes a session.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "register session not found")
	}
	delete(s.sessions, id)
	return nil
}

// Len reports how many sessions are live.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) sweepLocked() {
	now := s.now()
	for id, session := range s.sessions {
		if session.expired(now, s.ttl) {
			delete(s.sessions, id)
		}
	}
}
