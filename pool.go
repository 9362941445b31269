package paperscan

import (
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// SessionPool manages a pool of Session instances for parallel rendering.
// Each session has its own surface (and browser), enabling true parallelism.
// Sessions are created lazily on first acquire to avoid startup delay.
type SessionPool struct {
	size     int
	opts     []Option
	sessions []*Session
	sem      chan *Session
	mu       sync.Mutex
	created  int
	closed   bool
}

// NewSessionPool creates a pool with capacity for n sessions built with opts.
// Sessions are created lazily when acquired, not at pool creation.
func NewSessionPool(n int, opts ...Option) *SessionPool {
	if n < 1 {
		n = 1
	}

	return &SessionPool{
		size:     n,
		opts:     opts,
		sessions: make([]*Session, 0, n),
		sem:      make(chan *Session, n),
	}
}

// Acquire gets a session from the pool, creating one if needed.
// Blocks if all sessions are in use. The collection of an acquired session
// is empty.
func (p *SessionPool) Acquire() (*Session, error) {
	// Try to get an existing session (non-blocking)
	select {
	case s, ok := <-p.sem:
		if !ok {
			return nil, ErrPoolClosed
		}
		return s, nil
	default:
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Create new session outside the lock
		s, err := NewSession(p.opts...)
		if err != nil {
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return nil, err
		}

		p.mu.Lock()
		p.sessions = append(p.sessions, s)
		p.mu.Unlock()

		return s, nil
	}
	p.mu.Unlock()

	// All sessions created, wait for one to be released
	s, ok := <-p.sem
	if !ok {
		return nil, ErrPoolClosed
	}
	return s, nil
}

// Release clears the session collection and returns it to the pool.
// Releasing after Close is a no-op. The send runs under the lock so Close
// cannot close the channel mid-send.
func (p *SessionPool) Release(s *Session) {
	s.Collection().RemoveAll()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	select {
	case p.sem <- s:
	default:
	}
}

// Close releases all surfaces.
// Returns an aggregated error if multiple sessions fail to close.
func (p *SessionPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	for range p.sem {
		// drain idle sessions so Acquire sees the closed channel
	}
	sessions := p.sessions
	p.mu.Unlock()

	var errs []error
	for _, s := range sessions {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *SessionPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for containers)
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
