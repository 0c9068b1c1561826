package httpserver

import (
	"net/http"
	"sync"
	"time"

	"contactsui/contactui"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SessionCookie names the cookie that selects a browser's workspace.
const SessionCookie = "contactsui_session"

type SessionOptions struct {
	// TTL evicts sessions idle for longer than this. Zero keeps them until Close.
	TTL time.Duration

	// MaxSessions evicts the least recently used session once exceeded.
	// Zero means no cap.
	MaxSessions int
}

type sessionEntry struct {
	workspace *contactui.Workspace
	lastSeen  time.Time
}

// SessionStore keeps one workspace per browser session.
type SessionStore struct {
	mu           sync.Mutex
	sessions     map[string]*sessionEntry
	newWorkspace func() *contactui.Workspace
	opts         SessionOptions

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewSessionStore starts a background sweep of idle sessions when opts.TTL is
// set. Close stops it.
func NewSessionStore(newWorkspace func() *contactui.Workspace, opts SessionOptions) *SessionStore {
	s := &SessionStore{
		sessions:     map[string]*sessionEntry{},
		newWorkspace: newWorkspace,
		opts:         opts,
		stop:         make(chan struct{}),
	}

	if opts.TTL > 0 {
		s.wg.Add(1)
		go s.sweepLoop(sweepInterval(opts.TTL))
	}
	return s
}

// Workspace returns the workspace for the request's session cookie. Requests
// without a known session get a new workspace and cookie; created reports that.
func (s *SessionStore) Workspace(c echo.Context) (ws *contactui.Workspace, created bool) {
	now := time.Now()
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		if id, err := uuid.Parse(cookie.Value); err == nil {
			s.mu.Lock()
			entry, ok := s.sessions[id.String()]
			if ok {
				entry.lastSeen = now
			}
			s.mu.Unlock()
			if ok {
				return entry.workspace, false
			}
		}
	}

	id := uuid.NewString()
	ws = s.newWorkspace()

	s.mu.Lock()
	s.sessions[id] = &sessionEntry{workspace: ws, lastSeen: now}
	evicted := s.evictOverCapLocked(id)
	s.mu.Unlock()
	closeAll(evicted)

	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return ws, true
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions not seen within the TTL as of now and returns how many
// were dropped.
func (s *SessionStore) Sweep(now time.Time) int {
	if s.opts.TTL <= 0 {
		return 0
	}

	s.mu.Lock()
	var evicted []*contactui.Workspace
	for id, entry := range s.sessions {
		if now.Sub(entry.lastSeen) > s.opts.TTL {
			evicted = append(evicted, entry.workspace)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	closeAll(evicted)
	return len(evicted)
}

// Close stops the sweep, shuts down every workspace and forgets all sessions.
func (s *SessionStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
	s.wg.Wait()

	s.mu.Lock()
	sessions := s.sessions
	s.sessions = map[string]*sessionEntry{}
	s.mu.Unlock()

	for _, entry := range sessions {
		entry.workspace.Close()
	}
}

func (s *SessionStore) sweepLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.Sweep(now)
		}
	}
}

// evictOverCapLocked drops the least recently seen sessions other than keep
// until the cap holds.
func (s *SessionStore) evictOverCapLocked(keep string) []*contactui.Workspace {
	if s.opts.MaxSessions <= 0 {
		return nil
	}

	var evicted []*contactui.Workspace
	for len(s.sessions) > s.opts.MaxSessions {
		var oldestID string
		var oldest time.Time
		for id, entry := range s.sessions {
			if id == keep {
				continue
			}
			if oldestID == "" || entry.lastSeen.Before(oldest) {
				oldestID, oldest = id, entry.lastSeen
			}
		}
		if oldestID == "" {
			break
		}
		evicted = append(evicted, s.sessions[oldestID].workspace)
		delete(s.sessions, oldestID)
	}
	return evicted
}

func sweepInterval(ttl time.Duration) time.Duration {
	interval := ttl / 2
	if interval < time.Second {
		return time.Second
	}
	if interval > time.Minute {
		return time.Minute
	}
	return interval
}

func closeAll(workspaces []*contactui.Workspace) {
	for _, ws := range workspaces {
		ws.Close()
	}
}
