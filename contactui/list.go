package contactui

import (
	"context"
	"sync"
	"time"

	"contactsui/contact"
	"contactsui/pkg/logger"

	"go.uber.org/zap"
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ListView is a copy of the list state, safe to hand to a renderer.
type ListView struct {
	State      State              `json:"state"`
	Contacts   []contact.Contact  `json:"contacts"`
	Pagination contact.Pagination `json:"pagination"`
	Query      string             `json:"query"`
}

type ListOption func(c *ListController)

// WithPageSize sets the page size used on mount and after uploads and creates.
func WithPageSize(n int) ListOption {
	return func(c *ListController) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithSearchDebounce delays search fetches until typing pauses for d.
// Zero fetches on every keystroke.
func WithSearchDebounce(d time.Duration) ListOption {
	return func(c *ListController) {
		c.debounce = d
	}
}

// WithSearchResetsPage makes a search start from page 1 instead of the
// current page.
func WithSearchResetsPage(reset bool) ListOption {
	return func(c *ListController) {
		c.resetPageOnSearch = reset
	}
}

func WithLogger(l *zap.SugaredLogger) ListOption {
	return func(c *ListController) {
		if l != nil {
			c.log = l
		}
	}
}

// WithStateObserver registers fn to be called on every state transition.
func WithStateObserver(fn func(State)) ListOption {
	return func(c *ListController) {
		c.observers = append(c.observers, fn)
	}
}

// ListController owns the paginated, searchable contact list.
//
// Every fetch carries a sequence number. A response is applied only if it is
// newer than the last applied one, so a slow early response cannot overwrite
// the result of a later request.
type ListController struct {
	svc      contact.Service
	notifier Notifier
	bus      *Bus
	log      *zap.SugaredLogger

	pageSize          int
	debounce          time.Duration
	resetPageOnSearch bool
	observers         []func(State)

	mu          sync.Mutex
	state       State
	contacts    []contact.Contact
	pagination  contact.Pagination
	query       string
	params      contact.ListParams
	seq         uint64
	applied     uint64
	searchGen   uint64
	timer       *time.Timer
	searchDone  chan struct{}
	unsubscribe func()
}

func NewListController(svc contact.Service, notifier Notifier, bus *Bus, opts ...ListOption) *ListController {
	c := &ListController{
		svc:      svc,
		notifier: notifier,
		bus:      bus,
		log:      logger.NOOPLogger,
		pageSize: contact.DefaultLimit,
		contacts: []contact.Contact{},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.params = contact.ListParams{Page: contact.DefaultPage, Limit: c.pageSize}
	c.pagination = contact.Pagination{Current: contact.DefaultPage, PageSize: c.pageSize}
	if bus != nil {
		c.unsubscribe = bus.Subscribe(c.onMutation)
	}
	return c
}

// Load is the mount fetch: first page, configured page size, no filter.
func (c *ListController) Load(ctx context.Context) error {
	params := contact.DefaultListParams()
	params.Limit = c.pageSize
	return c.Fetch(ctx, params)
}

// Fetch requests one page. On success the contacts and total come from the
// response while current page and page size come from params. On failure the
// previous contacts and paging are kept and an error notification is emitted.
func (c *ListController) Fetch(ctx context.Context, params contact.ListParams) error {
	c.mu.Lock()
	c.stopTimerLocked()
	return c.fetchLocked(ctx, params)
}

// fetchLocked is called with c.mu held and releases it before the request.
// params become the current paging only once their response is applied.
func (c *ListController) fetchLocked(ctx context.Context, params contact.ListParams) error {
	params = params.Normalize()
	c.seq++
	seq := c.seq
	c.query = params.Search
	c.state = StateLoading
	c.mu.Unlock()
	c.emit(StateLoading)

	page, err := c.svc.ListContacts(ctx, params)

	c.mu.Lock()
	if seq <= c.applied {
		c.mu.Unlock()
		c.log.Debugw("discarding stale contacts response", "seq", seq, "page", params.Page, "search", params.Search)
		return nil
	}
	c.applied = seq
	latest := seq == c.seq

	if err != nil {
		if latest {
			c.state = StateLoaded
		}
		c.mu.Unlock()

		c.log.Errorw("fetching contacts failed", "error", err, "page", params.Page, "limit", params.Limit, "search", params.Search)
		c.notifier.Error("Failed to fetch contacts.")
		c.emit(StateError)
		if latest {
			c.emit(StateLoaded)
		}
		return err
	}

	c.params = params
	c.contacts = page.Contacts
	if c.contacts == nil {
		c.contacts = []contact.Contact{}
	}
	c.pagination = contact.Pagination{
		Current:  params.Page,
		PageSize: params.Limit,
		Total:    page.Total,
	}
	if latest {
		c.state = StateLoaded
	}
	c.mu.Unlock()

	if latest {
		c.emit(StateLoaded)
	}
	return nil
}

// Paginate moves to page with pageSize, keeping the current search.
func (c *ListController) Paginate(ctx context.Context, page, pageSize int) error {
	c.mu.Lock()
	query := c.query
	c.mu.Unlock()

	return c.Fetch(ctx, contact.ListParams{Page: page, Limit: pageSize, Search: query})
}

// Search updates the query at once and fetches with the current page and
// page size. With a debounce interval the fetch waits for typing to pause and
// runs detached from ctx's cancellation.
func (c *ListController) Search(ctx context.Context, query string) error {
	_, err := c.search(ctx, query)
	return err
}

// SearchAndWait is Search for request/response hosts. It returns once the
// fetch for query has completed, or once a later keystroke or Close has
// superseded it.
func (c *ListController) SearchAndWait(ctx context.Context, query string) error {
	done, err := c.search(ctx, query)
	if err != nil || done == nil {
		return err
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// search returns a channel closed when the debounced fetch finishes or is
// superseded, or nil when the fetch already ran.
func (c *ListController) search(ctx context.Context, query string) (<-chan struct{}, error) {
	c.mu.Lock()
	c.stopTimerLocked()
	c.query = query
	params := c.params
	params.Search = query
	if c.resetPageOnSearch {
		params.Page = contact.DefaultPage
	}

	if c.debounce <= 0 {
		return nil, c.fetchLocked(ctx, params)
	}

	gen := c.searchGen
	done := make(chan struct{})
	c.searchDone = done
	detached := context.WithoutCancel(ctx)
	c.timer = time.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		if gen != c.searchGen {
			c.mu.Unlock()
			return
		}
		c.timer = nil
		c.searchDone = nil

		_ = c.fetchLocked(detached, params)
		close(done)
	})
	c.mu.Unlock()
	return done, nil
}

// Delete removes a contact and publishes a Deleted mutation whatever the
// outcome. The refresh it triggers keeps the current page, so deleting the
// last row of the last page can leave that page empty.
func (c *ListController) Delete(ctx context.Context, id contact.ID) error {
	err := c.svc.DeleteContact(ctx, id)
	if err != nil {
		c.log.Errorw("deleting contact failed", "error", err, "id", id)
		c.notifier.Error("Failed to delete contact.")
	} else {
		c.notifier.Success("Contact deleted successfully!")
	}

	if c.bus != nil {
		c.bus.Publish(ctx, Mutation{Kind: Deleted, ID: id, Err: err})
	} else {
		c.onMutation(ctx, Mutation{Kind: Deleted, ID: id, Err: err})
	}
	return err
}

func (c *ListController) onMutation(ctx context.Context, m Mutation) {
	c.mu.Lock()
	var params contact.ListParams
	switch m.Kind {
	case Uploaded, Created:
		c.query = ""
		params = contact.ListParams{Page: contact.DefaultPage, Limit: c.pageSize}
	case Deleted:
		params = c.params
		params.Search = c.query
	default:
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	_ = c.Fetch(ctx, params)
}

func (c *ListController) View() ListView {
	c.mu.Lock()
	defer c.mu.Unlock()

	contacts := make([]contact.Contact, len(c.contacts))
	copy(contacts, c.contacts)
	return ListView{
		State:      c.state,
		Contacts:   contacts,
		Pagination: c.pagination,
		Query:      c.query,
	}
}

// Close cancels a pending search and stops listening for mutations.
func (c *ListController) Close() {
	c.mu.Lock()
	c.stopTimerLocked()
	unsubscribe := c.unsubscribe
	c.unsubscribe = nil
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (c *ListController) stopTimerLocked() {
	c.searchGen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.searchDone != nil {
		close(c.searchDone)
		c.searchDone = nil
	}
}

func (c *ListController) emit(s State) {
	for _, fn := range c.observers {
		fn(s)
	}
}
