package contactui_test

import (
	"context"
	"sync"

	"contactsui/contact"

	"github.com/stretchr/testify/mock"
)

type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) ListContacts(ctx context.Context, p contact.ListParams) (contact.Page, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(contact.Page), args.Error(1)
}

func (m *MockContactService) GetContact(ctx context.Context, id contact.ID) (contact.Contact, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(contact.Contact), args.Error(1)
}

func (m *MockContactService) AddContact(ctx context.Context, c contact.Contact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContactService) UpdateContact(ctx context.Context, id contact.ID, c contact.Contact) error {
	args := m.Called(ctx, id, c)
	return args.Error(0)
}

func (m *MockContactService) DeleteContact(ctx context.Context, id contact.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContactService) UploadContacts(ctx context.Context, u contact.Upload) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

// gatedService holds every list call until the test releases it, so
// responses can be delivered out of order.
type gatedService struct {
	contact.Service

	mu      sync.Mutex
	gates   map[string]chan contact.Page
	started chan string
}

func newGatedService() *gatedService {
	return &gatedService{
		gates:   map[string]chan contact.Page{},
		started: make(chan string, 8),
	}
}

func (g *gatedService) gate(search string) chan contact.Page {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.gates[search]
	if !ok {
		ch = make(chan contact.Page, 1)
		g.gates[search] = ch
	}
	return ch
}

func (g *gatedService) ListContacts(ctx context.Context, p contact.ListParams) (contact.Page, error) {
	ch := g.gate(p.Search)
	g.started <- p.Search
	return <-ch, nil
}

func (g *gatedService) release(search string, page contact.Page) {
	g.gate(search) <- page
}

type recordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *recordingNavigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *recordingNavigator) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

func people(names ...string) []contact.Contact {
	out := make([]contact.Contact, 0, len(names))
	for i, n := range names {
		out = append(out, contact.Contact{
			ID:    contact.ID(string(rune('1' + i))),
			Name:  n,
			Email: n + "@example.com",
			Phone: "0123456789",
		})
	}
	return out
}
