package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"contactsui/contact"
	"contactsui/httpserver"
	"contactsui/pkg/config"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
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

type apiResponse struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
	Info    string          `json:"info"`
}

type notification struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

type listResult struct {
	State         string             `json:"state"`
	Contacts      []contact.Contact  `json:"contacts"`
	Pagination    contact.Pagination `json:"pagination"`
	Query         string             `json:"query"`
	Notifications []notification     `json:"notifications"`
	Form          struct {
		Open   bool                `json:"open"`
		Values contact.Contact     `json:"values"`
		Errors contact.FieldErrors `json:"errors"`
	} `json:"form"`
}

type editResult struct {
	State         string              `json:"state"`
	ID            contact.ID          `json:"id"`
	Values        contact.Contact     `json:"values"`
	Errors        contact.FieldErrors `json:"errors"`
	Redirect      string              `json:"redirect"`
	Notifications []notification      `json:"notifications"`
}

func newTestServer(t *testing.T, svc contact.Service, options ...httpserver.Options) *httpserver.Server {
	t.Helper()
	options = append([]httpserver.Options{
		httpserver.WithConfig(&config.Config{}),
		httpserver.WithContactService(svc),
	}, options...)

	server, err := httpserver.New(options...)
	require.NoError(t, err)
	t.Cleanup(func() { server.Sessions.Close() })
	return server
}

// session replays the session cookie set by the first response on every
// later request.
type session struct {
	t       *testing.T
	server  *httpserver.Server
	cookies []*http.Cookie
}

func newSession(t *testing.T, server *httpserver.Server) *session {
	return &session{t: t, server: server}
}

func (s *session) do(req *http.Request) *httptest.ResponseRecorder {
	s.t.Helper()
	for _, c := range s.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.server.ServeHTTP(rec, req)
	if cookies := rec.Result().Cookies(); len(cookies) > 0 {
		s.cookies = cookies
	}
	return rec
}

// mount opens the list for a new session, answering its first-page fetch with
// contacts.
func (s *session) mount(svc *MockContactService, contacts ...contact.Contact) {
	s.t.Helper()
	svc.On("ListContacts", mock.Anything, contact.ListParams{Page: 1, Limit: 5}).
		Return(contact.Page{Contacts: contacts, Total: len(contacts)}, nil).Once()
	rec := s.send(http.MethodGet, "/ui/contacts", "")
	require.Equal(s.t, http.StatusOK, rec.Code)
}

func (s *session) send(method, path string, body string) *httptest.ResponseRecorder {
	s.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.do(req)
}

func (s *session) upload(filename, mediaType string, content []byte) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", mediaType)
	part, err := w.CreatePart(h)
	require.NoError(s.t, err)
	_, err = part.Write(content)
	require.NoError(s.t, err)
	require.NoError(s.t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/ui/contacts/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return s.do(req)
}

func decodeAPIResponse(t *testing.T, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func decodeAPIResult(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) apiResponse {
	t.Helper()
	resp := decodeAPIResponse(t, rec)
	require.NoError(t, json.Unmarshal(resp.Result, out))
	return resp
}

func spreadsheet(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"name", "email", "phone"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Alice", "alice@example.com", "1234567890"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func alice() contact.Contact {
	return contact.Contact{ID: "1", Name: "Alice", Email: "alice@example.com", Phone: "1234567890"}
}
