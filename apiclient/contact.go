package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"contactsui/contact"
)

const (
	DefaultContactsPath = "/api/contacts"
	DefaultUploadPath   = "/api/contacts/upload"

	// UploadField is the multipart field carrying the spreadsheet.
	UploadField = "file"
)

var _ contact.Repository = (*ContactRepository)(nil)

type Paths struct {
	Contacts string
	Upload   string
}

// ContactRepository implements contact.Repository against the remote API.
type ContactRepository struct {
	client *Client
	paths  Paths
}

func NewContactRepository(client *Client, paths Paths) *ContactRepository {
	if paths.Contacts == "" {
		paths.Contacts = DefaultContactsPath
	}
	if paths.Upload == "" {
		paths.Upload = DefaultUploadPath
	}
	paths.Contacts = strings.TrimRight(paths.Contacts, "/")

	return &ContactRepository{client: client, paths: paths}
}

type listResponse struct {
	Contacts []contact.Contact `json:"contacts"`
	Total    int               `json:"total"`
}

// contactPayload is the body of create and update calls; the id travels in
// the path, never in the body.
type contactPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func newContactPayload(c contact.Contact) contactPayload {
	return contactPayload{Name: c.Name, Email: c.Email, Phone: c.Phone}
}

func (r *ContactRepository) ListContacts(ctx context.Context, p contact.ListParams) (contact.Page, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("limit", strconv.Itoa(p.Limit))
	q.Set("search", p.Search)

	var resp listResponse
	if err := r.client.Call(ctx, r.paths.Contacts+"?"+q.Encode(), http.MethodGet, nil, &resp); err != nil {
		return contact.Page{}, fmt.Errorf("listing contacts: %w", err)
	}

	page := contact.Page{Contacts: resp.Contacts, Total: resp.Total}
	if page.Contacts == nil {
		page.Contacts = []contact.Contact{}
	}
	if page.Total < 0 {
		page.Total = 0
	}
	return page, nil
}

func (r *ContactRepository) GetContact(ctx context.Context, id contact.ID) (contact.Contact, error) {
	var c contact.Contact
	if err := r.client.Call(ctx, r.itemPath(id), http.MethodGet, nil, &c); err != nil {
		return contact.Contact{}, fmt.Errorf("getting contact %q: %w", id, err)
	}
	if c.ID == "" {
		c.ID = id
	}
	return c, nil
}

func (r *ContactRepository) CreateContact(ctx context.Context, c contact.Contact) error {
	if err := r.client.Call(ctx, r.paths.Contacts, http.MethodPost, newContactPayload(c), nil); err != nil {
		return fmt.Errorf("creating contact: %w", err)
	}
	return nil
}

func (r *ContactRepository) UpdateContact(ctx context.Context, id contact.ID, c contact.Contact) error {
	if err := r.client.Call(ctx, r.itemPath(id), http.MethodPut, newContactPayload(c), nil); err != nil {
		return fmt.Errorf("updating contact %q: %w", id, err)
	}
	return nil
}

func (r *ContactRepository) DeleteContact(ctx context.Context, id contact.ID) error {
	if err := r.client.Call(ctx, r.itemPath(id), http.MethodDelete, nil, nil); err != nil {
		return fmt.Errorf("deleting contact %q: %w", id, err)
	}
	return nil
}

func (r *ContactRepository) UploadContacts(ctx context.Context, u contact.Upload) error {
	f := &File{
		Field:     UploadField,
		Filename:  u.Filename,
		MediaType: u.MediaType,
		Content:   u.Content,
	}
	if err := r.client.Call(ctx, r.paths.Upload, http.MethodPost, f, nil); err != nil {
		return fmt.Errorf("uploading contacts: %w", err)
	}
	return nil
}

func (r *ContactRepository) itemPath(id contact.ID) string {
	return r.paths.Contacts + "/" + url.PathEscape(string(id))
}
