package apiclient_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"contactsui/apiclient"
	"contactsui/contact"

	"github.com/google/go-cmp/cmp"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactRepository_ListContacts(t *testing.T) {
	t.Run("should send page, limit and search and decode the page", func(t *testing.T) {
		srv := newUpstream(t, func(e *echo.Echo) {
			e.GET("/api/contacts", func(c echo.Context) error {
				assert.Equal(t, "2", c.QueryParam("page"))
				assert.Equal(t, "5", c.QueryParam("limit"))
				assert.Equal(t, "ann lee", c.QueryParam("search"))
				return c.JSONBlob(http.StatusOK, []byte(`{
					"contacts": [
						{"id": 11, "name": "Ann Lee", "email": "ann@example.com", "phone": "1234567890"},
						{"id": "abc", "name": "Annie", "email": "annie@example.com", "phone": "0987654321"}
					],
					"total": 7
				}`))
			})
		})
		repo := apiclient.NewContactRepository(newTestClient(t, srv.URL), apiclient.Paths{})

		page, err := repo.ListContacts(context.Background(), contact.ListParams{Page: 2, Limit: 5, Search: "ann lee"})

		require.NoError(t, err)
		want := contact.Page{
			Contacts: []contact.Contact{
				{ID: "11", Name: "Ann Lee", Email: "ann@example.com", Phone: "1234567890"},
				{ID: "abc", Name: "Annie", Email: "annie@example.com", Phone: "0987654321"},
			},
			Total: 7,
		}
		if diff := cmp.Diff(want, page); diff != "" {
			t.Errorf("ListContacts() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should default missing fields to an empty page", func(t *testing.T) {
		srv := newUpstream(t, func(e *echo.Echo) {
			e.GET("/v2/people", func(c echo.Context) error {
				assert.Equal(t, "", c.QueryParam("search"))
				assert.True(t, c.QueryParams().Has("search"))
				return c.JSONBlob(http.StatusOK, []byte(`{}`))
			})
		})
		repo := apiclient.NewContactRepository(newTestClient(t, srv.URL), apiclient.Paths{Contacts: "/v2/people/"})

		page, err := repo.ListContacts(context.Background(), contact.DefaultListParams())

		require.NoError(t, err)
		assert.Equal(t, contact.Page{Contacts: []contact.Contact{}, Total: 0}, page)
	})
}

func TestContactRepository_ItemCalls(t *testing.T) {
	var updated, created map[string]any
	deleted := ""
	srv := newUpstream(t, func(e *echo.Echo) {
		e.GET("/api/contacts/:id", func(c echo.Context) error {
			return c.JSON(http.StatusOK, map[string]string{"name": "Bob", "email": "bob@example.com", "phone": "2345678901"})
		})
		e.PUT("/api/contacts/:id", func(c echo.Context) error {
			assert.Equal(t, "42", c.Param("id"))
			return json.NewDecoder(c.Request().Body).Decode(&updated)
		})
		e.POST("/api/contacts", func(c echo.Context) error {
			if err := json.NewDecoder(c.Request().Body).Decode(&created); err != nil {
				return err
			}
			return c.JSON(http.StatusCreated, map[string]string{"message": "created"})
		})
		e.DELETE("/api/contacts/:id", func(c echo.Context) error {
			deleted = c.Param("id")
			return c.JSON(http.StatusOK, map[string]string{"message": "deleted"})
		})
	})
	repo := apiclient.NewContactRepository(newTestClient(t, srv.URL), apiclient.Paths{})

	t.Run("should get a contact and keep the requested id", func(t *testing.T) {
		c, err := repo.GetContact(context.Background(), "42")

		require.NoError(t, err)
		assert.Equal(t, contact.Contact{ID: "42", Name: "Bob", Email: "bob@example.com", Phone: "2345678901"}, c)
	})

	t.Run("should put only name, email and phone", func(t *testing.T) {
		err := repo.UpdateContact(context.Background(), "42", contact.Contact{ID: "ignored", Name: "Bob", Email: "bob@example.com", Phone: "2345678901"})

		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": "Bob", "email": "bob@example.com", "phone": "2345678901"}, updated)
	})

	t.Run("should post new contacts to the collection", func(t *testing.T) {
		err := repo.CreateContact(context.Background(), contact.Contact{Name: "Cy", Email: "cy@example.com", Phone: "3456789012"})

		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": "Cy", "email": "cy@example.com", "phone": "3456789012"}, created)
	})

	t.Run("should escape ids in the path", func(t *testing.T) {
		err := repo.DeleteContact(context.Background(), "a b")

		require.NoError(t, err)
		assert.Equal(t, "a b", deleted)
	})
}

func TestContactRepository_UploadContacts(t *testing.T) {
	workbook := spreadsheet(t)
	var received []byte
	srv := newUpstream(t, func(e *echo.Echo) {
		e.POST("/api/contacts/upload", func(c echo.Context) error {
			fh, err := c.FormFile(apiclient.UploadField)
			if err != nil {
				return err
			}
			assert.Equal(t, contact.SpreadsheetMIME, fh.Header.Get("Content-Type"))
			f, err := fh.Open()
			if err != nil {
				return err
			}
			defer f.Close()
			received, _ = io.ReadAll(f)
			return c.JSON(http.StatusOK, map[string]string{"message": "uploaded"})
		})
	})
	repo := apiclient.NewContactRepository(newTestClient(t, srv.URL), apiclient.Paths{})

	err := repo.UploadContacts(context.Background(), contact.Upload{
		Filename:  "contacts.xlsx",
		MediaType: contact.SpreadsheetMIME,
		Content:   bytes.NewReader(workbook),
	})

	require.NoError(t, err)
	assert.Equal(t, workbook, received)
}
