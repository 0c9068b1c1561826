package httpserver

import (
	"errors"
	"mime"
	"net/http"

	"contactsui/contact"
	"contactsui/contactui"
	"contactsui/errs"
	"contactsui/pkg/urlparams"

	"github.com/labstack/echo/v4"
)

const (
	// editSentinel is the path segment that precedes a contact id on edit routes.
	editSentinel = "edit-contact"

	contactUploadField = "file"
)

var errFileRequired = errs.Errorf(errs.EINVALID, "Please choose a file to upload!")

type listResult struct {
	contactui.ListView
	Form          contactui.Form           `json:"form"`
	Notifications []contactui.Notification `json:"notifications"`
}

type editResult struct {
	contactui.EditView
	Redirect      string                   `json:"redirect,omitempty"`
	Notifications []contactui.Notification `json:"notifications"`
}

func (s *Server) RegisterContactRoutes(g *echo.Group) {
	g.GET("/contacts", s.handleShowContacts)
	g.POST("/contacts/page", s.handlePaginate)
	g.POST("/contacts/search", s.handleSearch)
	g.DELETE("/contacts/:id", s.handleDeleteContact)
	g.POST("/contacts/upload", s.handleUpload)
	g.POST("/contacts/modal", s.handleOpenModal)
	g.DELETE("/contacts/modal", s.handleCancelModal)
	g.POST("/contacts", s.handleAddContact)
	g.GET("/"+editSentinel+"/*", s.handleShowEditContact)
	g.PUT("/"+editSentinel+"/*", s.handleUpdateContact)
}

// listWorkspace returns the session's workspace, mounting the list first when
// the session is new.
func (s *Server) listWorkspace(c echo.Context) *contactui.Workspace {
	ws, created := s.Sessions.Workspace(c)
	if created {
		_ = ws.List.Load(c.Request().Context())
	}
	return ws
}

func (s *Server) handleShowContacts(c echo.Context) error {
	return s.respondList(c, s.listWorkspace(c), nil)
}

func (s *Server) handlePaginate(c echo.Context) error {
	var req PaginateRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ws := s.listWorkspace(c)
	err := ws.List.Paginate(c.Request().Context(), req.Page, req.PageSize)
	return s.respondList(c, ws, err)
}

func (s *Server) handleSearch(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ws := s.listWorkspace(c)
	err := ws.List.SearchAndWait(c.Request().Context(), req.Query)
	return s.respondList(c, ws, err)
}

func (s *Server) handleDeleteContact(c echo.Context) error {
	id := contact.ID(c.Param("id"))
	if id == "" {
		return contact.ErrIDRequired
	}

	ws := s.listWorkspace(c)
	err := ws.List.Delete(c.Request().Context(), id)
	return s.respondList(c, ws, err)
}

func (s *Server) handleUpload(c echo.Context) error {
	fh, err := c.FormFile(contactUploadField)
	if err != nil {
		return errFileRequired
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	mediaType := fh.Header.Get(echo.HeaderContentType)
	if parsed, _, err := mime.ParseMediaType(mediaType); err == nil {
		mediaType = parsed
	}

	ws := s.listWorkspace(c)
	err = ws.Upload.Upload(c.Request().Context(), contact.Upload{
		Filename:  fh.Filename,
		MediaType: mediaType,
		Content:   f,
	})
	return s.respondList(c, ws, err)
}

func (s *Server) handleOpenModal(c echo.Context) error {
	ws := s.listWorkspace(c)
	ws.Create.Open()
	return s.respondList(c, ws, nil)
}

func (s *Server) handleCancelModal(c echo.Context) error {
	ws := s.listWorkspace(c)
	ws.Create.Cancel()
	return s.respondList(c, ws, nil)
}

func (s *Server) handleAddContact(c echo.Context) error {
	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	ws := s.listWorkspace(c)
	err := ws.Create.Submit(c.Request().Context(), req.ToContact())
	if err == nil {
		return writeSuccess(c, http.StatusCreated, s.listResult(ws))
	}
	return s.respondList(c, ws, err)
}

func (s *Server) handleShowEditContact(c echo.Context) error {
	id, err := editContactID(c)
	if err != nil {
		return err
	}

	ws, _ := s.Sessions.Workspace(c)
	e, err := ws.Edit(id, &contactui.Redirect{})
	if err != nil {
		return err
	}
	err = e.Activate(c.Request().Context())
	return s.respondEdit(c, ws, e, nil, err)
}

func (s *Server) handleUpdateContact(c echo.Context) error {
	id, err := editContactID(c)
	if err != nil {
		return err
	}
	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	ws, _ := s.Sessions.Workspace(c)
	redirect := &contactui.Redirect{}
	e, err := ws.Edit(id, redirect)
	if err != nil {
		return err
	}
	err = e.Submit(c.Request().Context(), req.ToContact())
	return s.respondEdit(c, ws, e, redirect, err)
}

// editContactID reads the id that follows the edit-contact segment of the
// request path.
func editContactID(c echo.Context) (contact.ID, error) {
	id, err := urlparams.Single(c.Request().URL.Path, editSentinel)
	if err != nil {
		if errors.Is(err, urlparams.ErrNoIdentifier) {
			return "", contact.ErrIDRequired
		}
		return "", err
	}
	return contact.ID(id), nil
}

func (s *Server) listResult(ws *contactui.Workspace) listResult {
	return listResult{
		ListView:      ws.List.View(),
		Form:          ws.Create.Form(),
		Notifications: ws.Notifications.Drain(),
	}
}

// respondList renders the list view. Controllers have already logged and
// notified err, so only rejected input changes the status.
func (s *Server) respondList(c echo.Context, ws *contactui.Workspace, err error) error {
	if errs.ErrorCode(err) == errs.EINVALID {
		return writeRejected(c, http.StatusBadRequest, err, s.listResult(ws))
	}
	return writeSuccess(c, http.StatusOK, s.listResult(ws))
}

func (s *Server) respondEdit(c echo.Context, ws *contactui.Workspace, e *contactui.EditController, redirect *contactui.Redirect, err error) error {
	result := editResult{
		EditView:      e.View(),
		Notifications: ws.Notifications.Drain(),
	}
	if redirect != nil {
		result.Redirect, _ = redirect.Target()
	}

	if errs.ErrorCode(err) == errs.EINVALID {
		return writeRejected(c, http.StatusBadRequest, err, result)
	}
	return writeSuccess(c, http.StatusOK, result)
}
