package contactui

import (
	"context"
	"errors"
	"strings"
	"sync"

	"contactsui/contact"
	"contactsui/pkg/logger"

	"go.uber.org/zap"
)

// RootPath is where the edit form sends the user after a successful save.
const RootPath = "/"

type EditView struct {
	State  State               `json:"state"`
	ID     contact.ID          `json:"id"`
	Values contact.Contact     `json:"values"`
	Errors contact.FieldErrors `json:"errors,omitempty"`
}

// EditController loads one contact into a form and saves it back.
type EditController struct {
	id        contact.ID
	svc       contact.Service
	notifier  Notifier
	navigator Navigator
	bus       *Bus
	log       *zap.SugaredLogger

	mu     sync.Mutex
	state  State
	values contact.Contact
	errors contact.FieldErrors
}

// NewEditController fails for an empty id rather than producing a form that
// can never load.
func NewEditController(id contact.ID, svc contact.Service, notifier Notifier, navigator Navigator, bus *Bus, log *zap.SugaredLogger) (*EditController, error) {
	if strings.TrimSpace(string(id)) == "" {
		return nil, contact.ErrIDRequired
	}
	if log == nil {
		log = logger.NOOPLogger
	}
	return &EditController{
		id:        id,
		svc:       svc,
		notifier:  notifier,
		navigator: navigator,
		bus:       bus,
		log:       log,
	}, nil
}

// Activate fetches the contact and fills the form with it as returned.
func (e *EditController) Activate(ctx context.Context) error {
	e.setState(StateLoading)

	c, err := e.svc.GetContact(ctx, e.id)
	if err != nil {
		e.log.Errorw("fetching contact failed", "error", err, "id", e.id)
		e.notifier.Error("Failed to fetch contact details.")
		e.setState(StateError)
		return err
	}

	e.mu.Lock()
	e.values = c
	e.errors = nil
	e.state = StateLoaded
	e.mu.Unlock()
	return nil
}

// Submit saves v. On success it navigates to RootPath once and publishes an
// Updated mutation; it never fetches the contact again. On failure the form
// keeps v.
func (e *EditController) Submit(ctx context.Context, v contact.Contact) error {
	v.ID = e.id
	e.mu.Lock()
	e.values = v
	e.errors = nil
	e.mu.Unlock()

	if err := v.ValidateRequired(); err != nil {
		var fe contact.FieldErrors
		if errors.As(err, &fe) {
			e.mu.Lock()
			e.errors = fe
			e.mu.Unlock()
		}
		e.notifier.Error("Please correct the highlighted fields.")
		return err
	}

	e.setState(StateLoading)
	if err := e.svc.UpdateContact(ctx, e.id, v); err != nil {
		e.log.Errorw("updating contact failed", "error", err, "id", e.id)
		e.notifier.Error("Failed to update contact.")
		e.setState(StateLoaded)
		return err
	}
	e.setState(StateLoaded)

	e.notifier.Success("Contact updated successfully!")
	e.navigator.Navigate(RootPath)
	if e.bus != nil {
		e.bus.Publish(ctx, Mutation{Kind: Updated, ID: e.id})
	}
	return nil
}

func (e *EditController) View() EditView {
	e.mu.Lock()
	defer e.mu.Unlock()

	view := EditView{State: e.state, ID: e.id, Values: e.values}
	if e.errors != nil {
		view.Errors = make(contact.FieldErrors, len(e.errors))
		for k, v := range e.errors {
			view.Errors[k] = v
		}
	}
	return view
}

func (e *EditController) setState(s State) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = s
}
