package contactui

import (
	"context"
	"errors"
	"sync"

	"contactsui/contact"
	"contactsui/pkg/logger"

	"go.uber.org/zap"
)

// Form is the state of a contact form: the entered values and the message
// to render next to each invalid field.
type Form struct {
	Open   bool                `json:"open"`
	Values contact.Contact     `json:"values"`
	Errors contact.FieldErrors `json:"errors,omitempty"`
}

// CreateController backs the add-contact modal.
type CreateController struct {
	svc      contact.Service
	notifier Notifier
	bus      *Bus
	log      *zap.SugaredLogger

	mu   sync.Mutex
	form Form
}

func NewCreateController(svc contact.Service, notifier Notifier, bus *Bus, log *zap.SugaredLogger) *CreateController {
	if log == nil {
		log = logger.NOOPLogger
	}
	return &CreateController{svc: svc, notifier: notifier, bus: bus, log: log}
}

func (c *CreateController) Open() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.Open = true
}

// Cancel closes the modal and discards what was typed.
func (c *CreateController) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = Form{}
}

func (c *CreateController) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyForm(c.form)
}

// Submit validates v and posts it. Invalid input is kept on the form with
// per-field messages and nothing is sent. After a successful create the
// modal closes, the fields are cleared and a Created mutation is published.
// A failed create leaves the modal open with v intact.
func (c *CreateController) Submit(ctx context.Context, v contact.Contact) error {
	c.mu.Lock()
	c.form.Values = v
	c.form.Errors = nil
	c.mu.Unlock()

	if err := v.Validate(); err != nil {
		var fe contact.FieldErrors
		if errors.As(err, &fe) {
			c.mu.Lock()
			c.form.Errors = fe
			c.mu.Unlock()
		}
		c.notifier.Error("Please correct the highlighted fields.")
		return err
	}

	if err := c.svc.AddContact(ctx, v); err != nil {
		c.log.Errorw("adding contact failed", "error", err)
		c.notifier.Error("Failed to add contact.")
		return err
	}

	c.notifier.Success("Contact added successfully!")
	c.mu.Lock()
	c.form = Form{}
	c.mu.Unlock()

	if c.bus != nil {
		c.bus.Publish(ctx, Mutation{Kind: Created})
	}
	return nil
}

func copyForm(f Form) Form {
	if f.Errors != nil {
		errs := make(contact.FieldErrors, len(f.Errors))
		for k, v := range f.Errors {
			errs[k] = v
		}
		f.Errors = errs
	}
	return f
}
