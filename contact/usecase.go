package contact

import (
	"context"
	"strings"
)

type Service interface {
	ListContacts(ctx context.Context, p ListParams) (Page, error)
	GetContact(ctx context.Context, id ID) (Contact, error)
	AddContact(ctx context.Context, c Contact) error
	UpdateContact(ctx context.Context, id ID, c Contact) error
	DeleteContact(ctx context.Context, id ID) error
	UploadContacts(ctx context.Context, u Upload) error
}

type Repository interface {
	ListContacts(ctx context.Context, p ListParams) (Page, error)
	GetContact(ctx context.Context, id ID) (Contact, error)
	CreateContact(ctx context.Context, c Contact) error
	UpdateContact(ctx context.Context, id ID, c Contact) error
	DeleteContact(ctx context.Context, id ID) error
	UploadContacts(ctx context.Context, u Upload) error
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) ListContacts(ctx context.Context, p ListParams) (Page, error) {
	return uc.r.ListContacts(ctx, p.Normalize())
}

func (uc *Usecase) GetContact(ctx context.Context, id ID) (Contact, error) {
	if strings.TrimSpace(string(id)) == "" {
		return Contact{}, ErrIDRequired
	}
	return uc.r.GetContact(ctx, id)
}

func (uc *Usecase) AddContact(ctx context.Context, c Contact) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return uc.r.CreateContact(ctx, c)
}

func (uc *Usecase) UpdateContact(ctx context.Context, id ID, c Contact) error {
	if strings.TrimSpace(string(id)) == "" {
		return ErrIDRequired
	}
	if err := c.ValidateRequired(); err != nil {
		return err
	}
	return uc.r.UpdateContact(ctx, id, c)
}

func (uc *Usecase) DeleteContact(ctx context.Context, id ID) error {
	if strings.TrimSpace(string(id)) == "" {
		return ErrIDRequired
	}
	return uc.r.DeleteContact(ctx, id)
}

func (uc *Usecase) UploadContacts(ctx context.Context, u Upload) error {
	if err := u.Validate(); err != nil {
		return err
	}
	return uc.r.UploadContacts(ctx, u)
}
