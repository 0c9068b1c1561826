package httpserver

import "contactsui/contact"

type PaginateRequest struct {
	Page     int `json:"page" validate:"min=1"`
	PageSize int `json:"pageSize" validate:"min=1,max=100"`
}

type SearchRequest struct {
	Query string `json:"query" validate:"max=200"`
}

type ContactRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (r ContactRequest) ToContact() contact.Contact {
	return contact.Contact{
		Name:  r.Name,
		Email: r.Email,
		Phone: r.Phone,
	}
}
