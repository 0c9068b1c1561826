package contact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"contactsui/errs"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	ErrInvalidContact = errs.Errorf(errs.EINVALID, "invalid contact")
	ErrIDRequired     = errs.Errorf(errs.EINVALID, "contact id is required")
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// Field messages shown next to the offending input.
const (
	MsgNameRequired  = "Please enter the name!"
	MsgEmailRequired = "Please enter the email!"
	MsgEmailInvalid  = "Please enter a valid email!"
	MsgPhoneRequired = "Please enter the phone number!"
	MsgPhoneInvalid  = "Phone number must be exactly 10 digits!"
)

// ID is the server-assigned contact identifier. The API may send it as a
// JSON string or a JSON number; both decode to the same textual form.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*id = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("contact: id must be a string or a number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

type Contact struct {
	ID    ID     `json:"id,omitempty"`
	Name  string `json:"name" validate:"required,notblank"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,phone10"`
}

// FieldErrors maps a field name to the message rendered for it.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "contact: invalid " + strings.Join(fields, ", ")
}

func (fe FieldErrors) Unwrap() error {
	return ErrInvalidContact
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("phone10", validatePhone)
	return v
}

func validatePhone(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	return phonePattern.MatchString(fl.Field().String())
}

// Validate applies the rules used when a contact is created: a non-blank name,
// a syntactically valid email and a phone of exactly 10 digits.
func (c Contact) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	ves, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fe := FieldErrors{}
	for _, e := range ves {
		if _, seen := fe[e.Field()]; seen {
			continue
		}
		fe[e.Field()] = fieldMessage(e.Field(), e.Tag())
	}
	return fe
}

// ValidateRequired only checks that every field holds something other than
// whitespace. The edit form uses it.
func (c Contact) ValidateRequired() error {
	fe := FieldErrors{}
	if strings.TrimSpace(c.Name) == "" {
		fe["name"] = MsgNameRequired
	}
	if strings.TrimSpace(c.Email) == "" {
		fe["email"] = MsgEmailRequired
	}
	if strings.TrimSpace(c.Phone) == "" {
		fe["phone"] = MsgPhoneRequired
	}
	if len(fe) > 0 {
		return fe
	}
	return nil
}

func fieldMessage(field, tag string) string {
	switch field {
	case "name":
		return MsgNameRequired
	case "email":
		if tag == "email" {
			return MsgEmailInvalid
		}
		return MsgEmailRequired
	case "phone":
		if tag == "phone10" {
			return MsgPhoneInvalid
		}
		return MsgPhoneRequired
	}
	return field + " failed on " + tag
}
