// Package employee defines the employee record, the form payloads sent to
// the API, and the service layer that sits between the TUI and the API.
package employee

import (
	"context"
	"strings"
)

// RoleEmployee is the only role this console creates or edits.
const RoleEmployee = "employee"

// Field names a form field. Values match the API's JSON keys.
type Field string

const (
	FieldName     Field = "name"
	FieldEmail    Field = "email"
	FieldPhoneNo  Field = "phoneNo"
	FieldPassword Field = "password"
	FieldRole     Field = "role"
)

// Fields lists the user-editable fields in display order.
var Fields = []Field{FieldName, FieldEmail, FieldPhoneNo, FieldPassword}

// Label returns the human-readable field label.
func (f Field) Label() string {
	switch f {
	case FieldName:
		return "Name"
	case FieldEmail:
		return "Email"
	case FieldPhoneNo:
		return "Phone No"
	case FieldPassword:
		return "Password"
	case FieldRole:
		return "Role"
	}
	return string(f)
}

// Mode says whether a form creates a new employee or edits an existing one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// Record is an employee as returned by the API.
type Record struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	PhoneNo string `json:"phoneNo"`
	Role    string `json:"role"`
}

// FormState is the editable state of the employee dialog.
type FormState struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhoneNo  string `json:"phoneNo"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// EmptyForm returns the create-mode defaults.
func EmptyForm() FormState {
	return FormState{Role: RoleEmployee}
}

// FormFromRecord pre-fills a form from rec. The password is always blank.
func FormFromRecord(rec Record) FormState {
	role := rec.Role
	if role == "" {
		role = RoleEmployee
	}
	return FormState{
		Name:    rec.Name,
		Email:   rec.Email,
		PhoneNo: rec.PhoneNo,
		Role:    role,
	}
}

// Get returns the value of f.
func (s FormState) Get(f Field) string {
	switch f {
	case FieldName:
		return s.Name
	case FieldEmail:
		return s.Email
	case FieldPhoneNo:
		return s.PhoneNo
	case FieldPassword:
		return s.Password
	case FieldRole:
		return s.Role
	}
	return ""
}

// Set assigns f. The role is fixed and cannot be changed through Set.
func (s *FormState) Set(f Field, value string) {
	switch f {
	case FieldName:
		s.Name = value
	case FieldEmail:
		s.Email = value
	case FieldPhoneNo:
		s.PhoneNo = value
	case FieldPassword:
		s.Password = value
	}
}

// Normalize trims surrounding whitespace from the text fields. The password
// is left untouched.
func (s FormState) Normalize() FormState {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.PhoneNo = strings.TrimSpace(s.PhoneNo)
	if s.Role == "" {
		s.Role = RoleEmployee
	}
	return s
}

// CreatePayload is the body of a create request.
type CreatePayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhoneNo  string `json:"phoneNo"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdatePayload is the body of an update request. It has no password field,
// so an edit can never send one.
type UpdatePayload struct {
	ID      string `json:"userId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	PhoneNo string `json:"phoneNo"`
	Role    string `json:"role"`
}

// CreatePayloadFrom builds a create payload from a normalized form.
func CreatePayloadFrom(s FormState) CreatePayload {
	s = s.Normalize()
	return CreatePayload{
		Name:     s.Name,
		Email:    s.Email,
		PhoneNo:  s.PhoneNo,
		Password: s.Password,
		Role:     RoleEmployee,
	}
}

// UpdatePayloadFrom builds an update payload for the record id.
func UpdatePayloadFrom(id string, s FormState) UpdatePayload {
	s = s.Normalize()
	return UpdatePayload{
		ID:      id,
		Name:    s.Name,
		Email:   s.Email,
		PhoneNo: s.PhoneNo,
		Role:    RoleEmployee,
	}
}

// Mutator performs the two mutations the employee dialog needs.
type Mutator interface {
	Create(ctx context.Context, p CreatePayload) (*Record, error)
	Update(ctx context.Context, p UpdatePayload) (*Record, error)
}

// API is the full remote employee API.
type API interface {
	Mutator
	List(ctx context.Context) ([]Record, error)
}
