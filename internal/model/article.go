package model

import "errors"

// Hash field names under an article key.
const (
	FieldDescription = "descripcion"
	FieldQuantity    = "cantidad"
	FieldCategory    = "categoria"
)

var (
	ErrEmptyDescription = errors.New("description is empty")
	ErrInvalidQuantity  = errors.New("quantity must contain only decimal digits")
	ErrEmptyCategory    = errors.New("category is empty")
)

// Article is a budget line item. Quantity is kept as text, it is only
// checked for digits when it is written.
type Article struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Category    string `json:"category"`
}

// Validate checks the fields required to create an article.
func (a *Article) Validate() error {
	if a.Description == "" {
		return ErrEmptyDescription
	}
	if !IsDigits(a.Quantity) {
		return ErrInvalidQuantity
	}
	if a.Category == "" {
		return ErrEmptyCategory
	}

	return nil
}

// Fields returns the hash representation stored under the article key.
func (a *Article) Fields() map[string]string {
	return map[string]string{
		FieldDescription: a.Description,
		FieldQuantity:    a.Quantity,
		FieldCategory:    a.Category,
	}
}

// FromFields builds an article from a stored hash. Missing fields stay empty.
func FromFields(id string, fields map[string]string) *Article {
	return &Article{
		ID:          id,
		Description: fields[FieldDescription],
		Quantity:    fields[FieldQuantity],
		Category:    fields[FieldCategory],
	}
}

// IsDigits reports whether s is a non-empty run of ASCII decimal digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
