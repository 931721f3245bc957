package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArticleValidate(t *testing.T) {
	tests := []struct {
		name    string
		article Article
		want    error
	}{
		{"valid", Article{Description: "Office chairs", Quantity: "12", Category: "Furniture"}, nil},
		{"zero quantity", Article{Description: "Pens", Quantity: "0", Category: "Office"}, nil},
		{"empty description", Article{Quantity: "12", Category: "Furniture"}, ErrEmptyDescription},
		{"empty quantity", Article{Description: "Desk", Category: "Furniture"}, ErrInvalidQuantity},
		{"negative quantity", Article{Description: "Desk", Quantity: "-1", Category: "Furniture"}, ErrInvalidQuantity},
		{"decimal quantity", Article{Description: "Desk", Quantity: "1.5", Category: "Furniture"}, ErrInvalidQuantity},
		{"empty category", Article{Description: "Desk", Quantity: "3"}, ErrEmptyCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.article.Validate())
		})
	}
}

func TestIsDigits(t *testing.T) {
	assert.True(t, IsDigits("0"))
	assert.True(t, IsDigits("007"))
	assert.False(t, IsDigits(""))
	assert.False(t, IsDigits(" 1"))
	assert.False(t, IsDigits("abc"))
	assert.False(t, IsDigits("1e3"))
}

func TestFieldsRoundTrip(t *testing.T) {
	a := &Article{ID: "x", Description: "Office chairs", Quantity: "12", Category: "Furniture"}

	assert.Equal(t, a, FromFields("x", a.Fields()))
}

func TestFromFieldsMissing(t *testing.T) {
	a := FromFields("x", map[string]string{FieldQuantity: "4"})

	assert.Equal(t, &Article{ID: "x", Quantity: "4"}, a)
}

func TestPatchChanges(t *testing.T) {
	assert.Empty(t, Patch{}.Changes())

	assert.Equal(t,
		[][2]string{{FieldDescription, "Sillas"}, {FieldCategory, "Muebles"}},
		Patch{Description: "Sillas", Quantity: "abc", Category: "Muebles"}.Changes(),
	)

	assert.Equal(t,
		[][2]string{{FieldQuantity, "20"}},
		Patch{Quantity: "20"}.Changes(),
	)
}
