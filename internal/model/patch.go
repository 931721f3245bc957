package model

// Patch holds replacement values for an update. A blank value means
// "no change".
type Patch struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Category    string `json:"category"`
}

// Changes returns the fields that will actually be written, in write order.
// A quantity that is not all digits is dropped without error.
func (p Patch) Changes() [][2]string {
	var out [][2]string
	if p.Description != "" {
		out = append(out, [2]string{FieldDescription, p.Description})
	}
	if IsDigits(p.Quantity) {
		out = append(out, [2]string{FieldQuantity, p.Quantity})
	}
	if p.Category != "" {
		out = append(out, [2]string{FieldCategory, p.Category})
	}

	return out
}
