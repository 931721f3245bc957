package article

import (
	"errors"
)

var (
	ErrInvalid  = errors.New("invalid article")
	ErrNotFound = errors.New("article not found")
)

// Outcome is the result kind of an article operation.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeInvalid
	OutcomeNotFound
	OutcomeStoreFault
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeNotFound:
		return "not_found"
	default:
		return "store_fault"
	}
}

// OutcomeOf classifies an error returned by Service. Anything that is not a
// validation or lookup failure came from the store.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrInvalid):
		return OutcomeInvalid
	case errors.Is(err, ErrNotFound):
		return OutcomeNotFound
	default:
		return OutcomeStoreFault
	}
}
