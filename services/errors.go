package services

import "errors"

// ErrEmptyCart rejects a checkout attempt before any mutation happens.
var ErrEmptyCart = errors.New("cart is empty")

// FieldErrors carries a per-field validation error map. A handler receiving
// one responds 400 with the map; nothing was mutated.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	return "validation failed"
}

// AsFieldErrors unwraps err into a FieldErrors map when it is one.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
