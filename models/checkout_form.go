package models

import (
	"fmt"
	"net/mail"
	"strings"
)

// CheckoutForm carries the contact and shipping fields submitted at checkout.
// Validation is explicit rather than tag-driven so the same rules serve the
// progressive /checkout/validate endpoint and the checkout itself.
type CheckoutForm struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	Apartment   string `json:"apartment"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zipcode     string `json:"zipcode"`
	Country     string `json:"country"`
}

const (
	maxNameLen    = 150
	maxEmailLen   = 254
	maxPhoneLen   = 15
	maxAddressLen = 250
	maxZipcodeLen = 20
)

// Trim normalizes submitted values before validation and persistence.
func (f *CheckoutForm) Trim() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.PhoneNumber = strings.TrimSpace(f.PhoneNumber)
	f.Address = strings.TrimSpace(f.Address)
	f.Apartment = strings.TrimSpace(f.Apartment)
	f.City = strings.TrimSpace(f.City)
	f.State = strings.TrimSpace(f.State)
	f.Zipcode = strings.TrimSpace(f.Zipcode)
	f.Country = strings.TrimSpace(f.Country)
}

// Validate returns a field-error map; an empty map means the form is valid.
func (f *CheckoutForm) Validate() map[string]string {
	errs := map[string]string{}
	f.ValidateContact(errs)
	f.ValidateShipping(errs)
	return errs
}

func (f *CheckoutForm) ValidateContact(errs map[string]string) {
	requireBounded(errs, "first_name", f.FirstName, maxNameLen)
	requireBounded(errs, "last_name", f.LastName, maxNameLen)
	requireBounded(errs, "phone_number", f.PhoneNumber, maxPhoneLen)

	switch {
	case f.Email == "":
		errs["email"] = "This field is required"
	case len(f.Email) > maxEmailLen:
		errs["email"] = fmt.Sprintf("Must be at most %d characters", maxEmailLen)
	default:
		if _, err := mail.ParseAddress(f.Email); err != nil {
			errs["email"] = "Enter a valid email address"
		}
	}
}

func (f *CheckoutForm) ValidateShipping(errs map[string]string) {
	requireBounded(errs, "address", f.Address, maxAddressLen)
	requireBounded(errs, "city", f.City, maxAddressLen)
	requireBounded(errs, "state", f.State, maxAddressLen)
	requireBounded(errs, "zipcode", f.Zipcode, maxZipcodeLen)
	requireBounded(errs, "country", f.Country, maxAddressLen)

	// Apartment is the one optional shipping field.
	if len(f.Apartment) > maxAddressLen {
		errs["apartment"] = fmt.Sprintf("Must be at most %d characters", maxAddressLen)
	}
}

func requireBounded(errs map[string]string, field, value string, max int) {
	if value == "" {
		errs[field] = "This field is required"
		return
	}
	if len(value) > max {
		errs[field] = fmt.Sprintf("Must be at most %d characters", max)
	}
}
