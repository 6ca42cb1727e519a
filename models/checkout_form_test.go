package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func completeForm() CheckoutForm {
	return CheckoutForm{
		FirstName:   "Jan",
		LastName:    "Kowalski",
		Email:       "jan.kowalski@example.com",
		PhoneNumber: "+48123456789",
		Address:     "Marszalkowska 1",
		City:        "Warsaw",
		State:       "Mazovia",
		Zipcode:     "00-001",
		Country:     "Poland",
	}
}

func TestCheckoutForm_Valid(t *testing.T) {
	form := completeForm()
	assert.Empty(t, form.Validate())
}

func TestCheckoutForm_MissingCity(t *testing.T) {
	form := completeForm()
	form.City = ""

	errs := form.Validate()

	assert.Equal(t, "This field is required", errs["city"])
	assert.Len(t, errs, 1)
}

func TestCheckoutForm_ApartmentIsOptional(t *testing.T) {
	form := completeForm()
	form.Apartment = ""
	assert.Empty(t, form.Validate())

	form.Apartment = "Apt 4B"
	assert.Empty(t, form.Validate())
}

func TestCheckoutForm_EveryRequiredFieldReported(t *testing.T) {
	form := CheckoutForm{}

	errs := form.Validate()

	for _, field := range []string{
		"first_name", "last_name", "email", "phone_number",
		"address", "city", "state", "zipcode", "country",
	} {
		assert.Equal(t, "This field is required", errs[field], field)
	}
	assert.NotContains(t, errs, "apartment")
}

func TestCheckoutForm_LengthBounds(t *testing.T) {
	form := completeForm()
	form.FirstName = strings.Repeat("a", 151)
	form.PhoneNumber = strings.Repeat("1", 16)
	form.Address = strings.Repeat("a", 251)
	form.Zipcode = strings.Repeat("1", 21)

	errs := form.Validate()

	assert.Equal(t, "Must be at most 150 characters", errs["first_name"])
	assert.Equal(t, "Must be at most 15 characters", errs["phone_number"])
	assert.Equal(t, "Must be at most 250 characters", errs["address"])
	assert.Equal(t, "Must be at most 20 characters", errs["zipcode"])
}

func TestCheckoutForm_BadEmail(t *testing.T) {
	form := completeForm()
	form.Email = "not-an-email"

	errs := form.Validate()

	assert.Equal(t, "Enter a valid email address", errs["email"])
}

func TestCheckoutForm_TrimNormalizesFields(t *testing.T) {
	form := CheckoutForm{
		FirstName: "  Jan  ",
		City:      " Warsaw ",
		Apartment: " Apt 4B ",
	}

	form.Trim()

	assert.Equal(t, "Jan", form.FirstName)
	assert.Equal(t, "Warsaw", form.City)
	assert.Equal(t, "Apt 4B", form.Apartment)
}

func TestCheckoutForm_ValidateContactOnly(t *testing.T) {
	form := CheckoutForm{
		FirstName:   "Jan",
		LastName:    "Kowalski",
		Email:       "jan.kowalski@example.com",
		PhoneNumber: "+48123456789",
	}

	errs := map[string]string{}
	form.ValidateContact(errs)

	// Shipping fields are not checked by the contact section.
	assert.Empty(t, errs)
}
