package widget

import (
	"strings"

	"krib/models"
)

// ValidateCustomerForm checks the customer form against the contractor's
// required-field settings. It is pure and synchronous; the returned map is
// empty when the form is valid.
func ValidateCustomerForm(form models.CustomerForm, requirePhone, requireAddress bool) ValidationErrors {
	errs := ValidationErrors{}

	if strings.TrimSpace(form.Name) == "" {
		errs["name"] = "Name is required"
	}

	email := strings.TrimSpace(form.Email)
	if email == "" {
		errs["email"] = "Email is required"
	} else if !validEmailShape(email) {
		errs["email"] = "Enter a valid email address"
	}

	if requirePhone && strings.TrimSpace(form.Phone) == "" {
		errs["phone"] = "Phone number is required"
	}
	if requireAddress && strings.TrimSpace(form.Address) == "" {
		errs["address"] = "Service address is required"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validEmailShape checks for the standard local@domain.tld shape: a
// non-empty local part, one "@", and at least one "." in the domain.
func validEmailShape(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
