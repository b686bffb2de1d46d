// Package validation checks request shapes at the service boundaries before they
// reach the ledger or the wager engine.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"banking-backoffice/internal/account"
	"banking-backoffice/internal/wager"

	"github.com/go-playground/validator/v10"
)

var ErrInvalid = errors.New("validation_failed")

var ErrEmptyPatch = fmt.Errorf("%w: update must set balance or currency", ErrInvalid)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

var (
	iso      = validator.New()
	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("currency_code", currencyCode); err != nil {
		panic(fmt.Sprintf("validation: register currency_code: %v", err))
	}
	return v
}

// currencyCode accepts three upper case letters that are an ISO 4217 code or the
// devalued currency, which is not one.
func currencyCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if !currencyPattern.MatchString(code) {
		return false
	}
	if code == wager.DevaluedCurrency {
		return true
	}
	return iso.Var(code, "iso4217") == nil
}

// Error lists the failing fields by their json names.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid " + strings.Join(parts, ", ")
}

func (e *Error) Unwrap() error { return ErrInvalid }

type CreateAccountRequest struct {
	Currency string `json:"currency" validate:"required,currency_code"`
}

func (r CreateAccountRequest) Validate() error {
	return check(r)
}

type UpdateAccountRequest struct {
	Balance  *float64 `json:"balance"`
	Currency *string  `json:"currency" validate:"omitempty,currency_code"`
}

// Patch validates the request and converts it. A blank currency counts as absent.
func (r UpdateAccountRequest) Patch() (account.Patch, error) {
	if r.Currency != nil && strings.TrimSpace(*r.Currency) == "" {
		r.Currency = nil
	}
	if r.Balance == nil && r.Currency == nil {
		return account.Patch{}, ErrEmptyPatch
	}
	if err := check(r); err != nil {
		return account.Patch{}, err
	}
	var p account.Patch
	if r.Balance != nil {
		p.Balance = account.Some(*r.Balance)
	}
	if r.Currency != nil {
		p.Currency = account.Some(*r.Currency)
	}
	return p, nil
}

// Currency validates a bare currency code, as used by query filters.
func Currency(code string) error {
	if err := validate.Var(code, "required,currency_code"); err != nil {
		return &Error{Fields: map[string]string{"currency": describe(err)}}
	}
	return nil
}

func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return &Error{Fields: map[string]string{"body": err.Error()}}
	}
	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		fields[jsonName(fe.Field())] = describeField(fe)
	}
	return &Error{Fields: fields}
}

func describe(err error) string {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		return describeField(errs[0])
	}
	return err.Error()
}

func describeField(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "currency_code":
		return fmt.Sprintf("%q is not a three letter ISO 4217 code", fe.Value())
	default:
		return "failed " + fe.Tag()
	}
}

func jsonName(field string) string {
	return strings.ToLower(field)
}
