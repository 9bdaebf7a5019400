package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
)

const amountScale = 2

// maxAmount is the first value that no longer fits NUMERIC(18,2).
var maxAmount = decimal.New(1, 16)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

type categoryForm struct {
	Name string `json:"name" validate:"required,max=100"`
}

type transactionForm struct {
	Amount     *decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Type       *TransactionType `json:"type" validate:"required,oneof=0 1"`
	CategoryID *uuid.UUID       `json:"categoryId" validate:"required"`
	Notes      *string          `json:"notes" validate:"omitempty,max=250"`
}

type transactionPatchForm struct {
	Amount *decimal.Decimal `json:"amount" validate:"omitempty,gt=0"`
	Type   *TransactionType `json:"type" validate:"omitempty,oneof=0 1"`
	Notes  *string          `json:"notes" validate:"omitempty,max=250"`
}

// normalizeCategoryName trims the name and checks it is non-empty and
// at most 100 characters.
func normalizeCategoryName(name string) (string, error) {
	form := categoryForm{Name: strings.TrimSpace(name)}
	if err := structError(validate.Struct(form)); err != nil {
		return "", err
	}
	return form.Name, nil
}

// normalizeAmount rounds to cents so validation sees the value that will
// be stored.
func normalizeAmount(amount *decimal.Decimal) *decimal.Decimal {
	if amount == nil {
		return nil
	}
	rounded := amount.Round(amountScale)
	return &rounded
}

// validateTransactionCreate checks a full transaction input. Every field
// problem is reported at once.
func validateTransactionCreate(input TransactionInput) error {
	form := transactionForm{
		Amount:     normalizeAmount(input.Amount),
		Type:       input.Type,
		CategoryID: input.CategoryID,
		Notes:      input.Notes,
	}
	verr := &apperrors.ValidationError{}
	collect(verr, validate.Struct(form))
	if form.CategoryID != nil && *form.CategoryID == uuid.Nil {
		verr.Add("categoryId", "is required")
	}
	checkAmountRange(verr, form.Amount)
	return verr.OrNil()
}

// validateTransactionPatch checks only the fields an update sets.
func validateTransactionPatch(input TransactionInput) error {
	form := transactionPatchForm{
		Amount: normalizeAmount(input.Amount),
		Type:   input.Type,
		Notes:  input.Notes,
	}
	verr := &apperrors.ValidationError{}
	collect(verr, validate.Struct(form))
	if input.CategoryID != nil && *input.CategoryID == uuid.Nil {
		verr.Add("categoryId", "must be a category id")
	}
	checkAmountRange(verr, form.Amount)
	return verr.OrNil()
}

func checkAmountRange(verr *apperrors.ValidationError, amount *decimal.Decimal) {
	if amount != nil && amount.Abs().GreaterThanOrEqual(maxAmount) {
		verr.Add("amount", "is too large")
	}
}

func structError(err error) error {
	verr := &apperrors.ValidationError{}
	collect(verr, err)
	return verr.OrNil()
}

func collect(verr *apperrors.ValidationError, err error) {
	if err == nil {
		return
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		verr.Add("input", err.Error())
		return
	}
	for _, fe := range fieldErrors {
		verr.Add(fe.Field(), fieldMessage(fe))
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be Expense or Income"
	default:
		return "is invalid"
	}
}
