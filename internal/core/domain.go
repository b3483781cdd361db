package core

import (
	"errors"
	"strings"
)

const (
	PaymentCash    PaymentType = "cash"
	PaymentNonCash PaymentType = "non-cash"
)

type (
	// PaymentType distinguishes how an expense was paid.
	PaymentType string

	// Category labels expenses. Default categories are seeded on first
	// use; user-created ones carry IsDefault=false.
	Category struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		IsDefault bool   `json:"isDefault"`
	}

	// Term is one bounded budgeting period. The currency is fixed at
	// creation from the global preference and changes only through an
	// explicit update.
	Term struct {
		ID        string `json:"id"`
		StartDate Date   `json:"startDate"`
		EndDate   Date   `json:"endDate"`
		Budget    Money  `json:"budget"`
		Currency  string `json:"currency"`
	}

	// Expense is a single spending record attached to exactly one term
	// and one category.
	Expense struct {
		ID         string      `json:"id"`
		TermID     string      `json:"termId"`
		Amount     Money       `json:"amount"`
		CategoryID string      `json:"categoryId"`
		Type       PaymentType `json:"type"`
		Date       Date        `json:"date"`
		Note       string      `json:"note"`
	}
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidPayment  = errors.New("invalid payment type")
	ErrInvalidCurrency = errors.New("invalid currency code")
	ErrEmptyName       = errors.New("empty name")
	ErrDateRange       = errors.New("end date before start date")
)

func (p PaymentType) Validate() error {
	switch p {
	case PaymentCash, PaymentNonCash:
		return nil
	default:
		return ErrInvalidPayment
	}
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (t Term) Validate() error {
	if err := t.StartDate.Validate(); err != nil {
		return err
	}
	if err := t.EndDate.Validate(); err != nil {
		return err
	}
	if t.EndDate.Before(t.StartDate.Time) {
		return ErrDateRange
	}
	if err := t.Budget.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Currency) == "" {
		return ErrInvalidCurrency
	}
	return nil
}

// Contains reports whether d falls within the term's date range, both
// ends inclusive.
func (t Term) Contains(d Date) bool {
	return !d.Before(t.StartDate.Time) && !d.After(t.EndDate.Time)
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if err := e.Type.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.CategoryID) == "" {
		return ErrEmptyName
	}
	return nil
}
