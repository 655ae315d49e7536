// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Veraticus/tally/internal/common"
	"github.com/shopspring/decimal"
)

// DateLayout is the textual form of a transaction date.
const DateLayout = "2006-01-02"

// Kind indicates whether a transaction adds to or draws from the balance.
type Kind string

const (
	// KindIncome represents money coming in.
	KindIncome Kind = "income"
	// KindExpense represents money going out.
	KindExpense Kind = "expense"
)

// ParseKind converts user or file input into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("%w: unknown transaction kind %q", common.ErrInvalidArgument, s)
	}
	return k, nil
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

func (k Kind) String() string {
	return string(k)
}

// Transaction is a single income or expense event. A Transaction is never
// modified after construction; mistakes are corrected with a compensating entry.
type Transaction struct {
	Date     time.Time
	Category string
	Kind     Kind
	Amount   decimal.Decimal
}

// NewTransaction builds a validated Transaction. The category is normalized and
// a zero date defaults to today.
func NewTransaction(amount decimal.Decimal, category string, kind Kind, date time.Time) (Transaction, error) {
	if !kind.Valid() {
		return Transaction{}, fmt.Errorf("%w: unknown transaction kind %q", common.ErrInvalidArgument, kind)
	}
	if amount.IsNegative() {
		return Transaction{}, fmt.Errorf("%w: amount %s is negative", common.ErrInvalidArgument, amount)
	}
	if date.IsZero() {
		date = time.Now()
	}

	return Transaction{
		Date:     DateOf(date),
		Category: NormalizeCategory(category),
		Kind:     kind,
		Amount:   amount,
	}, nil
}

// IsExpense reports whether the transaction draws from the balance.
func (t Transaction) IsExpense() bool {
	return t.Kind == KindExpense
}

// Signed returns the amount as it affects the balance.
func (t Transaction) Signed() decimal.Decimal {
	if t.IsExpense() {
		return t.Amount.Neg()
	}
	return t.Amount
}

// DateString returns the date in YYYY-MM-DD form.
func (t Transaction) DateString() string {
	return t.Date.Format(DateLayout)
}

// InMonth reports whether the transaction falls in the given calendar month.
func (t Transaction) InMonth(year int, month time.Month) bool {
	y, m, _ := t.Date.Date()
	return y == year && m == month
}

// Equal compares transactions by value. Amounts compare numerically, so
// 150.5 and 150.50 are equal.
func (t Transaction) Equal(other Transaction) bool {
	return t.Kind == other.Kind &&
		t.Category == other.Category &&
		t.DateString() == other.DateString() &&
		t.Amount.Equal(other.Amount)
}

// ParseAmount parses a non-negative decimal amount such as "12.50" or "$12.50".
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: amount is empty", common.ErrInvalidArgument)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q is not a number", common.ErrInvalidArgument, s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: amount %s is negative", common.ErrInvalidArgument, d)
	}
	return d, nil
}

// AmountFromFloat converts a float, rejecting NaN, infinities and negatives.
func AmountFromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("%w: amount %v is not finite", common.ErrInvalidArgument, f)
	}
	if f < 0 {
		return decimal.Zero, fmt.Errorf("%w: amount %v is negative", common.ErrInvalidArgument, f)
	}
	return decimal.NewFromFloat(f), nil
}

// DateOf truncates t to midnight of its calendar day in t's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDate parses a YYYY-MM-DD date in the local time zone.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", common.ErrInvalidArgument, s)
	}
	return d, nil
}
