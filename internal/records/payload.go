package records

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Payload is a decoded create or update request body keyed by field name.
type Payload map[string]any

const (
	FieldID          = "id"
	FieldType        = "type"
	FieldAmount      = "amount"
	FieldCurrency    = "currency"
	FieldSender      = "sender"
	FieldReceiver    = "receiver"
	FieldTimestamp   = "timestamp"
	FieldStatus      = "status"
	FieldReference   = "reference"
	FieldDescription = "description"
)

var requiredFields = []string{FieldType, FieldAmount, FieldSender, FieldReceiver}

// stringFields lists the string-valued fields an update may overwrite.
var stringFields = map[string]func(*Transaction) *string{
	FieldType:        func(t *Transaction) *string { return &t.Type },
	FieldCurrency:    func(t *Transaction) *string { return &t.Currency },
	FieldSender:      func(t *Transaction) *string { return &t.Sender },
	FieldReceiver:    func(t *Transaction) *string { return &t.Receiver },
	FieldTimestamp:   func(t *Transaction) *string { return &t.Timestamp },
	FieldStatus:      func(t *Transaction) *string { return &t.Status },
	FieldReference:   func(t *Transaction) *string { return &t.Reference },
	FieldDescription: func(t *Transaction) *string { return &t.Description },
}

func (p Payload) has(field string) bool {
	v, ok := p[field]
	return ok && v != nil
}

func (p Payload) stringOr(field, fallback string) (string, error) {
	if !p.has(field) {
		return fallback, nil
	}
	return coerceString(field, p[field])
}

func coerceString(field string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &ValidationError{Field: field, Reason: fmt.Sprintf("expected a string, got %T", v)}
	}
	return s, nil
}

// ParseAmount coerces a JSON number, a numeric string or a Go numeric value
// into a non-negative amount.
func ParseAmount(v any) (float64, error) {
	var (
		amount float64
		err    error
	)

	switch n := v.(type) {
	case float64:
		amount = n
	case float32:
		amount = float64(n)
	case int:
		amount = float64(n)
	case int64:
		amount = float64(n)
	case int32:
		amount = float64(n)
	case json.Number:
		amount, err = parseDecimal(string(n))
	case string:
		amount, err = parseDecimal(n)
	default:
		return 0, &ValidationError{Field: FieldAmount, Reason: fmt.Sprintf("expected a number, got %T", v)}
	}
	if err != nil {
		return 0, err
	}

	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, &ValidationError{Field: FieldAmount, Reason: "amount must be a finite number"}
	}
	if amount < 0 {
		return 0, &ValidationError{Field: FieldAmount, Reason: "amount must not be negative"}
	}
	return amount, nil
}

func parseDecimal(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, &ValidationError{Field: FieldAmount, Reason: fmt.Sprintf("%q is not numeric", s)}
	}
	return d.InexactFloat64(), nil
}

// apply validates every recognised field in p and only then writes them to
// t, so a rejected update leaves t untouched. The id and unknown keys are
// ignored.
func (p Payload) apply(t *Transaction) error {
	strs := make(map[string]string, len(p))
	var (
		amount    float64
		hasAmount bool
	)

	for field, v := range p {
		if field == FieldAmount {
			a, err := ParseAmount(v)
			if err != nil {
				return err
			}
			amount, hasAmount = a, true
			continue
		}
		if _, known := stringFields[field]; !known {
			continue
		}
		s, err := coerceString(field, v)
		if err != nil {
			return err
		}
		strs[field] = s
	}

	for field, s := range strs {
		*stringFields[field](t) = s
	}
	if hasAmount {
		t.Amount = amount
	}
	return nil
}
