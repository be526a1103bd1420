package smsxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/NgigiN/momo/internal/records"
)

type document struct {
	Transactions []element `xml:"transaction"`
}

type element struct {
	ID          string `xml:"id,attr"`
	Type        string `xml:"type"`
	Amount      string `xml:"amount"`
	Currency    string `xml:"currency"`
	Sender      string `xml:"sender"`
	Receiver    string `xml:"receiver"`
	Timestamp   string `xml:"timestamp"`
	Status      string `xml:"status"`
	Reference   string `xml:"reference"`
	Description string `xml:"description"`
}

// Decode reads the <transaction> children of the document root in order.
// Elements with a missing or non-integer id, an invalid amount, or an id
// already seen are skipped and reported in skipped; err is only set when
// the document itself cannot be read.
func Decode(r io.Reader) (txs []records.Transaction, skipped []error, err error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	seen := make(map[int]bool, len(doc.Transactions))
	txs = make([]records.Transaction, 0, len(doc.Transactions))
	for i, el := range doc.Transactions {
		tx, err := el.toTransaction()
		if err != nil {
			skipped = append(skipped, fmt.Errorf("transaction #%d: %w", i+1, err))
			continue
		}
		if seen[tx.ID] {
			skipped = append(skipped, fmt.Errorf("transaction #%d: duplicate id %d", i+1, tx.ID))
			continue
		}
		seen[tx.ID] = true
		txs = append(txs, tx)
	}
	return txs, skipped, nil
}

func (el element) toTransaction() (records.Transaction, error) {
	idStr := strings.TrimSpace(el.ID)
	if idStr == "" {
		return records.Transaction{}, fmt.Errorf("missing id attribute")
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return records.Transaction{}, fmt.Errorf("invalid id %q: %w", idStr, err)
	}

	var amount float64
	if a := strings.TrimSpace(el.Amount); a != "" {
		amount, err = records.ParseAmount(a)
		if err != nil {
			return records.Transaction{}, err
		}
	}

	currency := strings.TrimSpace(el.Currency)
	if currency == "" {
		currency = records.DefaultCurrency
	}

	return records.Transaction{
		ID:          id,
		Type:        strings.TrimSpace(el.Type),
		Amount:      amount,
		Currency:    currency,
		Sender:      strings.TrimSpace(el.Sender),
		Receiver:    strings.TrimSpace(el.Receiver),
		Timestamp:   strings.TrimSpace(el.Timestamp),
		Status:      strings.TrimSpace(el.Status),
		Reference:   strings.TrimSpace(el.Reference),
		Description: strings.TrimSpace(el.Description),
	}, nil
}

func LoadFile(path string) ([]records.Transaction, []error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f)
}
