package storage

import (
	"time"

	"github.com/NgigiN/momo/internal/records"
)

// Transaction is the snapshot row of a record. TxID carries the record
// identifier so the snapshot reproduces ids exactly.
type Transaction struct {
	RowID       uint `gorm:"primaryKey"`
	TxID        int  `gorm:"uniqueIndex"`
	Type        string
	Amount      float64
	Currency    string
	Sender      string
	Receiver    string
	Timestamp   string
	Status      string
	Reference   string
	Description string
	ImportedAt  time.Time
}

func fromRecord(r records.Transaction, importedAt time.Time) Transaction {
	return Transaction{
		TxID:        r.ID,
		Type:        r.Type,
		Amount:      r.Amount,
		Currency:    r.Currency,
		Sender:      r.Sender,
		Receiver:    r.Receiver,
		Timestamp:   r.Timestamp,
		Status:      r.Status,
		Reference:   r.Reference,
		Description: r.Description,
		ImportedAt:  importedAt,
	}
}

func (t Transaction) toRecord() records.Transaction {
	return records.Transaction{
		ID:          t.TxID,
		Type:        t.Type,
		Amount:      t.Amount,
		Currency:    t.Currency,
		Sender:      t.Sender,
		Receiver:    t.Receiver,
		Timestamp:   t.Timestamp,
		Status:      t.Status,
		Reference:   t.Reference,
		Description: t.Description,
	}
}
