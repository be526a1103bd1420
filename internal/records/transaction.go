package records

import "fmt"

const (
	DefaultCurrency = "RWF"
	DefaultStatus   = "Completed"

	// TimestampLayout is the layout used for generated timestamps.
	TimestampLayout = "2006-01-02T15:04:05Z"
)

// Transaction represents a single mobile-money transaction record.
type Transaction struct {
	ID          int     `json:"id"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Sender      string  `json:"sender"`
	Receiver    string  `json:"receiver"`
	Timestamp   string  `json:"timestamp"`
	Status      string  `json:"status"`
	Reference   string  `json:"reference"`
	Description string  `json:"description"`
}

// DefaultReference is the reference assigned to records created without one.
func DefaultReference(id int) string {
	return fmt.Sprintf("TXN%09d", id)
}
