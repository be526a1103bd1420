package momo

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/NgigiN/momo/internal/records"
)

type Kind string

const (
	KindReceived Kind = "Received"
	KindPayment  Kind = "Payment"
	KindTransfer Kind = "Transfer"
	KindDeposit  Kind = "Deposit"
)

const (
	smsTimeLayout    = "2006-01-02 15:04:05"
	recordTimeLayout = "2006-01-02T15:04:05"
)

type ParsedMessage struct {
	Kind              Kind
	Amount            float64
	Counterparty      string
	CounterpartyPhone string
	DateTime          time.Time
	Balance           float64
	Fee               float64
	TransactionID     string
}

// RWF amounts, thousands separators allowed.
const money = `([\d,]+(?:\.\d+)?)\s*RWF`
const stamp = `(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})`

var (
	receivedRe = regexp.MustCompile(`(?i)You have received\s+` + money + `\s+from\s+(.+?)\s*\(([^)]*)\)\s+on your mobile money account at\s+` + stamp)
	paymentRe  = regexp.MustCompile(`(?i)Your payment of\s+` + money + `\s+to\s+(.+?)\s+(\d+)\s+has been completed at\s+` + stamp)
	transferRe = regexp.MustCompile(`(?i)` + money + `\s+transferred to\s+(.+?)\s*\((\d+)\)\s+from\s+\d+\s+at\s+` + stamp)
	depositRe  = regexp.MustCompile(`(?i)A bank deposit of\s+` + money + `\s+has been added to your mobile money account at\s+` + stamp)

	balanceRe = regexp.MustCompile(`(?i)new balance\s*:?\s*` + money)
	feeRe     = regexp.MustCompile(`(?i)Fee was\s*:?\s*` + money)
	txIDRe    = regexp.MustCompile(`(?i)(?:Financial Transaction Id|TxId)\s*:\s*(\d+)`)
)

// ParseMessage recognises incoming money, payment, transfer and bank
// deposit notifications.
func ParseMessage(msg string) (*ParsedMessage, error) {
	msg = strings.Join(strings.Fields(msg), " ")

	var (
		parsed ParsedMessage
		amount string
		when   string
	)

	if m := receivedRe.FindStringSubmatch(msg); m != nil {
		parsed.Kind = KindReceived
		amount, parsed.Counterparty, parsed.CounterpartyPhone, when = m[1], m[2], m[3], m[4]
	} else if m := paymentRe.FindStringSubmatch(msg); m != nil {
		parsed.Kind = KindPayment
		amount, parsed.Counterparty, parsed.CounterpartyPhone, when = m[1], m[2], m[3], m[4]
	} else if m := transferRe.FindStringSubmatch(msg); m != nil {
		parsed.Kind = KindTransfer
		amount, parsed.Counterparty, parsed.CounterpartyPhone, when = m[1], m[2], m[3], m[4]
	} else if m := depositRe.FindStringSubmatch(msg); m != nil {
		parsed.Kind = KindDeposit
		amount, when = m[1], m[2]
		parsed.Counterparty = "Bank"
	} else {
		return nil, fmt.Errorf("not a recognised MoMo message")
	}

	var err error
	if parsed.Amount, err = parseMoney(amount); err != nil {
		return nil, fmt.Errorf("failed to parse amount: %w", err)
	}
	if parsed.DateTime, err = time.Parse(smsTimeLayout, when); err != nil {
		return nil, fmt.Errorf("failed to parse date/time: %w", err)
	}

	if m := balanceRe.FindStringSubmatch(msg); m != nil {
		if parsed.Balance, err = parseMoney(m[1]); err != nil {
			return nil, fmt.Errorf("failed to parse balance: %w", err)
		}
	}
	if m := feeRe.FindStringSubmatch(msg); m != nil {
		if parsed.Fee, err = parseMoney(m[1]); err != nil {
			return nil, fmt.Errorf("failed to parse fee: %w", err)
		}
	}
	if m := txIDRe.FindStringSubmatch(msg); m != nil {
		parsed.TransactionID = m[1]
	}

	parsed.Counterparty = strings.TrimSpace(parsed.Counterparty)
	return &parsed, nil
}

func parseMoney(s string) (float64, error) {
	return records.ParseAmount(strings.ReplaceAll(s, ",", ""))
}

// ToPayload converts the message into a create payload; owner is the
// account holder's phone number.
func (p *ParsedMessage) ToPayload(owner string) records.Payload {
	payload := records.Payload{
		records.FieldType:      string(p.Kind),
		records.FieldAmount:    p.Amount,
		records.FieldCurrency:  records.DefaultCurrency,
		records.FieldTimestamp: p.DateTime.Format(recordTimeLayout),
	}

	counterparty := p.CounterpartyPhone
	if counterparty == "" {
		counterparty = p.Counterparty
	}

	switch p.Kind {
	case KindReceived, KindDeposit:
		payload[records.FieldSender] = counterparty
		payload[records.FieldReceiver] = owner
		payload[records.FieldDescription] = "Received from " + p.Counterparty
	default:
		payload[records.FieldSender] = owner
		payload[records.FieldReceiver] = counterparty
		payload[records.FieldDescription] = fmt.Sprintf("%s to %s", p.Kind, p.Counterparty)
	}

	if p.TransactionID != "" {
		payload[records.FieldReference] = p.TransactionID
	}
	return payload
}
