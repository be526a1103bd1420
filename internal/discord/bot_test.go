package discord

import (
	"strings"
	"testing"

	"github.com/NgigiN/momo/internal/records"
)

const (
	transferSMS = `*165*S*10000 RWF transferred to Samuel Carter (250791666666) from 36521838 at 2024-05-11 20:34:47 . Fee was: 100 RWF. New balance: 28300 RWF.`
	receivedSMS = `You have received 2000 RWF from Jane Smith (*********013) on your mobile money account at 2024-05-10 16:30:51. Message from sender: . Your new balance:2000 RWF. Financial Transaction Id: 76662021700.`
)

func newTestBot() *Bot {
	store := records.NewStore([]records.Transaction{
		{ID: 1, Type: "Deposit", Amount: 5000, Currency: "RWF"},
		{ID: 2, Type: "Transfer", Amount: 1500, Currency: "RWF"},
	})
	return &Bot{engine: records.NewEngine(store), owner: "250788000000"}
}

func TestReplyIngestsSingleMessage(t *testing.T) {
	b := newTestBot()

	got := b.reply(transferSMS)
	if !strings.HasPrefix(got, "Tracked #3") {
		t.Fatalf("unexpected reply %q", got)
	}
	tx, err := b.engine.LookupByID(3)
	if err != nil {
		t.Fatalf("expected record 3 to exist: %v", err)
	}
	if tx.Sender != "250788000000" || tx.Amount != 10000 {
		t.Fatalf("unexpected stored record %+v", tx)
	}

	if got := b.reply("hello there"); !strings.HasPrefix(got, "Invalid MoMo message") {
		t.Fatalf("expected invalid message reply, got %q", got)
	}
}

func TestReplyIngestsBatch(t *testing.T) {
	b := newTestBot()

	got := b.reply(transferSMS + "\n\n" + receivedSMS + "\nnot a message")
	if !strings.Contains(got, "Successfully processed: 2") || !strings.Contains(got, "Failed: 1") {
		t.Fatalf("unexpected batch reply %q", got)
	}
	if b.engine.Store().Len() != 4 {
		t.Fatalf("expected 4 records, got %d", b.engine.Store().Len())
	}
	tx, _ := b.engine.LookupByID(4)
	if tx.Reference != "76662021700" || tx.Receiver != "250788000000" {
		t.Fatalf("unexpected received record %+v", tx)
	}
}

func TestCommands(t *testing.T) {
	b := newTestBot()

	cases := []struct {
		cmd  string
		want string
	}{
		{"!find 1", "**#1** Deposit 5000.00 RWF"},
		{"!find 42", "Transaction #42 not found"},
		{"!find x", "Invalid transaction ID: x"},
		{"!type Transfer", "**Type Transfer**"},
		{"!type Payment", "No transactions found for Type Payment"},
		{"!range 1000 2000", "**#2**"},
		{"!range a b", "Usage: !range <min> <max>"},
		{"!amount 5000", "**#1**"},
		{"!summary", "**Total**: 6500.00 RWF (2 transactions)"},
		{"!unknown", "Commands:"},
		{"!delete 2", "Deleted #2"},
		{"!find 2", "Transaction #2 not found"},
	}
	for _, c := range cases {
		if got := b.reply(c.cmd); !strings.Contains(got, c.want) {
			t.Fatalf("%s: expected reply containing %q, got %q", c.cmd, c.want, got)
		}
	}
}
