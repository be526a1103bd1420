package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/NgigiN/momo/internal/records"
)

func TestReplaceAndLoad(t *testing.T) {
	db, err := NewDatabase(filepath.Join(t.TempDir(), "snapshot.db"))
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer db.Close()

	first := []records.Transaction{
		{ID: 7, Type: "Deposit", Amount: 40000, Currency: "RWF", Reference: "TXN000000007"},
		{ID: 2, Type: "Transfer", Amount: 1500.5, Currency: "RWF", Sender: "+250788123456"},
	}
	if err := db.ReplaceTransactions(first); err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	got, err := db.LoadTransactions()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got) != 2 || got[0] != first[1] || got[1] != first[0] {
		t.Fatalf("unexpected snapshot %+v", got)
	}

	if err := db.ReplaceTransactions(first[:1]); err != nil {
		t.Fatalf("second replace failed: %v", err)
	}
	got, err = db.LoadTransactions()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != 7 {
		t.Fatalf("expected only id 7 after replace, got %+v", got)
	}
}

func TestNewDatabaseRejectsNonDatabaseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.db")
	if err := os.WriteFile(path, bytes.Repeat([]byte("not a sqlite file\n"), 256), 0o600); err != nil {
		t.Fatal(err)
	}

	db, err := NewDatabase(path)
	if err == nil {
		db.Close()
		t.Fatalf("expected an error opening a non-database file")
	}
}
