package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NgigiN/momo/internal/config"
	"github.com/NgigiN/momo/internal/records"
	"github.com/NgigiN/momo/internal/storage"
)

func TestLoadStoreMissingFileDegradesToEmpty(t *testing.T) {
	cfg := &config.Config{Data: config.DataConfig{
		Source:  config.SourceXML,
		XMLPath: filepath.Join(t.TempDir(), "missing.xml"),
	}}

	store := loadStore(cfg)
	if store.Len() != 0 {
		t.Fatalf("expected an empty store, got %d records", store.Len())
	}

	tx, err := store.Create(records.Payload{"type": "Transfer", "amount": 1.0, "sender": "a", "receiver": "b"})
	if err != nil || tx.ID != 1 {
		t.Fatalf("empty store should still accept creates: %+v %v", tx, err)
	}
}

func TestLoadStoreMalformedXMLDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xml")
	if err := os.WriteFile(path, []byte("<transactions><transaction"), 0o600); err != nil {
		t.Fatal(err)
	}

	store := loadStore(&config.Config{Data: config.DataConfig{Source: config.SourceXML, XMLPath: path}})
	if store.Len() != 0 {
		t.Fatalf("expected an empty store, got %d records", store.Len())
	}
}

func TestLoadStoreFromXML(t *testing.T) {
	store := loadStore(&config.Config{Data: config.DataConfig{
		Source:  config.SourceXML,
		XMLPath: filepath.Join("..", "data", "raw", "modified_sms_v2.xml"),
	}})
	if store.Len() == 0 {
		t.Fatalf("expected the bundled sample to load")
	}
	if _, err := records.NewEngine(store).LookupByID(1); err != nil {
		t.Fatalf("expected id 1 in the sample: %v", err)
	}
}

func TestLoadStoreFromSQLite(t *testing.T) {
	dir := t.TempDir()
	xmlPath := filepath.Join("..", "data", "raw", "modified_sms_v2.xml")
	dbPath := filepath.Join(dir, "snapshot.db")

	if err := runImport(xmlPath, dbPath); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	fromXML := loadStore(&config.Config{Data: config.DataConfig{Source: config.SourceXML, XMLPath: xmlPath}})
	fromDB := loadStore(&config.Config{Data: config.DataConfig{Source: config.SourceSQLite, SQLitePath: dbPath}})
	if fromXML.Len() != fromDB.Len() {
		t.Fatalf("snapshot has %d records, XML has %d", fromDB.Len(), fromXML.Len())
	}

	db, err := storage.NewDatabase(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	rows, err := db.LoadTransactions()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != fromXML.Len() {
		t.Fatalf("expected %d rows, got %d", fromXML.Len(), len(rows))
	}
}
