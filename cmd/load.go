package main

import (
	"log"

	"github.com/NgigiN/momo/internal/config"
	"github.com/NgigiN/momo/internal/records"
	"github.com/NgigiN/momo/internal/smsxml"
	"github.com/NgigiN/momo/internal/storage"
)

// loadStore reads the configured data source once. Any failure is logged
// and leaves the store empty instead of stopping the process.
func loadStore(cfg *config.Config) *records.Store {
	txs, err := loadTransactions(cfg.Data)
	if err != nil {
		log.Printf("Error loading transaction data, starting empty: %v", err)
		return records.NewStore(nil)
	}
	if len(txs) == 0 {
		log.Printf("Warning: no transactions loaded from %s source", cfg.Data.Source)
	} else {
		log.Printf("Loaded %d transactions from %s source", len(txs), cfg.Data.Source)
	}
	return records.NewStore(txs)
}

func loadTransactions(data config.DataConfig) ([]records.Transaction, error) {
	switch data.Source {
	case config.SourceSQLite:
		db, err := storage.NewDatabase(data.SQLitePath)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return db.LoadTransactions()
	default:
		txs, skipped, err := smsxml.LoadFile(data.XMLPath)
		if err != nil {
			return nil, err
		}
		for _, s := range skipped {
			log.Printf("Skipping XML record: %v", s)
		}
		return txs, nil
	}
}
