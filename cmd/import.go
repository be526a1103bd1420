package main

import (
	"fmt"

	"github.com/NgigiN/momo/internal/smsxml"
	"github.com/NgigiN/momo/internal/storage"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	var xmlPath, dbPath string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Convert the XML export into a SQLite snapshot",
		Long: `Parse the MoMo SMS XML export and replace the SQLite snapshot with its
records. Start the server with MOMO_DATA_SOURCE=sqlite to load from it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if xmlPath == "" {
				xmlPath = cfg.Data.XMLPath
			}
			if dbPath == "" {
				dbPath = cfg.Data.SQLitePath
			}
			return runImport(xmlPath, dbPath)
		},
	}

	cmd.Flags().StringVar(&xmlPath, "xml", "", "XML export to read (defaults to data.xml_path)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite snapshot to write (defaults to data.sqlite_path)")
	return cmd
}

func runImport(xmlPath, dbPath string) error {
	txs, skipped, err := smsxml.LoadFile(xmlPath)
	if err != nil {
		return err
	}
	for _, s := range skipped {
		pterm.Warning.Printf("Skipped: %v\n", s)
	}

	db, err := storage.NewDatabase(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize the database: %w", err)
	}
	defer db.Close()

	if err := db.ReplaceTransactions(txs); err != nil {
		return err
	}

	pterm.Success.Printf("Imported %d transactions into %s\n", len(txs), dbPath)
	return nil
}
