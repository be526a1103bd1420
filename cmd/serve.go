package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NgigiN/momo/internal/api"
	"github.com/NgigiN/momo/internal/discord"
	"github.com/NgigiN/momo/internal/records"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load transactions and run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				cfg.Port = port
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			return runServe()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8000, "port to run the server on")
	return cmd
}

func runServe() error {
	engine := records.NewEngine(loadStore(cfg))
	server := api.NewServer(engine, cfg)

	var bot *discord.Bot
	if cfg.Discord.Enabled() {
		var err error
		bot, err = discord.NewBot(cfg.Discord, engine)
		if err != nil {
			return fmt.Errorf("failed to initialize the discord bot: %w", err)
		}
		if err := bot.Start(); err != nil {
			return fmt.Errorf("failed to start bot: %w", err)
		}
		log.Println("Discord bot is running...")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	var serveErr error
	select {
	case <-sc:
	case serveErr = <-errCh:
	}

	if bot != nil {
		if err := bot.Stop(); err != nil {
			log.Printf("Error stopping bot: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		log.Printf("Error stopping server: %v", err)
	}

	log.Println("Server stopped.")
	return serveErr
}
