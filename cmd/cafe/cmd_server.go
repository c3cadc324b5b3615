package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ruangkopi/cafe/config"
	"github.com/ruangkopi/cafe/internal/kernel"
	"github.com/ruangkopi/cafe/internal/server"
	"github.com/ruangkopi/cafe/pkg/cache"
	"github.com/ruangkopi/cafe/pkg/database"
	"github.com/ruangkopi/cafe/pkg/event"
	"github.com/ruangkopi/cafe/pkg/logger"
	"github.com/ruangkopi/cafe/pkg/migration"
	"github.com/ruangkopi/cafe/pkg/storage"
	"github.com/ruangkopi/cafe/pkg/ws"
)

var (
	serveAddr    string
	serveMigrate bool
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default :APP_PORT)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", true, "apply pending migrations before serving")
}

// cafe serve
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run"},
	Short:   "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		if err := bootDB(); err != nil {
			return err
		}
		defer database.Close(database.DB) //nolint:errcheck

		if serveMigrate {
			if err := migration.New(database.DB, nil).Run(); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
		}

		store, err := cache.Connect(ctx)
		if err != nil {
			logger.Warn("sessions: falling back to memory store", "error", err)
		}

		disk, err := storage.Open(ctx)
		if err != nil {
			return err
		}

		hub := ws.NewHub()
		k, err := kernel.NewHTTPKernel(kernel.Deps{
			DB:     database.DB,
			Store:  store,
			Disk:   disk,
			Hub:    hub,
			Events: event.New(),
		})
		if err != nil {
			return err
		}

		addr := serveAddr
		if addr == "" {
			addr = ":" + config.AppPort()
		}
		logger.Info("cafe: starting", "env", config.AppEnv(), "db", config.DatabaseDriver(), "storage", disk.Name())
		return server.Run(ctx, addr, k.Handler(), hub.Run)
	},
}

// cafe route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		k, err := kernel.NewHTTPKernel(kernel.Deps{})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range k.Routes() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
