// Command cafe runs the café ordering API and its maintenance tasks.
//
//	cafe serve             start the HTTP server
//	cafe route:list        print every route
//	cafe migrate           apply pending migrations
//	cafe migrate:rollback  revert the last batch
//	cafe migrate:status    show applied and pending migrations
//	cafe seed              load demo accounts and menu
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/ruangkopi/cafe/database/migrations"
	_ "github.com/ruangkopi/cafe/database/seeders"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "cafe",
	Short:        "Café ordering API",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)
}
