// Command server runs the tabledine cart API.
//
//	server serve --config tabledine.yaml
//	server seed --menu menu.yaml
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmynk/tabledine/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd wires the subcommands to one viper instance so flags, file and
// environment resolve through the same keys.
func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	loadConfig := func() (*config.Config, error) {
		return config.Load(v, cfgFile)
	}

	rootCmd := &cobra.Command{
		Use:           "server",
		Short:         "QR-code table ordering cart service",
		Long:          `tabledine serves the cart, menu and order APIs diners reach by scanning the QR code on their restaurant table.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	rootCmd.PersistentFlags().String("db-path", "", "SQLite database path")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("menu", "", "YAML menu file (seeded by serve on startup)")
	bindFlag(v, "db_path", rootCmd.PersistentFlags().Lookup("db-path"))
	bindFlag(v, "log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	bindFlag(v, "menu_file", rootCmd.PersistentFlags().Lookup("menu"))

	rootCmd.AddCommand(newServeCmd(v, loadConfig), newSeedCmd(loadConfig))
	return rootCmd
}
