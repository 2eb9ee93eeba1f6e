package cmd

import (
	"fmt"
	"os"

	"github.com/dvloasia/pagehost/internal/cli/config"
	"github.com/dvloasia/pagehost/pkg/client"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	serverURL string
	cfg       *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pagehost",
	Short: "CLI for the pagehost static-site host",
	Long:  `pagehost is a command-line tool for managing projects and uploading static sites to a pagehost server.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load config (ignore errors for commands that don't need it)
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			cfg = &config.Config{}
		}

		// Server URL priority: flag > config > default
		if serverURL == "" && cfg.Server != "" {
			serverURL = cfg.Server
		}
		if serverURL == "" {
			serverURL = client.DefaultServer
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.pagehost/config.json)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "server URL")
}

// getClient creates a client with current config.
func getClient() *client.Client {
	return client.New(cfg.Token, client.WithServer(serverURL))
}
