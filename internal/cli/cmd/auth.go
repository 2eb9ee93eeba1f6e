package cmd

import (
	"fmt"
	"os"
	"syscall"

	"github.com/dvloasia/pagehost/internal/cli/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in and store a session token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprint(os.Stderr, "Password: ")
		password, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return err
		}

		resp, err := getClient().Login(args[0], string(password))
		if err != nil {
			return err
		}

		cfg.Token = resp.Token
		cfg.Server = serverURL
		if err := config.Save(cfg, cfgFile); err != nil {
			return fmt.Errorf("save config: %w", err)
		}

		fmt.Printf("Logged in as %s\n", resp.User.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Invalidate the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Token != "" {
			if err := getClient().Logout(); err != nil {
				return err
			}
		}
		cfg.Token = ""
		if err := config.Save(cfg, cfgFile); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		fmt.Println("Logged out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
