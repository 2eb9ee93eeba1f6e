package cmd

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var registerCmd = &cobra.Command{
	Use:   "register <username> <email>",
	Short: "Create a new account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprint(os.Stderr, "Password: ")
		password, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return err
		}

		user, err := getClient().Register(args[0], args[1], string(password))
		if err != nil {
			return err
		}

		fmt.Printf("Account %s created. Run 'pagehost login %s' to sign in.\n", user.Username, user.Username)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
}
