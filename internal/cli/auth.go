package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and save the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		c := newClient()
		user, err := c.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}
		if err := saveToken(c.Token()); err != nil {
			return fmt.Errorf("save session token: %w", err)
		}

		fmt.Printf("Logged in as %s (%s)\n", user.Name, user.Role)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		user, err := newClient().Register(cmd.Context(), name, email, password)
		if err != nil {
			return err
		}

		fmt.Printf("Registered %s <%s>\n", user.Name, user.Email)
		return nil
	},
}

func init() {
	loginCmd.Flags().String("email", "", "account email (or the literal \"admin\")")
	loginCmd.Flags().String("password", "", "account password")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")

	registerCmd.Flags().String("name", "", "full name")
	registerCmd.Flags().String("email", "", "email address")
	registerCmd.Flags().String("password", "", "password (6 characters minimum)")
	registerCmd.MarkFlagRequired("name")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("password")
}
