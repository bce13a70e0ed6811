// Package cli implements the storefront terminal client: browsing the
// catalog, managing a local cart, checking out, and the admin
// back-office operations.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/asfandyar/optico-store/internal/cart"
	"github.com/asfandyar/optico-store/pkg/client"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "optico",
	Short: "Optico Store - eyewear storefront client",
	Long: `Terminal client for the Optico Store API.

Browse the catalog, keep a local shopping cart, place orders, and (for
admins) manage products, categories, and order status.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(productCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(cartCmd)
	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(ordersCmd)
	rootCmd.AddCommand(orderCmd)
}

func apiURL() string {
	if url := os.Getenv("OPTICO_API_URL"); url != "" {
		return url
	}
	return "http://localhost:8080"
}

func stateDir() string {
	if dir := os.Getenv("OPTICO_STATE_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".optico"
	}
	return filepath.Join(home, ".optico")
}

func tokenPath() string {
	return filepath.Join(stateDir(), "token")
}

func cartPath() string {
	return filepath.Join(stateDir(), "cart.json")
}

// newClient builds an API client, attaching the saved session token if
// one exists.
func newClient() *client.Client {
	c := client.New(apiURL())
	if data, err := os.ReadFile(tokenPath()); err == nil {
		c.SetToken(strings.TrimSpace(string(data)))
	}
	return c
}

func saveToken(token string) error {
	if err := os.MkdirAll(stateDir(), 0o700); err != nil {
		return err
	}
	return os.WriteFile(tokenPath(), []byte(token), 0o600)
}

func openCart() (*cart.Cart, error) {
	if err := os.MkdirAll(stateDir(), 0o700); err != nil {
		return nil, err
	}
	return cart.Open(cartPath())
}
