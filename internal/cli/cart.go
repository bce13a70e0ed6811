package cli

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the local shopping cart",
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a product to the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		qty, _ := cmd.Flags().GetInt("qty")

		product, err := newClient().Product(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		c, err := openCart()
		if err != nil {
			return err
		}
		c.AddItem(*product, qty)

		fmt.Printf("Added %s x%d (total %s)\n", product.Name, qty, c.Total().StringFixed(2))
		return nil
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Remove a product from the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCart()
		if err != nil {
			return err
		}
		c.RemoveItem(args[0])

		fmt.Printf("Removed (total %s)\n", c.Total().StringFixed(2))
		return nil
	},
}

var cartSetCmd = &cobra.Command{
	Use:   "set <product-id> <quantity>",
	Short: "Set an item's quantity (0 removes it)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity: %w", err)
		}

		c, err := openCart()
		if err != nil {
			return err
		}
		c.UpdateQuantity(args[0], qty)

		fmt.Printf("Updated (total %s)\n", c.Total().StringFixed(2))
		return nil
	},
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cart contents",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCart()
		if err != nil {
			return err
		}

		items := c.Items()
		if len(items) == 0 {
			fmt.Println("Cart is empty")
			return nil
		}
		for _, item := range items {
			line := item.Product.Price.Mul(decimalFromInt(item.Quantity))
			fmt.Printf("%s  %-30s x%-3d %10s\n", item.Product.ID, item.Product.Name, item.Quantity, line.StringFixed(2))
		}
		fmt.Printf("total: %s\n", c.Total().StringFixed(2))
		return nil
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCart()
		if err != nil {
			return err
		}
		c.Clear()

		fmt.Println("Cart cleared")
		return nil
	},
}

func init() {
	cartAddCmd.Flags().Int("qty", 1, "quantity")

	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	cartCmd.AddCommand(cartSetCmd)
	cartCmd.AddCommand(cartShowCmd)
	cartCmd.AddCommand(cartClearCmd)
}
