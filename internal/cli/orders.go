package cli

import (
	"fmt"

	"github.com/asfandyar/optico-store/internal/models"
	"github.com/spf13/cobra"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place an order from the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		address, _ := cmd.Flags().GetString("address")
		guestName, _ := cmd.Flags().GetString("guest-name")
		guestEmail, _ := cmd.Flags().GetString("guest-email")

		c, err := openCart()
		if err != nil {
			return err
		}
		items := c.Items()
		if len(items) == 0 {
			return fmt.Errorf("cart is empty")
		}

		order := models.Order{
			GuestName:       guestName,
			GuestEmail:      guestEmail,
			DeliveryAddress: address,
			TotalPrice:      c.Total(),
		}
		for _, item := range items {
			order.Items = append(order.Items, models.OrderItem{
				ProductID: item.Product.ID,
				Quantity:  item.Quantity,
				Price:     item.Product.Price,
			})
		}

		created, err := newClient().CreateOrder(cmd.Context(), order)
		if err != nil {
			return err
		}

		// The cart is cleared exactly once, after the order went through.
		c.Clear()

		fmt.Printf("Order %s placed, total %s\n", created.ID, created.TotalPrice.StringFixed(2))
		return nil
	},
}

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List orders (your own, or all as admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		orders, err := newClient().Orders(cmd.Context())
		if err != nil {
			return err
		}

		for _, o := range orders {
			fmt.Printf("%s  %-10s %10s  %s\n", o.ID, o.Status, o.TotalPrice.StringFixed(2), o.CreatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Manage orders (admin)",
}

var orderStatusCmd = &cobra.Command{
	Use:   "status <order-id> <status>",
	Short: "Set an order's status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tracking, _ := cmd.Flags().GetString("tracking")

		order, err := newClient().UpdateOrderStatus(cmd.Context(), args[0], args[1], tracking)
		if err != nil {
			return err
		}

		fmt.Printf("Order %s is now %s\n", order.ID, order.Status)
		return nil
	},
}

func init() {
	checkoutCmd.Flags().String("address", "", "delivery address")
	checkoutCmd.Flags().String("guest-name", "", "guest name (when not logged in)")
	checkoutCmd.Flags().String("guest-email", "", "guest email (when not logged in)")
	checkoutCmd.MarkFlagRequired("address")

	orderStatusCmd.Flags().String("tracking", "", "tracking number")
	orderCmd.AddCommand(orderStatusCmd)
}
