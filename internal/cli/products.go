package cli

import (
	"fmt"

	"github.com/asfandyar/optico-store/internal/models"
	"github.com/asfandyar/optico-store/pkg/client"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		brand, _ := cmd.Flags().GetString("brand")
		search, _ := cmd.Flags().GetString("search")

		products, err := newClient().Products(cmd.Context(), client.ProductFilter{
			Category: category,
			Brand:    brand,
			Search:   search,
		})
		if err != nil {
			return err
		}

		for _, p := range products {
			featured := ""
			if p.IsFeatured {
				featured = " *"
			}
			fmt.Printf("%s  %-30s %10s  stock %d%s\n", p.ID, p.Name, p.Price.StringFixed(2), p.Stock, featured)
		}
		return nil
	},
}

var productShowCmd = &cobra.Command{
	Use:   "show <product-id>",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newClient().Product(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s\n%s\n", p.Name, p.Description)
		fmt.Printf("price: %s  stock: %d  slug: %s\n", p.Price.StringFixed(2), p.Stock, p.Slug)
		if p.Brand != "" {
			fmt.Printf("brand: %s\n", p.Brand)
		}
		if p.LensType != "" {
			fmt.Printf("lens: %s %s %s\n", p.LensType, p.Material, p.Usage)
		}
		return nil
	},
}

var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Manage products (admin)",
}

var productAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a product",
	RunE: func(cmd *cobra.Command, args []string) error {
		price, err := decimal.NewFromString(mustFlag(cmd, "price"))
		if err != nil {
			return fmt.Errorf("invalid price: %w", err)
		}
		stock, _ := cmd.Flags().GetInt("stock")
		images, _ := cmd.Flags().GetStringSlice("image")
		featured, _ := cmd.Flags().GetBool("featured")

		product := models.Product{
			Name:        mustFlag(cmd, "name"),
			Description: mustFlag(cmd, "description"),
			Price:       price,
			CategoryID:  mustFlag(cmd, "category"),
			Slug:        mustFlag(cmd, "slug"),
			Brand:       mustFlag(cmd, "brand"),
			LensType:    mustFlag(cmd, "lens-type"),
			Material:    mustFlag(cmd, "material"),
			Usage:       mustFlag(cmd, "usage"),
			Color:       mustFlag(cmd, "color"),
			Stock:       stock,
			Images:      images,
			IsFeatured:  featured,
		}

		created, err := newClient().CreateProduct(cmd.Context(), product)
		if err != nil {
			return err
		}

		fmt.Printf("Created product %s\n", created.ID)
		return nil
	},
}

var productUpdateCmd = &cobra.Command{
	Use:   "update <product-id>",
	Short: "Update product fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Only flags the caller actually set become part of the patch.
		patch := map[string]any{}
		stringFields := map[string]string{
			"name":        "name",
			"description": "description",
			"category":    "categoryId",
			"slug":        "slug",
			"brand":       "brand",
			"lens-type":   "lensType",
			"material":    "material",
			"usage":       "usage",
			"color":       "color",
		}
		for flag, field := range stringFields {
			if cmd.Flags().Changed(flag) {
				value, _ := cmd.Flags().GetString(flag)
				patch[field] = value
			}
		}
		if cmd.Flags().Changed("price") {
			value, _ := cmd.Flags().GetString("price")
			price, err := decimal.NewFromString(value)
			if err != nil {
				return fmt.Errorf("invalid price: %w", err)
			}
			patch["price"] = price
		}
		if cmd.Flags().Changed("stock") {
			value, _ := cmd.Flags().GetInt("stock")
			patch["stock"] = value
		}
		if cmd.Flags().Changed("featured") {
			value, _ := cmd.Flags().GetBool("featured")
			patch["isFeatured"] = value
		}
		if cmd.Flags().Changed("image") {
			value, _ := cmd.Flags().GetStringSlice("image")
			patch["images"] = value
		}
		if len(patch) == 0 {
			return fmt.Errorf("nothing to update")
		}

		updated, err := newClient().UpdateProduct(cmd.Context(), args[0], patch)
		if err != nil {
			return err
		}

		fmt.Printf("Updated product %s\n", updated.ID)
		return nil
	},
}

var productDeleteCmd = &cobra.Command{
	Use:   "delete <product-id>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newClient().DeleteProduct(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted")
		return nil
	},
}

func mustFlag(cmd *cobra.Command, name string) string {
	value, _ := cmd.Flags().GetString(name)
	return value
}

func addProductFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "product name")
	cmd.Flags().String("description", "", "product description")
	cmd.Flags().String("price", "", "price")
	cmd.Flags().String("category", "", "category id")
	cmd.Flags().String("slug", "", "url slug")
	cmd.Flags().String("brand", "", "brand")
	cmd.Flags().String("lens-type", "", "Contact or Spectacle")
	cmd.Flags().String("material", "", "Soft or Hard")
	cmd.Flags().String("usage", "", "Daily, Monthly, or Yearly")
	cmd.Flags().String("color", "", "color")
	cmd.Flags().Int("stock", 0, "units in stock")
	cmd.Flags().StringSlice("image", nil, "image URL (repeatable)")
	cmd.Flags().Bool("featured", false, "feature on the home page")
}

func init() {
	productsCmd.Flags().String("category", "", "filter by category id")
	productsCmd.Flags().String("brand", "", "filter by brand")
	productsCmd.Flags().String("search", "", "search name and description")
	productsCmd.AddCommand(productShowCmd)

	addProductFlags(productAddCmd)
	productAddCmd.MarkFlagRequired("name")
	productAddCmd.MarkFlagRequired("description")
	productAddCmd.MarkFlagRequired("price")
	productAddCmd.MarkFlagRequired("category")
	productAddCmd.MarkFlagRequired("slug")
	addProductFlags(productUpdateCmd)

	productCmd.AddCommand(productAddCmd)
	productCmd.AddCommand(productUpdateCmd)
	productCmd.AddCommand(productDeleteCmd)
}
