package cli

import (
	"fmt"

	"github.com/asfandyar/optico-store/internal/models"
	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		categories, err := newClient().Categories(cmd.Context())
		if err != nil {
			return err
		}

		for _, c := range categories {
			fmt.Printf("%s  %-25s %s\n", c.ID, c.Name, c.Slug)
		}
		return nil
	},
}

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage categories (admin)",
}

var categoryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a category",
	RunE: func(cmd *cobra.Command, args []string) error {
		category := models.Category{
			Name:        mustFlag(cmd, "name"),
			Slug:        mustFlag(cmd, "slug"),
			Description: mustFlag(cmd, "description"),
			ImageURL:    mustFlag(cmd, "image"),
		}

		created, err := newClient().CreateCategory(cmd.Context(), category)
		if err != nil {
			return err
		}

		fmt.Printf("Created category %s\n", created.ID)
		return nil
	},
}

func init() {
	categoryAddCmd.Flags().String("name", "", "category name")
	categoryAddCmd.Flags().String("slug", "", "url slug")
	categoryAddCmd.Flags().String("description", "", "description")
	categoryAddCmd.Flags().String("image", "", "image URL")
	categoryAddCmd.MarkFlagRequired("name")
	categoryAddCmd.MarkFlagRequired("slug")

	categoryCmd.AddCommand(categoryAddCmd)
}
