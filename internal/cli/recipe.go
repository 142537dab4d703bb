package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"recipebook/internal/models"
	"recipebook/internal/services"
)

type recipeFlags struct {
	title        string
	category     string
	ingredients  string
	instructions string
}

func (f *recipeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Recipe title")
	cmd.Flags().StringVar(&f.category, "category", "", "Category, e.g. "+strings.Join(models.Categories, ", "))
	cmd.Flags().StringVar(&f.ingredients, "ingredients", "", "Comma-separated ingredients")
	cmd.Flags().StringVar(&f.instructions, "instructions", "", "Preparation instructions")
}

func (f *recipeFlags) input() models.RecipeInput {
	return models.RecipeInput{
		Title:        f.title,
		Category:     f.category,
		Ingredients:  f.ingredients,
		Instructions: f.instructions,
	}
}

// overlay replaces the fields of in whose flags were set on cmd.
func (f *recipeFlags) overlay(cmd *cobra.Command, in models.RecipeInput) models.RecipeInput {
	if cmd.Flags().Changed("title") {
		in.Title = f.title
	}
	if cmd.Flags().Changed("category") {
		in.Category = f.category
	}
	if cmd.Flags().Changed("ingredients") {
		in.Ingredients = f.ingredients
	}
	if cmd.Flags().Changed("instructions") {
		in.Instructions = f.instructions
	}
	return in
}

func newRecipeCmd(a *app) *cobra.Command {
	recipeCmd := &cobra.Command{
		Use:   "recipe",
		Short: "Manage recipes",
	}
	recipeCmd.AddCommand(
		newRecipeAddCmd(a),
		newRecipeListCmd(a),
		newRecipeShowCmd(a),
		newRecipeUpdateCmd(a),
		newRecipeDeleteCmd(a),
	)
	return recipeCmd
}

func newRecipeAddCmd(a *app) *cobra.Command {
	var flags recipeFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a recipe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(func(service *services.RecipeService) error {
				id, err := service.Create(services.Anonymous, flags.input())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created recipe %d\n", id)
				return nil
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newRecipeListCmd(a *app) *cobra.Command {
	var filter models.RecipeFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recipes, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(func(service *services.RecipeService) error {
				recipes, err := service.List(filter)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(recipes) == 0 {
					fmt.Fprintln(out, "No recipes found")
					return nil
				}
				fmt.Fprintln(out, "ID\tTITLE\tCATEGORY")
				for _, r := range recipes {
					fmt.Fprintf(out, "%d\t%s\t%s\n", r.ID, r.Title, r.Category)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&filter.Term, "search", "", "Match title or ingredients (case-insensitive)")
	cmd.Flags().StringVar(&filter.Category, "category", "", "Match category (case-insensitive)")
	return cmd
}

func newRecipeShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show recipe details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withService(func(service *services.RecipeService) error {
				r, err := service.Get(id)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "ID: %d\nTitle: %s\nCategory: %s\nIngredients:\n", r.ID, r.Title, r.Category)
				for _, item := range r.IngredientList() {
					fmt.Fprintf(out, "  - %s\n", item)
				}
				fmt.Fprintf(out, "Instructions:\n%s\n", r.Instructions)
				return nil
			})
		},
	}
}

func newRecipeUpdateCmd(a *app) *cobra.Command {
	var flags recipeFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a recipe; omitted flags keep their stored values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withService(func(service *services.RecipeService) error {
				current, err := service.Get(id)
				if err != nil {
					return err
				}
				in := flags.overlay(cmd, models.InputFrom(*current))
				if err := service.Update(services.Anonymous, id, in); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated recipe %d\n", id)
				return nil
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newRecipeDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withService(func(service *services.RecipeService) error {
				r, err := service.Get(id)
				if err != nil {
					return err
				}
				if !yes {
					ok, err := confirm(cmd, fmt.Sprintf("Delete recipe %d %q?", r.ID, r.Title))
					if err != nil {
						return err
					}
					if !ok {
						fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
						return nil
					}
				}
				if err := service.Delete(services.Anonymous, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted recipe %d\n", id)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking for confirmation")
	return cmd
}

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List suggested categories",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, c := range models.Categories {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
		},
	}
}
