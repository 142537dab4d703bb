package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"recipebook/internal/logger"
)

const defaultDBPath = "recipes.db"

// app carries the state shared by every command of one invocation.
type app struct {
	v       *viper.Viper
	verbose bool
}

func (a *app) dbPath() string {
	if p := a.v.GetString("db"); p != "" {
		return p
	}
	return defaultDBPath
}

func (a *app) logger() *zap.Logger {
	if !a.verbose {
		return zap.NewNop()
	}
	log, err := logger.New("debug")
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// NewRootCmd builds the recipebook command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	a.v.SetEnvPrefix("RECIPEBOOK")
	a.v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:           "recipebook",
		Short:         "recipebook keeps your recipes in a local SQLite file",
		Long:          "recipebook is a single-user recipe book. Recipes have a title, an optional category, ingredients and instructions.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database (env RECIPEBOOK_DB, default recipes.db)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log database activity")
	_ = a.v.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))

	rootCmd.AddCommand(newRecipeCmd(a), newCategoriesCmd())
	return rootCmd
}

// Execute runs the command tree and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
