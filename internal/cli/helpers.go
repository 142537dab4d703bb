package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"recipebook/internal/database"
	"recipebook/internal/repositories"
	"recipebook/internal/services"
)

func (a *app) withService(run func(*services.RecipeService) error) error {
	path := a.dbPath()
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := database.Open(database.DriverSQLite, path)
	if err != nil {
		return err
	}
	defer database.Close(db) //nolint:errcheck

	if err := database.Migrate(db); err != nil {
		return err
	}
	log := a.logger()
	defer log.Sync() //nolint:errcheck

	service := services.NewRecipeService(repositories.NewGORMRecipeRepository(db), services.ModeLocal, nil, log)
	return run(service)
}

func parseID(value string) (uint, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid recipe id %q", value)
	}
	if v == 0 {
		return 0, fmt.Errorf("recipe id must be > 0")
	}
	return uint(v), nil
}

// confirm prints prompt and reports whether the user answered yes.
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)
	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
