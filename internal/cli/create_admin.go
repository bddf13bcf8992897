package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/openshelf/openshelf/internal/auth"
	"github.com/openshelf/openshelf/internal/config"
	"github.com/openshelf/openshelf/internal/database"
	"github.com/openshelf/openshelf/internal/database/admins"
)

// CreateAdminCommand provisions an admin account from the command line.
// There is no registration endpoint for admins; this is the only way to
// create one.
type CreateAdminCommand struct {
	Name         string
	Email        string
	Password     string
	DatabasePath string
	BcryptCost   int
}

func NewCreateAdminCommand() *CreateAdminCommand {
	return &CreateAdminCommand{}
}

func (cmd *CreateAdminCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-admin", flag.ExitOnError)

	fs.StringVar(&cmd.Name, "name", "", "Display name for the admin account (required)")
	fs.StringVar(&cmd.Email, "email", "", "Login email for the admin account (required)")
	fs.StringVar(&cmd.Password, "password", "", "Login password for the admin account (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.IntVar(&cmd.BcryptCost, "bcrypt-cost", 12, "bcrypt cost used to hash the password")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-admin -name <name> -email <email> -password <password> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create an admin account for the admin panel.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s create-admin -name \"Store Admin\" -email admin@example.com -password s3cret\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Name == "" || cmd.Email == "" || cmd.Password == "" {
		fs.Usage()
		return fmt.Errorf("-name, -email and -password are all required")
	}
	if !strings.Contains(cmd.Email, "@") {
		return fmt.Errorf("invalid email address: %s", cmd.Email)
	}

	return nil
}

func (cmd *CreateAdminCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	hash, err := auth.HashPassword(cmd.Password, cmd.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin, err := admins.NewRepository(db.DB).Create(cmd.Name, cmd.Email, hash)
	if err != nil {
		return fmt.Errorf("failed to create admin (email may already exist): %w", err)
	}

	fmt.Printf("Created admin #%d (%s)\n", admin.ID, admin.Email)
	return nil
}
