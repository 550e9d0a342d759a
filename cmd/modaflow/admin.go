package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"syscall"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/modaflow/backend/internal/adapter/postgres"
	"github.com/modaflow/backend/internal/config"
	"github.com/modaflow/backend/internal/domain/product"
	"github.com/modaflow/backend/internal/domain/tenant"
	"github.com/modaflow/backend/internal/domain/user"
	"github.com/modaflow/backend/internal/service"
)

// cliAdmin is the synthetic caller for operator commands, which run
// with full privileges by definition.
var cliAdmin = &user.User{ID: "cli", Name: "Operator", Role: user.RoleAdmin, Active: true}

// runAdmin dispatches operator subcommands.
func runAdmin(args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "--help" {
		printAdminHelp()
		return nil
	}

	switch args[0] {
	case "create-user":
		return runAdminCreateUser(args[1:])
	case "reset-password":
		return runAdminResetPassword(args[1:])
	case "list-users":
		return runAdminListUsers(args[1:])
	case "migrate":
		return runAdminMigrate(args[1:])
	case "rollback":
		return runAdminRollback(args[1:])
	case "seed-demo":
		return runAdminSeedDemo(args[1:])
	default:
		printAdminHelp()
		return fmt.Errorf("unknown admin command: %s", args[0])
	}
}

func printAdminHelp() {
	fmt.Fprintf(os.Stderr, `Usage: modaflow admin <command> [options]

Commands:
  create-user      Create a new user account
  reset-password   Reset a user's password
  list-users       List all user accounts
  migrate          Apply pending database migrations
  rollback         Roll back the last database migration
  seed-demo        Create the demo storefront with sample products
  help             Show this help message

Examples:
  modaflow admin create-user --email admin@modaflow.local --name "Admin" --role ADMIN
  modaflow admin reset-password --email admin@modaflow.local
  modaflow admin seed-demo
`)
}

type adminDeps struct {
	cfg     *config.Config
	store   *postgres.Store
	cleanup func()
}

func loadAdminDeps() (*adminDeps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	pool, err := postgres.NewPool(context.Background(), cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return &adminDeps{
		cfg:     cfg,
		store:   postgres.NewStore(pool),
		cleanup: pool.Close,
	}, nil
}

func runAdminCreateUser(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)
	email := fs.String("email", "", "user email address (required)")
	name := fs.String("name", "", "user display name (required)")
	password := fs.String("password", "", "password (prompted if not provided)")
	role := fs.String("role", string(user.RoleCustomer), "role: ADMIN, LOJISTA or CUSTOMER")
	tenantID := fs.String("tenant", "", "tenant id (required for LOJISTA)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		return fmt.Errorf("--email is required")
	}
	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	pass := *password
	if pass == "" {
		var err error
		pass, err = promptPassword("Password: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		confirm, err := promptPassword("Confirm password: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		if pass != confirm {
			return fmt.Errorf("passwords do not match")
		}
	}

	deps, err := loadAdminDeps()
	if err != nil {
		return err
	}
	defer deps.cleanup()

	authSvc := service.NewAuthService(deps.store, deps.cfg.Auth)
	u, err := authSvc.Register(context.Background(), cliAdmin, &user.CreateRequest{
		Email:    *email,
		Name:     *name,
		Password: pass,
		Role:     user.Role(*role),
		TenantID: *tenantID,
	})
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Fprintf(os.Stderr, "User created: %s (id=%s, role=%s)\n", u.Email, u.ID, u.Role)
	return nil
}

func runAdminResetPassword(args []string) error {
	fs := flag.NewFlagSet("reset-password", flag.ContinueOnError)
	email := fs.String("email", "", "user email address (required)")
	password := fs.String("password", "", "new password (prompted if not provided)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		return fmt.Errorf("--email is required")
	}

	newPass := *password
	if newPass == "" {
		var err error
		newPass, err = promptPassword("New password: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		confirm, err := promptPassword("Confirm password: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		if newPass != confirm {
			return fmt.Errorf("passwords do not match")
		}
	}

	deps, err := loadAdminDeps()
	if err != nil {
		return err
	}
	defer deps.cleanup()

	authSvc := service.NewAuthService(deps.store, deps.cfg.Auth)
	if err := authSvc.AdminResetPassword(context.Background(), *email, newPass); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Password reset successfully for %s\n", *email)
	return nil
}

func runAdminListUsers(args []string) error {
	fs := flag.NewFlagSet("list-users", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	deps, err := loadAdminDeps()
	if err != nil {
		return err
	}
	defer deps.cleanup()

	authSvc := service.NewAuthService(deps.store, deps.cfg.Auth)
	users, err := authSvc.ListUsers(context.Background(), cliAdmin)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	if len(users) == 0 {
		fmt.Println("No users found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tEMAIL\tNAME\tROLE\tTENANT\tACTIVE")
	for i := range users {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%t\n",
			users[i].ID, users[i].Email, users[i].Name, users[i].Role, users[i].TenantID, users[i].Active)
	}
	return w.Flush()
}

func runAdminMigrate(args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := postgres.RunMigrations(context.Background(), cfg.Postgres.DSN); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "Migrations applied.")
	return nil
}

func runAdminRollback(args []string) error {
	fs := flag.NewFlagSet("rollback", flag.ContinueOnError)
	steps := fs.Int("steps", 1, "number of migrations to roll back")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := postgres.RollbackMigrations(context.Background(), cfg.Postgres.DSN, *steps); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Rolled back %d migration(s).\n", *steps)
	return nil
}

// runAdminSeedDemo provisions the demo storefront used by local
// frontend development.
func runAdminSeedDemo(args []string) error {
	fs := flag.NewFlagSet("seed-demo", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	deps, err := loadAdminDeps()
	if err != nil {
		return err
	}
	defer deps.cleanup()

	ctx := context.Background()
	tenantSvc := service.NewTenantService(deps.store, nil)
	catalogSvc := service.NewCatalogService(deps.store, nil)

	t, err := tenantSvc.Create(ctx, cliAdmin, &tenant.CreateRequest{
		Name:         "Aura Minimalist",
		Slug:         "aura-minimalist",
		CheckoutMode: tenant.CheckoutWhatsApp,
		WhatsApp:     "5511999999999",
		Categories:   []string{"Dresses", "Blouses", "Accessories"},
		MenuItems:    []string{"Home", "Catalog", "About"},
		About:        "Minimalist wholesale fashion for modern retailers.",
		HeroTitle:    "Aura Minimalist",
		HeroSubtitle: "Wholesale essentials, curated.",
	})
	if err != nil {
		return fmt.Errorf("seed tenant: %w", err)
	}

	samples := []product.CreateRequest{
		{TenantID: t.ID, Name: "Linen Slip Dress", Price: 389.00, Category: "Dresses", Stock: 120, MinQuantity: 10, Sizes: []string{"S", "M", "L"}},
		{TenantID: t.ID, Name: "Silk Camisole", Price: 249.90, Category: "Blouses", Stock: 200, MinQuantity: 20, Sizes: []string{"P", "M", "G"}},
		{TenantID: t.ID, Name: "Woven Leather Belt", Price: 99.50, Category: "Accessories", Stock: 300, MinQuantity: 30},
	}
	for i := range samples {
		if _, err := catalogSvc.Create(ctx, cliAdmin, &samples[i]); err != nil {
			return fmt.Errorf("seed product %q: %w", samples[i].Name, err)
		}
	}

	fmt.Fprintf(os.Stderr, "Demo storefront seeded: %s (id=%s)\n", t.Slug, t.ID)
	return nil
}

// promptPassword reads a password from the terminal without echoing.
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
