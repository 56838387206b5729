// Admin command line for operating a cardex deployment: seeding the catalog,
// creating accounts and granting currency without going through the API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"syscall"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/cardex/cardex/infra"
	infrarepo "github.com/cardex/cardex/infra/repository"
	"github.com/cardex/cardex/pkg/config"
	authsvc "github.com/cardex/cardex/pkg/service/auth"
	usersvc "github.com/cardex/cardex/pkg/service/user"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
)

func usage() {
	fmt.Println("Usage: cli <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  create-user <username>              create an account (password prompted)")
	fmt.Println("  grant <user_id> <amount>            credit currency to a user")
	fmt.Println("  user <user_id>                      show a user")
	fmt.Println("  migrate                             run database migrations")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	logger := slog.Default()
	cfg, err := config.Load(logger)
	if err != nil {
		errorColor.Println("Failed to load configuration:", err)
		os.Exit(1)
	}
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		errorColor.Println("Failed to connect to database:", err)
		os.Exit(1)
	}
	uow := infrarepo.NewUoW(db)
	ctx := context.Background()

	switch os.Args[1] {
	case "create-user":
		if len(os.Args) < 3 {
			fmt.Println("Usage: cli create-user <username>")
			os.Exit(1)
		}
		username := os.Args[2]
		infoColor.Print("Password: ")
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			errorColor.Println("Failed to read password:", err)
			os.Exit(1)
		}
		svc := authsvc.New(uow, &cfg.Jwt, cfg.Game.StartingCurrency, logger)
		u, err := svc.Register(ctx, username, string(raw))
		if err != nil {
			errorColor.Println("Failed to create user:", err)
			os.Exit(1)
		}
		successColor.Printf("User created: ID=%s, Currency=%d\n", u.ID, u.Currency)
	case "grant":
		if len(os.Args) < 4 {
			fmt.Println("Usage: cli grant <user_id> <amount>")
			os.Exit(1)
		}
		userID, err := uuid.Parse(os.Args[2])
		if err != nil {
			errorColor.Println("Invalid user ID:", err)
			os.Exit(1)
		}
		amount, err := strconv.Atoi(os.Args[3])
		if err != nil {
			errorColor.Println("Invalid amount:", err)
			os.Exit(1)
		}
		svc := usersvc.New(uow, logger)
		u, err := svc.AddCurrency(ctx, userID, amount)
		if err != nil {
			errorColor.Println("Failed to grant currency:", err)
			os.Exit(1)
		}
		successColor.Printf("Granted %d to %s. New balance: %d\n", amount, u.Username, u.Currency)
	case "user":
		if len(os.Args) < 3 {
			fmt.Println("Usage: cli user <user_id>")
			os.Exit(1)
		}
		userID, err := uuid.Parse(os.Args[2])
		if err != nil {
			errorColor.Println("Invalid user ID:", err)
			os.Exit(1)
		}
		svc := usersvc.New(uow, logger)
		u, err := svc.GetUser(ctx, userID)
		if err != nil {
			errorColor.Println("Failed to fetch user:", err)
			os.Exit(1)
		}
		infoColor.Printf("ID=%s Username=%s Currency=%d Created=%s\n",
			u.ID, u.Username, u.Currency, u.CreatedAt.Format("2006-01-02"))
	case "migrate":
		if err := infrarepo.Migrate(db); err != nil {
			errorColor.Println("Migration failed:", err)
			os.Exit(1)
		}
		successColor.Println("Migrations applied")
	default:
		errorColor.Println("Unknown command:", os.Args[1])
		usage()
		os.Exit(1)
	}
}
