package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/stemsi/sodaubai-backend/internal/config"
	"github.com/stemsi/sodaubai-backend/internal/database"
	"github.com/stemsi/sodaubai-backend/internal/logger"
	"github.com/stemsi/sodaubai-backend/internal/repository"
	"github.com/stemsi/sodaubai-backend/internal/service"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()
	log := logger.Component(logger.Setup(cfg.LogLevel, cfg.LogFormat), "create-admin")

	if cfg.StoreDriver == config.StoreMemory {
		log.Fatal().Msg("STORE_DRIVER=memory keeps nothing after exit; point it at postgres or redis")
	}

	ctx := context.Background()

	// ─── Open Blob Store ───────────────────────────────────────────────
	store, closeStore, err := database.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open store")
	}
	defer closeStore()

	// ─── Initialize Services ───────────────────────────────────────────
	seedSecret, err := bcrypt.GenerateFromPassword([]byte(cfg.DefaultAdminSecret), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash default admin secret")
	}
	keys := config.NewBlobKeyStruct(cfg.KeyPrefix)
	accountRepo := repository.NewAccountRepository(store, keys, repository.DefaultAccounts(string(seedSecret)), log)
	sessionRepo := repository.NewSessionRepository(store, keys, log)
	authService := service.NewAuthService(cfg, accountRepo, sessionRepo, log)
	accountService := service.NewAccountService(accountRepo, sessionRepo, authService, log)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Administrator ===")

	fmt.Print("Enter Username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)
	if username == "" {
		fmt.Println("Error: Username is required")
		os.Exit(1)
	}

	fmt.Print("Enter Full Name: ")
	fullName, _ := reader.ReadString('\n')
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		fmt.Println("Error: Full name is required")
		os.Exit(1)
	}

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Println("Error reading password")
		os.Exit(1)
	}
	password := string(bytePassword)
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		os.Exit(1)
	}

	fmt.Print("Confirm Password: ")
	byteConfirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil || string(byteConfirm) != password {
		fmt.Println("Error: Passwords do not match")
		os.Exit(1)
	}

	// ─── Create ────────────────────────────────────────────────────────
	admin, err := accountService.CreateAdmin(ctx, username, fullName, password)
	if errors.Is(err, repository.ErrDuplicateUsername) {
		fmt.Printf("Error: username %q is already taken\n", username)
		os.Exit(1)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin")
	}

	fmt.Printf("\nSuccess! Administrator '%s' (%s) created with ID: %s\n", admin.FullName, admin.Username, admin.ID)
}
