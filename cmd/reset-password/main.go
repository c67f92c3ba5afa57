package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/config"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/database"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/logger"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/repository"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/service"
)

const minPasswordLength = 6

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	schoolRepo := repository.NewSchoolRepository(pool)
	authService := service.NewAuthService(cfg)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Reset School Password ===")

	fmt.Print("School email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	school, err := schoolRepo.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		fmt.Printf("Error: no school registered with %s\n", email)
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load school")
	}

	fmt.Print("New password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Println("Error reading password")
		return
	}
	if len(password) < minPasswordLength {
		fmt.Printf("Error: Password must be at least %d characters\n", minPasswordLength)
		return
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil || string(confirm) != string(password) {
		fmt.Println("Error: Passwords do not match")
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	hash, err := authService.HashPassword(string(password))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}
	if err := schoolRepo.UpdatePassword(ctx, school.ID, hash); err != nil {
		log.Fatal().Err(err).Msg("Failed to update password")
	}

	fmt.Printf("\nSuccess! Password for '%s' (%s) was reset.\n", school.Name, school.Email)
}
