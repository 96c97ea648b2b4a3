package main

import (
	"context"
	"flag"
	"log"

	"go-creamery-pos/internal/config"
	"go-creamery-pos/internal/repository"
	"go-creamery-pos/pkg/database"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	email := flag.String("email", cfg.SeedAdminEmail, "account to reset")
	newPassword := flag.String("password", cfg.SeedAdminPassword, "new password")
	flag.Parse()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	users := repository.NewUserRepo(db)

	user, err := users.FindByEmail(ctx, *email)
	if err != nil {
		log.Fatalf("❌ User %s not found in database: %v", *email, err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	if err := users.UpdatePassword(ctx, user.ID, string(hashedPassword)); err != nil {
		log.Fatalf("❌ Failed to update password in DB: %v", err)
	}
	// Sign out every open session for the account
	if err := users.UpdateTokenVersion(ctx, user.ID, ""); err != nil {
		log.Fatalf("❌ Failed to revoke sessions: %v", err)
	}

	log.Printf("✅ Success! Password for %s has been reset", *email)
}
