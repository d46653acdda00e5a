package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/shopcore/shopcore/domain/entity"
	"github.com/shopcore/shopcore/infrastructure/adapter/postgres"
	"github.com/shopcore/shopcore/infrastructure/config"
	"github.com/shopcore/shopcore/infrastructure/service/password"
)

// Bootstraps the first admin account. Usage:
//
//	create_admin [email] [password] [username]
func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	email := "admin@shopcore.local"
	adminPassword := "admin123"
	username := "Administrator"

	if len(os.Args) > 1 {
		email = os.Args[1]
	}
	if len(os.Args) > 2 {
		adminPassword = os.Args[2]
	}
	if len(os.Args) > 3 {
		username = os.Args[3]
	}

	userRepo := postgres.NewUserRepository(db)

	exists, err := userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		log.Fatalf("Failed to check existing admin: %v", err)
	}
	if exists {
		log.Fatalf("Account with email %s already exists", email)
	}

	passwordService := password.NewBcryptPasswordService(10)
	hashed, err := passwordService.HashPassword(adminPassword)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := entity.NewUser(uuid.New().String(), username, email, hashed, entity.RoleAdmin)
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	fmt.Printf("Admin user created: %s (%s)\n", admin.Email, admin.ID)
}
