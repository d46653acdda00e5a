package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/shopcore/shopcore/db"
)

func main() {
	mode := flag.String("mode", "up", "migration mode: up or down")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer conn.Close()

	if err := conn.Ping(); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}

	goose.SetBaseFS(db.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	ctx := context.Background()
	switch *mode {
	case "up":
		if err := goose.UpContext(ctx, conn, "migrations"); err != nil {
			log.Fatalf("migration up failed: %v", err)
		}
	case "down":
		if err := goose.DownContext(ctx, conn, "migrations"); err != nil {
			log.Fatalf("migration down failed: %v", err)
		}
	default:
		log.Fatalf("unknown mode %q", *mode)
	}

	log.Println("migrations complete")
}
