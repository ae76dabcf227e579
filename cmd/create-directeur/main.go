// Creates a director account. Directors cannot register themselves; an
// operator runs this once per reviewer.
package main

import (
	"context"
	"flag"
	"log"

	"avisportal/db"
	"avisportal/internal/config"
	"avisportal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	email := flag.String("email", "", "director email")
	password := flag.String("password", "", "director password")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	cfg, _ := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	dbConn, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Cannot connect to DB: %v", err)
	}
	defer dbConn.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Cannot hash password: %v", err)
	}

	store := db.NewStorage(dbConn)
	d := &models.Directeur{Email: *email, PasswordHash: string(hash)}
	if err := store.CreateDirecteur(context.Background(), d); err != nil {
		log.Fatalf("Cannot create directeur: %v", err)
	}

	log.Printf("Created directeur %s (id=%d)", d.Email, d.ID)
}
