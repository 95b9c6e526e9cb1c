// scripts/seed_users.go
package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/patiponrmutl/DASystem/config"
	"github.com/patiponrmutl/DASystem/database"
	"github.com/patiponrmutl/DASystem/models"
	"github.com/patiponrmutl/DASystem/repository"
	"github.com/patiponrmutl/DASystem/service"
)

// Seeds the demo accounts. Existing users with the same email are left
// alone, so the script is safe to re-run.
func main() {
	_ = godotenv.Load(".env.local")

	cfg := config.Load()
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	users := repository.NewUserRepository(db)

	demo := []struct {
		name  string
		email string
		role  models.Role
	}{
		{"Admin User", "admin@demo.com", models.RoleAdmin},
		{"Principal User", "principal@demo.com", models.RolePrincipal},
		{"John Doe", "user@demo.com", models.RoleUser},
		{"Jane Smith", "jane@demo.com", models.RoleUser},
		{"Mike Johnson", "mike@demo.com", models.RoleUser},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	for _, d := range demo {
		if _, err := users.FindByEmail(d.email); err == nil {
			fmt.Printf("skip %s (already exists)\n", d.email)
			continue
		} else if err != service.ErrNotFound {
			log.Fatalf("query users: %v", err)
		}

		u := &models.User{
			Name:         d.name,
			Email:        d.email,
			PasswordHash: string(hash),
			Role:         d.role,
		}
		if err := users.Create(u); err != nil {
			log.Fatalf("insert %s: %v", d.email, err)
		}
		fmt.Printf("created %s (%s)\n", d.email, d.role)
	}

	fmt.Println("demo accounts ready, password is \"password\"")
}
