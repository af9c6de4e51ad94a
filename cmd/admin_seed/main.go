// Command admin_seed creates the first admin account so the admin
// endpoints are reachable on a fresh deployment.
package main

import (
	"errors"
	"log"
	"os"

	"crediwallet/internal/config"
	"crediwallet/internal/models"
	"crediwallet/internal/repositories"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	adminName := os.Getenv("ADMIN_NAME")
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminName == "" || adminEmail == "" || adminPassword == "" {
		log.Fatal("ADMIN_NAME, ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	db, err := repositories.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}()

	userRepo := repositories.NewUserRepository(db, nil)

	if _, err := userRepo.GetByEmail(adminEmail, false); err == nil {
		log.Println("Admin user already exists")
		return
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		log.Fatalf("Failed to check for existing admin: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	accountNumber, err := userRepo.GenerateAccountNumber()
	if err != nil {
		log.Fatalf("Failed to generate account number: %v", err)
	}

	admin := &models.User{
		Name:          adminName,
		Email:         adminEmail,
		Password:      string(hashed),
		AccountNumber: accountNumber,
		Balance:       decimal.Zero,
		IsAdmin:       true,
	}
	if err := userRepo.Create(admin); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	log.Printf("Admin account created: %s (%s)", admin.Email, admin.AccountNumber)
}
