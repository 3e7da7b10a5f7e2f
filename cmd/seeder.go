package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with an establishment and an activated admin for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		establishmentName := "Main Street Bistro"
		var establishmentID int64
		row := db.QueryRow("SELECT id FROM establishments WHERE name = $1", establishmentName)
		if err := row.Scan(&establishmentID); err != nil {
			err = db.QueryRow(
				"INSERT INTO establishments (name, address, created_at, updated_at) VALUES ($1, $2, now(), now()) RETURNING id",
				establishmentName, "1 Main Street",
			).Scan(&establishmentID)
			if err != nil {
				log.Fatalf("failed to insert establishment: %v", err)
			}
			fmt.Println("Seeded establishment:", establishmentName)
		}

		password := "admin-password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		adminEmail := "admin@planning.local"
		var exists int
		row = db.QueryRow("SELECT 1 FROM users WHERE email = $1", adminEmail)
		if err := row.Scan(&exists); err == nil {
			fmt.Println("admin user already exists")
			return
		}

		_, err = db.Exec(
			"INSERT INTO users (email, full_name, role, hourly_rate, establishment_id, password_hash, created_at, updated_at) VALUES ($1, $2, 'admin', 0, $3, $4, now(), now())",
			adminEmail, "Platform Admin", establishmentID, string(hash),
		)
		if err != nil {
			log.Fatalf("failed to insert admin user: %v", err)
		}

		fmt.Println("Seeded admin user:", adminEmail)
	},
}
