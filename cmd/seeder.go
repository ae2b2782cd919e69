package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"expense_splits", "expenses", "group_memberships", "groups", "users"} {
				if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("password"), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		users := []struct {
			Email string
			Name  string
		}{
			{"alice@mail.com", "Alice"},
			{"bob@mail.com", "Bob"},
			{"carol@mail.com", "Carol"},
		}

		for _, u := range users {
			var exists int
			if err := db.Raw("SELECT 1 FROM users WHERE email = ?", u.Email).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec(
				"INSERT INTO users (email, name, password_hash, is_active, created_at, updated_at) VALUES (?, ?, ?, true, now(), now())",
				u.Email, u.Name, string(hash),
			).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			fmt.Println("Seeded user:", u.Email)
		}

		categories := []struct {
			Name  string
			Color string
		}{
			{"food", "#E74C3C"},
			{"transport", "#3498DB"},
			{"housing", "#2ECC71"},
			{"entertainment", "#9B59B6"},
			{"travel", "#F39C12"},
			{"other", "#95A5A6"},
		}

		for _, c := range categories {
			var exists int
			if err := db.Raw("SELECT 1 FROM categories WHERE name = ?", c.Name).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec(
				"INSERT INTO categories (name, color, created_at) VALUES (?, ?, now())",
				c.Name, c.Color,
			).Error; err != nil {
				log.Fatalf("failed to insert category %s: %v", c.Name, err)
			}
			fmt.Printf("Seeded category: %s\n", c.Name)
		}

		fmt.Println("Seeding finished")
	},
}
