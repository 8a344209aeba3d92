package seed

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrnaufal/perpustakaan/pkg/hash"
	"github.com/andrnaufal/perpustakaan/services/auth/internal/models"
)

type seedUser struct {
	Username string
	Password string
	Role     string
}

var users = []seedUser{
	{Username: "admin", Password: "admin", Role: "admin"},
	{Username: "budi", Password: "budi123", Role: "user"},
}

// Reset drops and reseeds the user table. Dev utility behind /init-db,
// not part of the runtime contract.
func Reset(ctx context.Context, db *gorm.DB) error {
	tx := db.WithContext(ctx)

	if err := tx.Migrator().DropTable(&models.User{}); err != nil {
		return fmt.Errorf("drop users: %w", err)
	}
	if err := tx.AutoMigrate(&models.User{}); err != nil {
		return fmt.Errorf("migrate users: %w", err)
	}

	for _, u := range users {
		pwHash, err := hash.HashPassword(u.Password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", u.Username, err)
		}
		user := models.User{
			Username:     u.Username,
			PasswordHash: pwHash,
			Role:         u.Role,
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("seed user %s: %w", u.Username, err)
		}
	}

	return nil
}
