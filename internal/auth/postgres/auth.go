package auth

import (
	"database/sql"
	"fmt"

	"github.com/shiftwise/planning-api/internal/auth"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetAccountByEmail(email string) (*auth.Account, error) {
	var account auth.Account

	query := `SELECT id, email, full_name, role, establishment_id, password_hash FROM users WHERE email = ?`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&account.ID, &account.Email, &account.FullName, &account.Role, &account.EstablishmentID, &account.PasswordHash); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("account not found")
		}
		return nil, err
	}

	return &account, nil
}

func (r *Repository) SetPasswordHash(userID int64, hash string) error {
	res := r.db.Exec(`UPDATE users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, hash, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("account not found")
	}
	return nil
}
