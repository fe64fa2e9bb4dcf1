package auth

import (
	"context"
	"database/sql"
	"errors"
	"log"
)

// Users reads operator accounts from Postgres.
type Users struct {
	db *sql.DB
}

// NewUsers creates the account repo.
func NewUsers(db *sql.DB) *Users {
	return &Users{db: db}
}

// Authenticate checks email+password against the stored bcrypt hash. It does
// not distinguish an unknown account from a wrong password.
func (u *Users) Authenticate(ctx context.Context, email, password string) (bool, error) {
	var hash string
	err := u.db.QueryRowContext(ctx, `SELECT sifre_hash FROM kullanicilar WHERE email = $1`, email).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return CheckPassword(password, hash), nil
}

// EnsureAdmin seeds the operator account at boot when the table is empty and
// credentials are configured. Never overwrites an existing account.
func (u *Users) EnsureAdmin(ctx context.Context, email, password string) error {
	var count int
	if err := u.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM kullanicilar`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if email == "" || password == "" {
		log.Println("no operator account exists and ADMIN_EMAIL/ADMIN_PASSWORD not set; login disabled")
		return nil
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	_, err = u.db.ExecContext(ctx, `
		INSERT INTO kullanicilar (email, sifre_hash) VALUES ($1, $2)
		ON CONFLICT (email) DO NOTHING
	`, email, hash)
	if err == nil {
		log.Printf("seeded operator account %s", email)
	}
	return err
}
