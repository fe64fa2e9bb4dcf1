package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB wraps sql.DB for Postgres using pgx.
type DB struct {
	Client *sql.DB
}

// NewDB creates a Postgres connection with sane defaults.
func NewDB(connString string) (*DB, error) {
	db, err := sql.Open("pgx", connString)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	return &DB{Client: db}, db.PingContext(context.Background())
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	if d == nil || d.Client == nil {
		return nil
	}
	return d.Client.Close()
}

// EnsureSchema creates missing tables and adds missing columns. It is additive
// only and safe to run on every boot; existing data is never touched.
func (d *DB) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS kullanicilar (
			id         SERIAL PRIMARY KEY,
			email      VARCHAR(120) UNIQUE NOT NULL,
			sifre_hash TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ogrenciler (
			id               SERIAL PRIMARY KEY,
			ad_soyad         VARCHAR(100) NOT NULL,
			veli_ad_soyad    VARCHAR(100),
			profil_resmi_url VARCHAR(255)
		)`,
		`ALTER TABLE ogrenciler
			ADD COLUMN IF NOT EXISTS tc_no VARCHAR(11),
			ADD COLUMN IF NOT EXISTS yedek_veli_ad_soyad VARCHAR(100),
			ADD COLUMN IF NOT EXISTS veli_tel VARCHAR(20),
			ADD COLUMN IF NOT EXISTS yedek_veli_tel VARCHAR(20),
			ADD COLUMN IF NOT EXISTS kan_grubu VARCHAR(10),
			ADD COLUMN IF NOT EXISTS ilaclar TEXT,
			ADD COLUMN IF NOT EXISTS ozel_durum TEXT,
			ADD COLUMN IF NOT EXISTS su_an_okulda BOOLEAN DEFAULT FALSE,
			ADD COLUMN IF NOT EXISTS son_islem_saati TIMESTAMP`,
		`CREATE TABLE IF NOT EXISTS hareket_kayitlari (
			id           SERIAL PRIMARY KEY,
			ogrenci_id   INTEGER NOT NULL,
			tarih        DATE NOT NULL,
			giris_saati  TIME,
			cikis_saati  TIME
		)`,
		`CREATE INDEX IF NOT EXISTS idx_hareket_ogrenci_tarih
			ON hareket_kayitlari (ogrenci_id, tarih)`,
	}
	for _, stmt := range stmts {
		if _, err := d.Client.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
