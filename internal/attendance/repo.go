package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Repository persists attendance state in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// InTx runs fn inside a single database transaction.
func (r *Repository) InTx(ctx context.Context, fn func(Txn) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := fn(&pgTxn{tx: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

// History returns the movement log for one student, newest first.
func (r *Repository) History(ctx context.Context, studentID int64) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tarih,
			COALESCE(to_char(giris_saati, 'HH24:MI'), ''),
			COALESCE(to_char(cikis_saati, 'HH24:MI'), '')
		FROM hareket_kayitlari
		WHERE ogrenci_id = $1
		ORDER BY tarih DESC, id DESC
	`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Date, &e.CheckIn, &e.CheckOut); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

type pgTxn struct {
	tx *sql.Tx
}

func (t *pgTxn) Presence(ctx context.Context, studentID int64) (bool, error) {
	var present bool
	err := t.tx.QueryRowContext(ctx, `
		SELECT COALESCE(su_an_okulda, FALSE) FROM ogrenciler WHERE id = $1 FOR UPDATE
	`, studentID).Scan(&present)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrStudentNotFound
	}
	return present, err
}

func (t *pgTxn) SetPresence(ctx context.Context, studentID int64, present bool, at time.Time) error {
	_, err := t.tx.ExecContext(ctx, `
		UPDATE ogrenciler SET su_an_okulda = $1, son_islem_saati = $2 WHERE id = $3
	`, present, at, studentID)
	return err
}

func (t *pgTxn) OpenEntry(ctx context.Context, studentID int64, date, clock string) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO hareket_kayitlari (ogrenci_id, tarih, giris_saati) VALUES ($1, $2, $3)
	`, studentID, date, clock)
	return err
}

func (t *pgTxn) CloseOpenEntry(ctx context.Context, studentID int64, date, clock string) (bool, error) {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE hareket_kayitlari SET cikis_saati = $1
		WHERE ogrenci_id = $2 AND tarih = $3 AND cikis_saati IS NULL
	`, clock, studentID, date)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
