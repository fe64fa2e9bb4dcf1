package student

import (
	"context"
	"database/sql"
	"errors"
)

// ErrNotFound signals an operation against a student id with no record.
var ErrNotFound = errors.New("student not found")

const columns = `id, ad_soyad, COALESCE(tc_no,''), COALESCE(kan_grubu,''),
	COALESCE(veli_ad_soyad,''), COALESCE(veli_tel,''),
	COALESCE(yedek_veli_ad_soyad,''), COALESCE(yedek_veli_tel,''),
	COALESCE(ilaclar,''), COALESCE(ozel_durum,''),
	COALESCE(profil_resmi_url,''), COALESCE(su_an_okulda, FALSE), son_islem_saati`

// Repository persists student records in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// List returns every student ordered by name ascending. The roster view relies
// on this ordering and does not sort again.
func (r *Repository) List(ctx context.Context) ([]Student, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+columns+` FROM ogrenciler ORDER BY ad_soyad ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// Get returns a single student by id, or nil when no such record exists.
func (r *Repository) Get(ctx context.Context, id int64) (*Student, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM ogrenciler WHERE id = $1`, id)
	s, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Create inserts a new student record and returns its id. photoRef may be
// empty when registration carried no photo.
func (r *Repository) Create(ctx context.Context, f Fields, photoRef string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO ogrenciler
			(ad_soyad, tc_no, kan_grubu, veli_ad_soyad, veli_tel,
			 yedek_veli_ad_soyad, yedek_veli_tel, ilaclar, ozel_durum, profil_resmi_url)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id
	`, f.Name, f.NationalID, f.BloodType, f.GuardianName, f.GuardianPhone,
		f.BackupName, f.BackupPhone, f.Medications, f.Condition, nullable(photoRef)).Scan(&id)
	return id, err
}

// Update replaces every registration field. When photoRef is empty the stored
// photo reference is left as is.
func (r *Repository) Update(ctx context.Context, id int64, f Fields, photoRef string) error {
	if photoRef != "" {
		_, err := r.db.ExecContext(ctx, `
			UPDATE ogrenciler SET
				ad_soyad=$1, tc_no=$2, kan_grubu=$3, veli_ad_soyad=$4, veli_tel=$5,
				yedek_veli_ad_soyad=$6, yedek_veli_tel=$7, ilaclar=$8, ozel_durum=$9,
				profil_resmi_url=$10
			WHERE id=$11
		`, f.Name, f.NationalID, f.BloodType, f.GuardianName, f.GuardianPhone,
			f.BackupName, f.BackupPhone, f.Medications, f.Condition, photoRef, id)
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		UPDATE ogrenciler SET
			ad_soyad=$1, tc_no=$2, kan_grubu=$3, veli_ad_soyad=$4, veli_tel=$5,
			yedek_veli_ad_soyad=$6, yedek_veli_tel=$7, ilaclar=$8, ozel_durum=$9
		WHERE id=$10
	`, f.Name, f.NationalID, f.BloodType, f.GuardianName, f.GuardianPhone,
		f.BackupName, f.BackupPhone, f.Medications, f.Condition, id)
	return err
}

// UpdatePhoto swaps the photo reference only and returns the previous one so
// the caller can discard the old file.
func (r *Repository) UpdatePhoto(ctx context.Context, id int64, photoRef string) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	var prev sql.NullString
	err = tx.QueryRowContext(ctx, `SELECT profil_resmi_url FROM ogrenciler WHERE id = $1 FOR UPDATE`, id).Scan(&prev)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE ogrenciler SET profil_resmi_url = $1 WHERE id = $2`, photoRef, id); err != nil {
		return "", err
	}
	return prev.String, tx.Commit()
}

// Delete removes a student together with its movement-log rows in one
// transaction. Returns the photo reference of the deleted record.
func (r *Repository) Delete(ctx context.Context, id int64) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	var photo sql.NullString
	err = tx.QueryRowContext(ctx, `SELECT profil_resmi_url FROM ogrenciler WHERE id = $1`, id).Scan(&photo)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM hareket_kayitlari WHERE ogrenci_id = $1`, id); err != nil {
		return "", err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM ogrenciler WHERE id = $1`, id); err != nil {
		return "", err
	}
	return photo.String, tx.Commit()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStudent(row scanner) (Student, error) {
	var s Student
	err := row.Scan(&s.ID, &s.Name, &s.NationalID, &s.BloodType,
		&s.GuardianName, &s.GuardianPhone, &s.BackupName, &s.BackupPhone,
		&s.Medications, &s.Condition, &s.PhotoRef, &s.Present, &s.LastChange)
	return s, err
}
