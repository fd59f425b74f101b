package profile

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Kirito514/unilib/internal/db"
	"github.com/Kirito514/unilib/internal/permissions"
	"github.com/Kirito514/unilib/internal/token"
)

// PGStore is the Postgres-backed profile store.
type PGStore struct {
	db *db.DB
}

func NewPGStore(db *db.DB) *PGStore {
	return &PGStore{db: db}
}

const profileColumns = `
	id, student_number, email, name, avatar_url, phone,
	faculty, student_group, course, education_form, specialty, gpa,
	role, organization_id,
	hemis_token, hemis_token_issued_at, hemis_token_expires_in,
	last_synced_at, created_at, updated_at
`

func (s *PGStore) Get(ctx context.Context, id string) (*Profile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
		WHERE id = $1
	`, id)
	return scanProfile(row)
}

func (s *PGStore) GetByStudentNumber(ctx context.Context, studentNumber string) (*Profile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
		WHERE student_number = $1
	`, studentNumber)
	return scanProfile(row)
}

// Upsert creates the profile if absent, keyed on student number. An
// existing row keeps its role, organization and HEMIS fields; only
// the contact email is refreshed. Replaces the old trigger-then-retry
// bootstrap with a single idempotent statement.
func (s *PGStore) Upsert(ctx context.Context, p Profile) (*Profile, error) {
	role := p.Role
	if role == "" {
		role = permissions.RoleUser
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO profiles (student_number, email, name, role, organization_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (student_number) DO UPDATE SET
			email = CASE WHEN EXCLUDED.email <> '' THEN EXCLUDED.email ELSE profiles.email END,
			updated_at = NOW()
		RETURNING `+profileColumns+`
	`, p.StudentNumber, p.Email, p.Name, string(role), p.OrganizationID)
	return scanProfile(row)
}

func (s *PGStore) UpdateSync(ctx context.Context, id string, f SyncFields) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE profiles SET
			name = $2,
			avatar_url = $3,
			phone = $4,
			faculty = $5,
			student_group = $6,
			course = $7,
			education_form = $8,
			specialty = $9,
			gpa = $10,
			last_synced_at = $11,
			updated_at = NOW()
		WHERE id = $1
	`,
		id,
		f.Name, f.AvatarURL, f.Phone, f.Faculty, f.StudentGroup,
		f.Course, f.EducationForm, f.Specialty, f.GPA, f.SyncedAt,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *PGStore) UpdateToken(ctx context.Context, id string, tok token.Token) error {
	var issuedAt any
	if !tok.IssuedAt.IsZero() {
		issuedAt = tok.IssuedAt
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE profiles SET
			hemis_token = $2,
			hemis_token_issued_at = $3,
			hemis_token_expires_in = $4,
			updated_at = NOW()
		WHERE id = $1
	`, id, tok.Value, issuedAt, int64(tok.ExpiresIn/time.Second))
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanProfile(row *sql.Row) (*Profile, error) {
	var (
		p              Profile
		role           string
		tokenIssuedAt  sql.NullTime
		tokenExpiresIn int64
		lastSyncedAt   sql.NullTime
	)

	err := row.Scan(
		&p.ID, &p.StudentNumber, &p.Email, &p.Name, &p.AvatarURL, &p.Phone,
		&p.Faculty, &p.StudentGroup, &p.Course, &p.EducationForm, &p.Specialty, &p.GPA,
		&role, &p.OrganizationID,
		&p.HemisToken.Value, &tokenIssuedAt, &tokenExpiresIn,
		&lastSyncedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	p.Role = permissions.Role(role)
	if tokenIssuedAt.Valid {
		p.HemisToken.IssuedAt = tokenIssuedAt.Time
	}
	p.HemisToken.ExpiresIn = time.Duration(tokenExpiresIn) * time.Second
	if lastSyncedAt.Valid {
		t := lastSyncedAt.Time
		p.LastSyncedAt = &t
	}
	return &p, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
