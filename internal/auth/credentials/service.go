package credentials

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/Kirito514/unilib/internal/db"
	"github.com/Kirito514/unilib/internal/permissions"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyRegistered  = errors.New("credentials already exist")
	ErrInvalidRole        = errors.New("unknown role")
)

// Service manages locally provisioned password accounts. These are
// the staff accounts an admin creates directly (librarians,
// moderators) and the db-login path for already registered students;
// federation against HEMIS does not pass through here.
type Service struct {
	db *db.DB
}

func NewService(db *db.DB) *Service {
	return &Service{db: db}
}

// Register provisions an account with a role: profile upsert keyed on
// student number, then credentials insert. Re-registering an existing
// account fails rather than silently replacing the password.
func (s *Service) Register(
	ctx context.Context,
	studentNumber string,
	email string,
	name string,
	organizationID string,
	role permissions.Role,
	password string,
) (string, error) {

	if !permissions.Valid(role) {
		return "", ErrInvalidRole
	}

	var userID uuid.UUID

	// 1. Find or create profile by student number
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO profiles (student_number, email, name, role, organization_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (student_number) DO UPDATE SET
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			role = EXCLUDED.role,
			organization_id = EXCLUDED.organization_id,
			updated_at = NOW()
		RETURNING id
	`, studentNumber, email, name, string(role), organizationID).Scan(&userID)

	if err != nil {
		return "", err
	}

	// 2. Check if credentials already exist
	var exists bool
	err = s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM credentials WHERE user_id = $1
		)
	`, userID).Scan(&exists)

	if err != nil {
		return "", err
	}

	if exists {
		return "", ErrAlreadyRegistered
	}

	// 3. Hash password
	hash, version, err := HashPassword(password)
	if err != nil {
		return "", err
	}

	// 4. Insert credentials
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO credentials (user_id, password_hash, hash_version)
		VALUES ($1, $2, $3)
	`, userID, hash, version)

	if err != nil {
		return "", err
	}

	return userID.String(), nil
}

// Authenticate checks a student number and password against stored
// credentials. Lookup and comparison failures are indistinguishable
// to the caller.
func (s *Service) Authenticate(
	ctx context.Context,
	studentNumber string,
	password string,
) (string, error) {

	var (
		userID       uuid.UUID
		passwordHash string
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT p.id, c.password_hash
		FROM profiles p
		JOIN credentials c ON c.user_id = p.id
		WHERE p.student_number = $1
	`, studentNumber).Scan(&userID, &passwordHash)

	if err != nil {
		// hide whether the account exists or not
		if !errors.Is(err, sql.ErrNoRows) {
			return "", err
		}
		return "", ErrInvalidCredentials
	}

	if err := VerifyPassword(passwordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	return userID.String(), nil
}
