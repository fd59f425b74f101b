package profile

import (
	"context"
	"errors"
	"time"

	"github.com/Kirito514/unilib/internal/permissions"
	"github.com/Kirito514/unilib/internal/token"
)

var ErrNotFound = errors.New("profile not found")

// Profile is the locally persisted user record. HEMIS-sourced fields
// are owned by the synchronizer and overwritten wholesale on every
// sync; role and organization are owned by account provisioning and
// never touched by synchronization.
type Profile struct {
	ID            string
	StudentNumber string
	Email         string

	Name          string
	AvatarURL     string
	Phone         string
	Faculty       string
	StudentGroup  string
	Course        string
	EducationForm string
	Specialty     string
	GPA           string

	Role           permissions.Role
	OrganizationID string

	HemisToken   token.Token
	LastSyncedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SyncFields is the exact field set synchronization writes. One
// struct, one UPDATE: the write is atomic and all-or-nothing.
type SyncFields struct {
	Name          string
	AvatarURL     string
	Phone         string
	Faculty       string
	StudentGroup  string
	Course        string
	EducationForm string
	Specialty     string
	GPA           string
	SyncedAt      time.Time
}

// Store is the external profile collaborator. Get/update by id with
// last-write-wins semantics; concurrent writers race and the final
// state is the last write.
type Store interface {
	Get(ctx context.Context, id string) (*Profile, error)
	GetByStudentNumber(ctx context.Context, studentNumber string) (*Profile, error)

	// Upsert creates or revisits a profile keyed on student number.
	// Existing rows keep their role and organization.
	Upsert(ctx context.Context, p Profile) (*Profile, error)

	// UpdateSync overwrites the HEMIS-sourced fields in one write.
	UpdateSync(ctx context.Context, id string, f SyncFields) error

	// UpdateToken replaces the stored federation token. A zero token
	// clears it (explicit logout).
	UpdateToken(ctx context.Context, id string, tok token.Token) error
}
