// Package sync reconciles freshly fetched HEMIS data into the local
// profile store.
package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kirito514/unilib/internal/hemis"
	"github.com/Kirito514/unilib/internal/hemis/provider"
	"github.com/Kirito514/unilib/internal/logger"
	"github.com/Kirito514/unilib/internal/profile"
)

// ErrPreconditionMissing means the profile holds no prior federation:
// no token or no student number on record.
var ErrPreconditionMissing = errors.New("no prior hemis federation on record")

// Synchronizer owns the write path into the profile's HEMIS-derived
// fields. Role, organization and gamification fields belong to other
// subsystems and are never written here.
type Synchronizer struct {
	provider provider.IdentityProvider
	store    profile.Store
	now      func() time.Time
}

func New(p provider.IdentityProvider, store profile.Store) *Synchronizer {
	return &Synchronizer{provider: p, store: store, now: time.Now}
}

// Sync fetches the latest remote record and overwrites the profile's
// HEMIS-sourced fields in a single update. The overwrite is not
// diffed, which makes it idempotent: re-running against unchanged
// remote data produces an identical profile except last_synced_at.
// Remote failure means no write at all.
func (s *Synchronizer) Sync(ctx context.Context, userID string) error {
	p, err := s.store.Get(ctx, userID)
	if errors.Is(err, profile.ErrNotFound) {
		return ErrPreconditionMissing
	}
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	if p.HemisToken.Value == "" || p.StudentNumber == "" {
		return ErrPreconditionMissing
	}

	record, err := s.provider.FetchProfile(ctx, p.HemisToken.Value)
	if err != nil {
		return err
	}

	fields := FieldsFromRecord(record, s.now())
	if err := s.store.UpdateSync(ctx, userID, fields); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	logger.Info("profile synced", map[string]any{
		"user_id":    userID,
		"student_id": p.StudentNumber,
	})
	return nil
}

// FieldsFromRecord maps a raw record onto the writable field set.
func FieldsFromRecord(r hemis.Record, syncedAt time.Time) profile.SyncFields {
	f := profile.SyncFields{
		Name:      profile.FormatName(r.DisplayName()),
		AvatarURL: r.AvatarURL(),
		Phone:     r.Phone,
		GPA:       r.AvgGPA,
		SyncedAt:  syncedAt,
	}
	if r.Faculty != nil {
		f.Faculty = r.Faculty.Name
	}
	if r.Group != nil {
		f.StudentGroup = r.Group.Name
	}
	if r.Level != nil {
		f.Course = r.Level.Name
	}
	if r.EducationForm != nil {
		f.EducationForm = r.EducationForm.Name
	}
	if r.Specialty != nil {
		f.Specialty = r.Specialty.Name
	}
	return f
}
