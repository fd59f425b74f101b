package resolver

import (
	"context"
	"errors"

	"github.com/Kirito514/unilib/internal/hemis"
	"github.com/Kirito514/unilib/internal/permissions"
	"github.com/Kirito514/unilib/internal/profile"
)

// StoreResolver maps students onto profiles through the profile
// store. Bootstrap is a single idempotent upsert keyed on the student
// number: first federation creates the profile with role USER, every
// later one converges on the same row.
type StoreResolver struct {
	store profile.Store
}

func NewStoreResolver(store profile.Store) *StoreResolver {
	return &StoreResolver{store: store}
}

func (r *StoreResolver) Resolve(
	ctx context.Context,
	student hemis.FilteredStudent,
) (*profile.Profile, error) {

	if student.StudentID == "" {
		return nil, errors.New("resolver: student id is empty")
	}

	return r.store.Upsert(ctx, profile.Profile{
		StudentNumber: student.StudentID,
		Email:         student.Email,
		Name:          profile.FormatName(student.FullName),
		Role:          permissions.RoleUser,
	})
}
