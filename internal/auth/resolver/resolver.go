package resolver

import (
	"context"

	"github.com/Kirito514/unilib/internal/hemis"
	"github.com/Kirito514/unilib/internal/profile"
)

// Resolver determines which local profile a verified external
// identity belongs to. It is the ONLY place where identity-to-profile
// mapping logic lives.
type Resolver interface {
	Resolve(ctx context.Context, student hemis.FilteredStudent) (*profile.Profile, error)
}
