package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kirito514/unilib/internal/hemis"
	"github.com/Kirito514/unilib/internal/hemis/provider/mock"
	"github.com/Kirito514/unilib/internal/profile"
	"github.com/Kirito514/unilib/internal/token"
)

type fakeStore struct {
	profiles  map[string]*profile.Profile
	syncCalls int
}

func newFakeStore(profiles ...*profile.Profile) *fakeStore {
	s := &fakeStore{profiles: make(map[string]*profile.Profile)}
	for _, p := range profiles {
		s.profiles[p.ID] = p
	}
	return s
}

func (s *fakeStore) Get(ctx context.Context, id string) (*profile.Profile, error) {
	p, ok := s.profiles[id]
	if !ok {
		return nil, profile.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *fakeStore) GetByStudentNumber(ctx context.Context, studentNumber string) (*profile.Profile, error) {
	for _, p := range s.profiles {
		if p.StudentNumber == studentNumber {
			cp := *p
			return &cp, nil
		}
	}
	return nil, profile.ErrNotFound
}

func (s *fakeStore) Upsert(ctx context.Context, p profile.Profile) (*profile.Profile, error) {
	s.profiles[p.ID] = &p
	return &p, nil
}

func (s *fakeStore) UpdateSync(ctx context.Context, id string, f profile.SyncFields) error {
	p, ok := s.profiles[id]
	if !ok {
		return profile.ErrNotFound
	}
	s.syncCalls++
	p.Name = f.Name
	p.AvatarURL = f.AvatarURL
	p.Phone = f.Phone
	p.Faculty = f.Faculty
	p.StudentGroup = f.StudentGroup
	p.Course = f.Course
	p.EducationForm = f.EducationForm
	p.Specialty = f.Specialty
	p.GPA = f.GPA
	t := f.SyncedAt
	p.LastSyncedAt = &t
	return nil
}

func (s *fakeStore) UpdateToken(ctx context.Context, id string, tok token.Token) error {
	p, ok := s.profiles[id]
	if !ok {
		return profile.ErrNotFound
	}
	p.HemisToken = tok
	return nil
}

func federatedProfile() *profile.Profile {
	return &profile.Profile{
		ID:            "user-1",
		StudentNumber: "12345678901",
		HemisToken:    token.New("mock-token-12345678901", time.Now(), time.Hour),
	}
}

func TestSyncOverwritesHemisFields(t *testing.T) {
	store := newFakeStore(federatedProfile())
	s := New(mock.New(), store)

	require.NoError(t, s.Sync(context.Background(), "user-1"))

	p, err := store.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Alisher Navoiy", p.Name)
	assert.Equal(t, "+998901234567", p.Phone)
	assert.Equal(t, "Informatika fakulteti", p.Faculty)
	assert.Equal(t, "101-guruh", p.StudentGroup)
	assert.Equal(t, "2-kurs", p.Course)
	assert.Equal(t, "Kunduzgi", p.EducationForm)
	assert.Equal(t, "Dasturiy injiniring", p.Specialty)
	require.NotNil(t, p.LastSyncedAt)
}

func TestSyncIsIdempotent(t *testing.T) {
	store := newFakeStore(federatedProfile())
	s := New(mock.New(), store)

	t1 := time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)

	s.now = func() time.Time { return t1 }
	require.NoError(t, s.Sync(context.Background(), "user-1"))
	first, _ := store.Get(context.Background(), "user-1")

	s.now = func() time.Time { return t2 }
	require.NoError(t, s.Sync(context.Background(), "user-1"))
	second, _ := store.Get(context.Background(), "user-1")

	// identical except the refreshed timestamp
	assert.Equal(t, t1, *first.LastSyncedAt)
	assert.Equal(t, t2, *second.LastSyncedAt)
	first.LastSyncedAt = nil
	second.LastSyncedAt = nil
	assert.Equal(t, first, second)
}

func TestSyncPreconditionMissing(t *testing.T) {
	tests := []struct {
		name    string
		profile *profile.Profile
	}{
		{"no profile", nil},
		{"no token", &profile.Profile{ID: "user-1", StudentNumber: "12345678901"}},
		{"no student number", &profile.Profile{
			ID:         "user-1",
			HemisToken: token.New("mock-token-12345678901", time.Now(), time.Hour),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			if tt.profile != nil {
				store.profiles[tt.profile.ID] = tt.profile
			}
			s := New(mock.New(), store)
			err := s.Sync(context.Background(), "user-1")
			assert.True(t, errors.Is(err, ErrPreconditionMissing))
			assert.Zero(t, store.syncCalls)
		})
	}
}

func TestSyncRemoteFailureWritesNothing(t *testing.T) {
	p := federatedProfile()
	p.HemisToken = token.New("not-a-mock-token", time.Now(), time.Hour)
	store := newFakeStore(p)
	s := New(mock.New(), store)

	err := s.Sync(context.Background(), "user-1")
	assert.True(t, errors.Is(err, hemis.ErrTokenExpired))
	assert.Zero(t, store.syncCalls, "remote failure must not partially write")
}

func TestFieldsFromRecordFormatsName(t *testing.T) {
	at := time.Now()
	f := FieldsFromRecord(hemis.Record{FullName: "FAYZULLAYEV ORZUBEK"}, at)
	assert.Equal(t, "Fayzullayev Orzubek", f.Name)
	assert.Equal(t, at, f.SyncedAt)
}
