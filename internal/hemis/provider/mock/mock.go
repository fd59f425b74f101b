// Package mock implements the identity provider over a fixed
// in-memory roster, for development and tests without HEMIS access.
package mock

import (
	"context"
	"strings"
	"time"

	"github.com/Kirito514/unilib/internal/hemis"
	"github.com/Kirito514/unilib/internal/hemis/provider"
	"github.com/Kirito514/unilib/internal/token"
)

const providerName = "mock"

const tokenPrefix = "mock-token-"

// Provider serves canned records keyed by student identifier. It is a
// drop-in replacement for the real client, selected by configuration
// at construction time; no call site branches on mock mode.
type Provider struct {
	roster map[string]hemis.Record
	now    func() time.Time
}

// New returns a provider preloaded with the default roster.
func New() *Provider {
	return &Provider{roster: defaultRoster(), now: time.Now}
}

func (p *Provider) Name() string {
	return providerName
}

// Login accepts any non-empty password for a known identifier and
// issues a deterministic token that FetchProfile can resolve.
func (p *Provider) Login(ctx context.Context, studentID, password string) (*provider.LoginResult, error) {
	record, ok := p.roster[studentID]
	if !ok || password == "" {
		return nil, hemis.ErrInvalidCredentials
	}
	return &provider.LoginResult{
		Token:  token.New(tokenPrefix+studentID, p.now(), token.DefaultExpiresIn),
		Record: record,
	}, nil
}

func (p *Provider) FetchProfile(ctx context.Context, tok string) (hemis.Record, error) {
	studentID, ok := strings.CutPrefix(tok, tokenPrefix)
	if !ok {
		return hemis.Record{}, hemis.ErrTokenExpired
	}
	record, ok := p.roster[studentID]
	if !ok {
		return hemis.Record{}, hemis.ErrTokenExpired
	}
	return record, nil
}

func (p *Provider) RefreshToken(ctx context.Context, tok string) (token.Token, error) {
	if !strings.HasPrefix(tok, tokenPrefix) {
		return token.Token{}, hemis.ErrTokenExpired
	}
	return token.New(tok, p.now(), token.DefaultExpiresIn), nil
}

func (p *Provider) VerifyStudent(ctx context.Context, studentID string) (hemis.Record, error) {
	record, ok := p.roster[studentID]
	if !ok {
		return hemis.Record{}, hemis.ErrNotFound
	}
	return record, nil
}

func defaultRoster() map[string]hemis.Record {
	return map[string]hemis.Record{
		"12345678901": {
			StudentIDNumber: "12345678901",
			FirstName:       "Alisher",
			SecondName:      "Navoiy",
			ThirdName:       "Ahmadovich",
			Email:           "alisher.navoiy@student.umft.uz",
			Phone:           "+998901234567",
			Group:           &hemis.Ref{Name: "101-guruh"},
			Department:      &hemis.Ref{ID: "001", Name: "Dasturiy injiniring", Code: "001"},
			Faculty:         &hemis.Ref{Name: "Informatika fakulteti"},
			Specialty:       &hemis.Ref{Name: "Dasturiy injiniring", Code: "5140900"},
			Level:           &hemis.Ref{Name: "2-kurs"},
			EducationYear:   &hemis.Ref{Name: "2023-2024"},
			EducationType:   &hemis.Ref{Name: "Bakalavr"},
			EducationForm:   &hemis.Ref{Name: "Kunduzgi"},
		},
		"98765432109": {
			StudentIDNumber: "98765432109",
			FirstName:       "Nodira",
			SecondName:      "Begim",
			ThirdName:       "Karimovna",
			Email:           "nodira.begim@student.umft.uz",
			Phone:           "+998909876543",
			Group:           &hemis.Ref{Name: "102-guruh"},
			Department:      &hemis.Ref{ID: "002", Name: "Axborot xavfsizligi", Code: "002"},
			Faculty:         &hemis.Ref{Name: "Informatika fakulteti"},
			Specialty:       &hemis.Ref{Name: "Axborot xavfsizligi", Code: "5140800"},
			Level:           &hemis.Ref{Name: "2-kurs"},
			EducationYear:   &hemis.Ref{Name: "2023-2024"},
			EducationType:   &hemis.Ref{Name: "Bakalavr"},
			EducationForm:   &hemis.Ref{Name: "Kunduzgi"},
		},
	}
}
