// Package storage defines interfaces and implementations for profile storage backends.
package storage

import (
	"context"
	"time"

	"github.com/chrissnell/streamprofile/pkg/profile"
)

// ProfileStore persists constructed profiles together with their feature index
type ProfileStore interface {
	SaveProfile(ctx context.Context, p *profile.Profile) (string, error)
	LoadProfile(ctx context.Context, id string) (*StoredProfile, error)
	ListProfiles(ctx context.Context) ([]ProfileSummary, error)
	ListFeatures(ctx context.Context, id string) ([]FeatureRecord, error)
	DeleteProfile(ctx context.Context, id string) error
	Close() error
}

// StoredProfile is a saved record table along with how it was surveyed
type StoredProfile struct {
	ID        string
	Name      string
	Metric    bool
	CreatedAt time.Time
	Table     *profile.Table
}

// Profile rebuilds the profile. The stored table carries its Station
// column, so it is taken as precomputed and not re-derived.
func (s *StoredProfile) Profile(opts ...profile.Option) (*profile.Profile, error) {
	opts = append([]profile.Option{profile.WithName(s.Name)}, opts...)
	return profile.New(s.Table, s.Metric, opts...)
}

// ProfileSummary is one line of the store's index
type ProfileSummary struct {
	ID        string
	Name      string
	Metric    bool
	Shots     int
	Length    float64
	Features  int
	CreatedAt time.Time
}

// FeatureRecord is a saved feature: its label, sequence and parent row range
type FeatureRecord struct {
	Label profile.Morphology
	Seq   int
	Name  string
	Start int
	End   int
}
