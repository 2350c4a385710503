package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrissnell/streamprofile/pkg/profile"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(context.Background(), filepath.Join(t.TempDir(), "profiles.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func buildProfile(t *testing.T) *profile.Profile {
	t.Helper()
	m := profile.Missing
	tbl, err := profile.NewTable(map[string][]float64{
		profile.ColX:            {0, 3, 3, 3, 3, 3},
		profile.ColY:            {0, 0, 4, 6, 8, 10},
		profile.ColThalweg:      {10, 9.8, 9.7, 9.9, 9.5, 9.4},
		profile.ColWaterSurface: {11, m, m, 10.8, m, m},
		"Riffle":                {10, 9.8, m, m, m, m},
		"Pool":                  {m, m, m, 9.9, 9.5, m},
	})
	require.NoError(t, err)

	p, err := profile.New(tbl, true, profile.WithName("Reach 7"))
	require.NoError(t, err)
	return p
}

func TestSaveAndLoadProfile(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	original := buildProfile(t)

	id, err := store.SaveProfile(ctx, original)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	stored, err := store.LoadProfile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Reach 7", stored.Name)
	assert.True(t, stored.Metric)
	assert.False(t, stored.CreatedAt.IsZero())

	assert.ElementsMatch(t, original.Table().Columns(), stored.Table.Columns())
	for _, name := range original.Table().Columns() {
		want, _ := original.Table().Column(name)
		got, _ := stored.Table.Column(name)
		require.Len(t, got, len(want), name)
		for i := range want {
			if profile.IsMissing(want[i]) {
				assert.True(t, profile.IsMissing(got[i]), "%s[%d]", name, i)
			} else {
				assert.Equal(t, want[i], got[i], "%s[%d]", name, i)
			}
		}
	}

	reloaded, err := stored.Profile()
	require.NoError(t, err)
	assert.True(t, reloaded.Precomputed())
	assert.Equal(t, original.Runs(), reloaded.Runs())
	assert.Equal(t, original.Length(), reloaded.Length())
	assert.Equal(t, original.Features(profile.MorphPool)[0].Name(), reloaded.Features(profile.MorphPool)[0].Name())
}

func TestListProfilesAndFeatures(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	p := buildProfile(t)

	id, err := store.SaveProfile(ctx, p)
	require.NoError(t, err)

	summaries, err := store.ListProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, id, summaries[0].ID)
	assert.Equal(t, 6, summaries[0].Shots)
	assert.Equal(t, p.Length(), summaries[0].Length)
	assert.Equal(t, len(p.AllFeatures()), summaries[0].Features)

	features, err := store.ListFeatures(ctx, id)
	require.NoError(t, err)
	require.Len(t, features, 4)
	assert.Equal(t, profile.MorphRiffle, features[0].Label)
	assert.Equal(t, 0, features[0].Start)
	assert.Equal(t, 2, features[0].End)
	assert.Equal(t, profile.MorphUnclassified, features[1].Label)
	assert.Equal(t, "Reach 7, Unclassified 0", features[1].Name)
	assert.Equal(t, profile.MorphPool, features[2].Label)
	assert.Equal(t, profile.MorphUnclassified, features[3].Label)
	assert.Equal(t, 1, features[3].Seq)
}

func TestDeleteProfile(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	id, err := store.SaveProfile(ctx, buildProfile(t))
	require.NoError(t, err)

	require.NoError(t, store.DeleteProfile(ctx, id))

	_, err = store.LoadProfile(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.DeleteProfile(ctx, id), ErrNotFound)

	summaries, err := store.ListProfiles(ctx)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}
