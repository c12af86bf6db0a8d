package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIfEmpty(t *testing.T) {
	ctx := context.Background()
	s := NewMemStorage()

	require.NoError(t, SeedIfEmpty(ctx, s))

	all, err := s.Articles(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(SampleArticles))

	// A second boot must not duplicate the samples.
	require.NoError(t, SeedIfEmpty(ctx, s))

	all, err = s.Articles(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(SampleArticles))
}
