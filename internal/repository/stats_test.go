package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playrooms/tictactoe-server/internal/entity"
	"github.com/playrooms/tictactoe-server/testing/suite"
)

func TestStatsRepository_GetSummary_Empty(t *testing.T) {
	ctx, st := suite.New(t)

	statsRepo := NewStatsRepository(st.Storage)

	// When: no outcome has been recorded yet
	summary, err := statsRepo.GetSummary(ctx)

	// Then: every counter reads zero
	require.NoError(t, err)
	assert.Equal(t, &Summary{}, summary)
}

func TestStatsRepository_RecordAndSummarize(t *testing.T) {
	ctx, st := suite.New(t)

	statsRepo := NewStatsRepository(st.Storage)

	// Given: a mix of recorded outcomes
	require.NoError(t, statsRepo.RecordWin(ctx, entity.MarkX))
	require.NoError(t, statsRepo.RecordWin(ctx, entity.MarkX))
	require.NoError(t, statsRepo.RecordWin(ctx, entity.MarkO))
	require.NoError(t, statsRepo.RecordDraw(ctx))
	require.NoError(t, statsRepo.RecordAbandoned(ctx))

	// When: reading the summary
	summary, err := statsRepo.GetSummary(ctx)

	// Then: the counters match what was recorded
	require.NoError(t, err)
	assert.Equal(t, &Summary{
		WinsX:     2,
		WinsO:     1,
		Draws:     1,
		Abandoned: 1,
	}, summary)
}
