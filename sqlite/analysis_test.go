package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/tenk"
	"github.com/fwojciec/tenk/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalysis(ticker string, section tenk.SectionID) *tenk.Analysis {
	return &tenk.Analysis{
		Ticker:          ticker,
		CIK:             "0000320193",
		AccessionNumber: "0000320193-24-000123",
		FilingURL:       "https://www.sec.gov/Archives/edgar/data/320193/000032019324000123/aapl-20240928.htm",
		Section:         section,
		ContentHash:     "abc123",
		Summary:         "Apple faces intense competition.",
	}
}

func TestAnalysisService_CreateAnalysis(t *testing.T) {
	t.Parallel()

	t.Run("creates analysis with generated ID and timestamp", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewAnalysisService(db)
		a := newAnalysis("AAPL", tenk.SectionRiskFactors)

		err := svc.CreateAnalysis(context.Background(), a)
		require.NoError(t, err)

		assert.NotEmpty(t, a.ID, "ID should be generated")
		assert.False(t, a.CreatedAt.IsZero(), "CreatedAt should be set")
	})

	t.Run("stamps analyses with the database clock", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		now := time.Date(2025, 1, 8, 9, 30, 0, 0, time.FixedZone("EST", -5*3600))
		db.Now = func() time.Time { return now }
		svc := sqlite.NewAnalysisService(db)
		a := newAnalysis("AAPL", tenk.SectionRiskFactors)

		require.NoError(t, svc.CreateAnalysis(context.Background(), a))

		assert.True(t, now.Equal(a.CreatedAt))
		assert.Equal(t, time.UTC, a.CreatedAt.Location())
	})

	t.Run("returns error for invalid analysis", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewAnalysisService(db)

		err := svc.CreateAnalysis(context.Background(), &tenk.Analysis{})

		require.Error(t, err)
		assert.Equal(t, tenk.EINVALID, tenk.ErrorCode(err))
	})
}

func TestAnalysisService_FindAnalysisByID(t *testing.T) {
	t.Parallel()

	t.Run("round-trips all fields including audio", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewAnalysisService(db)
		ctx := context.Background()

		a := newAnalysis("AAPL", tenk.SectionMDA)
		a.Audio = &tenk.Audio{Data: []byte("RIFF...."), MIMEType: "audio/wav"}
		a.Fallback = true
		a.Truncated = true
		require.NoError(t, svc.CreateAnalysis(ctx, a))

		got, err := svc.FindAnalysisByID(ctx, a.ID)
		require.NoError(t, err)

		assert.Equal(t, a.ID, got.ID)
		assert.Equal(t, "AAPL", got.Ticker)
		assert.Equal(t, a.CIK, got.CIK)
		assert.Equal(t, a.AccessionNumber, got.AccessionNumber)
		assert.Equal(t, a.FilingURL, got.FilingURL)
		assert.Equal(t, tenk.SectionMDA, got.Section)
		assert.Equal(t, a.ContentHash, got.ContentHash)
		assert.Equal(t, a.Summary, got.Summary)
		require.NotNil(t, got.Audio)
		assert.Equal(t, []byte("RIFF...."), got.Audio.Data)
		assert.Equal(t, "audio/wav", got.Audio.MIMEType)
		assert.True(t, got.Fallback)
		assert.True(t, got.Truncated)
		assert.True(t, a.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("leaves audio nil when none was stored", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewAnalysisService(db)
		ctx := context.Background()

		a := newAnalysis("AAPL", tenk.SectionBusiness)
		require.NoError(t, svc.CreateAnalysis(ctx, a))

		got, err := svc.FindAnalysisByID(ctx, a.ID)
		require.NoError(t, err)

		assert.Nil(t, got.Audio)
	})

	t.Run("returns ENOTFOUND for missing analysis", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewAnalysisService(db)

		_, err := svc.FindAnalysisByID(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, tenk.ENOTFOUND, tenk.ErrorCode(err))
	})
}

func TestAnalysisService_FindAnalyses(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T) *sqlite.AnalysisService {
		t.Helper()
		db := setupTestDB(t)
		svc := sqlite.NewAnalysisService(db)
		ctx := context.Background()

		withAudio := newAnalysis("AAPL", tenk.SectionRiskFactors)
		withAudio.Audio = &tenk.Audio{Data: []byte{1}, MIMEType: "audio/wav"}
		require.NoError(t, svc.CreateAnalysis(ctx, withAudio))
		require.NoError(t, svc.CreateAnalysis(ctx, newAnalysis("AAPL", tenk.SectionBusiness)))

		msft := newAnalysis("MSFT", tenk.SectionBusiness)
		msft.AccessionNumber = "0000950170-24-087843"
		msft.ContentHash = "def456"
		require.NoError(t, svc.CreateAnalysis(ctx, msft))
		return svc
	}

	t.Run("returns all analyses newest first", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)

		got, err := svc.FindAnalyses(context.Background(), tenk.AnalysisFilter{})

		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "MSFT", got[0].Ticker)
		assert.Equal(t, tenk.SectionRiskFactors, got[2].Section)
	})

	t.Run("filters by ticker case-insensitively", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)
		ticker := "aapl"

		got, err := svc.FindAnalyses(context.Background(), tenk.AnalysisFilter{Ticker: &ticker})

		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("filters by filing, section and content hash", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)
		accession := "0000320193-24-000123"
		section := tenk.SectionBusiness
		hash := "abc123"

		got, err := svc.FindAnalyses(context.Background(), tenk.AnalysisFilter{
			AccessionNumber: &accession,
			Section:         &section,
			ContentHash:     &hash,
		})

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "AAPL", got[0].Ticker)
		assert.Equal(t, tenk.SectionBusiness, got[0].Section)
	})

	t.Run("filters analyses with audio", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)

		got, err := svc.FindAnalyses(context.Background(), tenk.AnalysisFilter{WithAudio: true})

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, tenk.SectionRiskFactors, got[0].Section)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)

		page, err := svc.FindAnalyses(context.Background(), tenk.AnalysisFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, page, 2)

		rest, err := svc.FindAnalyses(context.Background(), tenk.AnalysisFilter{Offset: 2})
		require.NoError(t, err)
		require.Len(t, rest, 1)
		assert.Equal(t, tenk.SectionRiskFactors, rest[0].Section)
	})
}

func TestAnalysisService_DeleteAnalysis(t *testing.T) {
	t.Parallel()

	t.Run("deletes existing analysis", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewAnalysisService(db)
		ctx := context.Background()
		a := newAnalysis("AAPL", tenk.SectionBusiness)
		require.NoError(t, svc.CreateAnalysis(ctx, a))

		require.NoError(t, svc.DeleteAnalysis(ctx, a.ID))

		_, err := svc.FindAnalysisByID(ctx, a.ID)
		assert.Equal(t, tenk.ENOTFOUND, tenk.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for missing analysis", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewAnalysisService(db)

		err := svc.DeleteAnalysis(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, tenk.ENOTFOUND, tenk.ErrorCode(err))
	})
}
