package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fwojciec/tenk"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ tenk.AnalysisService = (*AnalysisService)(nil)

// AnalysisService implements tenk.AnalysisService using SQLite.
type AnalysisService struct {
	db *DB
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(db *DB) *AnalysisService {
	return &AnalysisService{db: db}
}

const analysisColumns = `id, ticker, cik, accession_number, filing_url, section, content_hash,
	summary, audio_data, audio_mime, fallback, truncated, created_at`

// CreateAnalysis creates a new analysis.
func (s *AnalysisService) CreateAnalysis(ctx context.Context, a *tenk.Analysis) error {
	if err := a.Validate(); err != nil {
		return err
	}

	a.ID = uuid.New().String()
	a.CreatedAt = s.db.Now().UTC()

	var audioData []byte
	var audioMIME string
	if a.Audio != nil {
		audioData = a.Audio.Data
		audioMIME = a.Audio.MIMEType
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO analyses (`+analysisColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.Ticker, a.CIK, a.AccessionNumber, a.FilingURL, string(a.Section), a.ContentHash,
		a.Summary, audioData, audioMIME, a.Fallback, a.Truncated, formatTime(a.CreatedAt))

	return err
}

// FindAnalysisByID retrieves an analysis by ID.
func (s *AnalysisService) FindAnalysisByID(ctx context.Context, id string) (*tenk.Analysis, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+analysisColumns+` FROM analyses WHERE id = ?`, id)

	a, err := scanAnalysis(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, tenk.Errorf(tenk.ENOTFOUND, "analysis not found")
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// FindAnalyses retrieves analyses matching the filter, newest first.
func (s *AnalysisService) FindAnalyses(ctx context.Context, filter tenk.AnalysisFilter) ([]*tenk.Analysis, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + analysisColumns + " FROM analyses WHERE 1=1")

	if filter.Ticker != nil {
		query.WriteString(" AND ticker = ?")
		args = append(args, strings.ToUpper(*filter.Ticker))
	}
	if filter.AccessionNumber != nil {
		query.WriteString(" AND accession_number = ?")
		args = append(args, *filter.AccessionNumber)
	}
	if filter.Section != nil {
		query.WriteString(" AND section = ?")
		args = append(args, string(*filter.Section))
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}
	if filter.WithAudio {
		query.WriteString(" AND audio_data IS NOT NULL AND length(audio_data) > 0")
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var analyses []*tenk.Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, a)
	}

	return analyses, rows.Err()
}

// DeleteAnalysis permanently removes an analysis.
func (s *AnalysisService) DeleteAnalysis(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM analyses WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return tenk.Errorf(tenk.ENOTFOUND, "analysis not found")
	}

	return nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row scanner) (*tenk.Analysis, error) {
	var a tenk.Analysis
	var section, audioMIME, createdAt string
	var audioData []byte

	if err := row.Scan(&a.ID, &a.Ticker, &a.CIK, &a.AccessionNumber, &a.FilingURL, &section,
		&a.ContentHash, &a.Summary, &audioData, &audioMIME, &a.Fallback, &a.Truncated, &createdAt); err != nil {
		return nil, err
	}

	a.Section = tenk.SectionID(section)
	if len(audioData) > 0 {
		a.Audio = &tenk.Audio{Data: audioData, MIMEType: audioMIME}
	}

	var err error
	a.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &a, nil
}
