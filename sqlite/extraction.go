package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/awalczak/nextract"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ nextract.ExtractionService = (*ExtractionService)(nil)

// ExtractionService implements nextract.ExtractionService using SQLite.
type ExtractionService struct {
	db *DB
}

// NewExtractionService creates a new ExtractionService.
func NewExtractionService(db *DB) *ExtractionService {
	return &ExtractionService{db: db}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// CreateExtraction stores a new extraction run. The ID, creation timestamp,
// and content hash are generated here; the hash is computed over the
// serialized report so identical extractions of the same page dedupe by
// hash.
func (s *ExtractionService) CreateExtraction(ctx context.Context, extraction *nextract.Extraction) error {
	if err := extraction.Validate(); err != nil {
		return err
	}

	report, err := json.Marshal(extraction.Report)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	extraction.ID = uuid.New().String()
	extraction.CreatedAt = time.Now().UTC()
	extraction.ContentHash = hashContent(string(report))

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO extractions (id, source_url, content_hash, report, chunk_count, payload_count, failure_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, extraction.ID, extraction.SourceURL, extraction.ContentHash, string(report),
		extraction.Report.ChunksSeen, extraction.Report.PayloadsAssembled,
		extraction.Report.ParseFailures, extraction.CreatedAt.Format(time.RFC3339))

	return err
}

// FindExtractionByID retrieves an extraction by ID.
func (s *ExtractionService) FindExtractionByID(ctx context.Context, id string) (*nextract.Extraction, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source_url, content_hash, report, created_at
		FROM extractions
		WHERE id = ?
	`, id)

	extraction, err := scanExtraction(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nextract.Errorf(nextract.ENOTFOUND, "extraction not found")
	}
	if err != nil {
		return nil, err
	}
	return extraction, nil
}

// FindExtractions retrieves extractions matching the filter, most recent
// first.
func (s *ExtractionService) FindExtractions(ctx context.Context, filter nextract.ExtractionFilter) ([]*nextract.Extraction, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_url, content_hash, report, created_at FROM extractions WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	query.WriteString(" ORDER BY created_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var extractions []*nextract.Extraction
	for rows.Next() {
		extraction, err := scanExtraction(rows.Scan)
		if err != nil {
			return nil, err
		}
		extractions = append(extractions, extraction)
	}
	return extractions, rows.Err()
}

// DeleteExtraction permanently removes an extraction.
func (s *ExtractionService) DeleteExtraction(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM extractions WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return nextract.Errorf(nextract.ENOTFOUND, "extraction not found")
	}
	return nil
}

// scanExtraction reads one extraction row via the given scan function.
func scanExtraction(scan func(dest ...any) error) (*nextract.Extraction, error) {
	var extraction nextract.Extraction
	var report, createdAt string

	if err := scan(&extraction.ID, &extraction.SourceURL, &extraction.ContentHash, &report, &createdAt); err != nil {
		return nil, err
	}

	extraction.Report = &nextract.ExtractionReport{}
	if err := json.Unmarshal([]byte(report), extraction.Report); err != nil {
		return nil, fmt.Errorf("failed to deserialize report: %w", err)
	}

	var err error
	extraction.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	return &extraction, nil
}
