package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/redemption-service/internal/events"
)

// ImportService bulk-loads the staff-to-team mapping file at startup.
// It runs before the server accepts requests; the redemption core treats
// the resulting rows as read-only for the lifetime of the process.
type ImportService struct {
	pool       *pgxpool.Pool
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewImportService constructs the service.
func NewImportService(pool *pgxpool.Pool, dispatcher events.Dispatcher, logger *zap.Logger) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{pool: pool, dispatcher: dispatcher, logger: logger}
}

// ImportSummary reports how many rows the import inserted.
type ImportSummary struct {
	Teams int
	Staff int
}

type staffRecord struct {
	PassID    string
	TeamName  string
	CreatedAt time.Time
}

// LoadCSV parses the mapping file and inserts teams then staff, idempotently,
// inside one transaction. Re-running against an already-loaded database is a
// no-op.
func (s *ImportService) LoadCSV(ctx context.Context, path string) (ImportSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	records, err := parseStaffRecords(f)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("parse import file %s: %w", path, err)
	}

	summary, err := s.insertRecords(ctx, records)
	if err != nil {
		return ImportSummary{}, err
	}

	s.logger.Info("import completed",
		zap.String("file", path),
		zap.Int("teams", summary.Teams),
		zap.Int("staff", summary.Staff))

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventImportCompleted,
			Timestamp: time.Now().UTC(),
			Payload:   events.ImportCompletedPayload{Teams: summary.Teams, Staff: summary.Staff},
		})
	}
	return summary, nil
}

// parseStaffRecords reads the CSV stream. Expected headers (order free):
// staff_pass_id, team_name, created_at (epoch milliseconds). Header names
// and values are trimmed; pass IDs and team names are uppercased.
func parseStaffRecords(r io.Reader) ([]staffRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"staff_pass_id", "team_name", "created_at"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var records []staffRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		passID := strings.ToUpper(strings.TrimSpace(row[cols["staff_pass_id"]]))
		teamName := strings.ToUpper(strings.TrimSpace(row[cols["team_name"]]))
		if passID == "" || teamName == "" {
			return nil, fmt.Errorf("line %d: empty staff_pass_id or team_name", line)
		}

		millis, err := strconv.ParseInt(strings.TrimSpace(row[cols["created_at"]]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid created_at: %w", line, err)
		}

		records = append(records, staffRecord{
			PassID:    passID,
			TeamName:  teamName,
			CreatedAt: time.UnixMilli(millis).UTC(),
		})
	}
	return records, nil
}

func (s *ImportService) insertRecords(ctx context.Context, records []staffRecord) (ImportSummary, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("begin import tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var summary ImportSummary

	seen := make(map[string]bool, len(records))
	for _, record := range records {
		if seen[record.TeamName] {
			continue
		}
		seen[record.TeamName] = true

		cmd, err := tx.Exec(ctx,
			`INSERT INTO teams (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
			record.TeamName)
		if err != nil {
			return ImportSummary{}, fmt.Errorf("insert team %s: %w", record.TeamName, err)
		}
		summary.Teams += int(cmd.RowsAffected())
	}

	for _, record := range records {
		cmd, err := tx.Exec(ctx,
			`INSERT INTO staff (pass_id, team_id, created_at)
             SELECT $1, id, $3 FROM teams WHERE name = $2
             ON CONFLICT (pass_id) DO NOTHING`,
			record.PassID, record.TeamName, record.CreatedAt)
		if err != nil {
			return ImportSummary{}, fmt.Errorf("insert staff %s: %w", record.PassID, err)
		}
		summary.Staff += int(cmd.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return ImportSummary{}, fmt.Errorf("commit import tx: %w", err)
	}
	return summary, nil
}
