package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/dapnet/internal/dbx"
)

const (
	targetCallsign = "callsign"
	targetGroup    = "group"
)

// SQLiteRepository implements Repository on the schema created by the
// storage migrations.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a repository bound to db.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Add inserts the message and its targets in one transaction.
// A zero SentAt is replaced with the current time.
func (r *SQLiteRepository) Add(ctx context.Context, rec *Record) error {
	if rec.SentAt.IsZero() {
		rec.SentAt = time.Now()
	}

	id, err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) (int64, error) {
		var rubric sql.NullString
		var number sql.NullInt64
		if rec.Kind == KindNews {
			rubric = sql.NullString{String: rec.Rubric, Valid: true}
			number = sql.NullInt64{Int64: int64(rec.Number), Valid: true}
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO sent_messages (kind, text, original_text, emergency, rubric, number, sent_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			string(rec.Kind), rec.Text, rec.Original, rec.Emergency, rubric, number, rec.SentAt.UnixMilli())
		if err != nil {
			return 0, fmt.Errorf("failed to insert message: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to get message id: %w", err)
		}

		if err := insertTargets(ctx, tx, id, targetCallsign, rec.Recipients); err != nil {
			return 0, err
		}
		if err := insertTargets(ctx, tx, id, targetGroup, rec.Groups); err != nil {
			return 0, err
		}
		return id, nil
	})
	if err != nil {
		return err
	}

	rec.ID = id
	return nil
}

func insertTargets(ctx context.Context, tx dbx.DBTX, id int64, kind string, names []string) error {
	for i, name := range names {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO message_targets (message_id, kind, position, name) VALUES (?, ?, ?, ?)`,
			id, kind, i, name)
		if err != nil {
			return fmt.Errorf("failed to insert %s target: %w", kind, err)
		}
	}
	return nil
}

// List returns records ordered by send time, newest first.
func (r *SQLiteRepository) List(ctx context.Context, limit int) ([]Record, error) {
	query := `SELECT id, kind, text, original_text, emergency, rubric, number, sent_at
		FROM sent_messages ORDER BY sent_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select messages: %w", err)
	}

	result := []Record{}
	index := map[int64]int{}
	for rows.Next() {
		var (
			rec    Record
			kind   string
			rubric sql.NullString
			number sql.NullInt64
			sentAt int64
		)
		if err := rows.Scan(&rec.ID, &kind, &rec.Text, &rec.Original, &rec.Emergency, &rubric, &number, &sentAt); err != nil {
			_ = rows.Close()
			return nil, err
		}
		rec.Kind = Kind(kind)
		rec.Rubric = rubric.String
		rec.Number = int(number.Int64)
		rec.SentAt = time.UnixMilli(sentAt)

		index[rec.ID] = len(result)
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	if len(result) == 0 {
		return result, nil
	}
	if err := r.loadTargets(ctx, result, index); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) loadTargets(ctx context.Context, recs []Record, index map[int64]int) error {
	placeholders := make([]string, 0, len(recs))
	args := make([]any, 0, len(recs))
	for _, rec := range recs {
		placeholders = append(placeholders, "?")
		args = append(args, rec.ID)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT message_id, kind, name FROM message_targets
		WHERE message_id IN (`+strings.Join(placeholders, ",")+`)
		ORDER BY message_id, kind, position`, args...)
	if err != nil {
		return fmt.Errorf("failed to select targets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id         int64
			kind, name string
		)
		if err := rows.Scan(&id, &kind, &name); err != nil {
			return err
		}
		rec := &recs[index[id]]
		switch kind {
		case targetCallsign:
			rec.Recipients = append(rec.Recipients, name)
		case targetGroup:
			rec.Groups = append(rec.Groups, name)
		}
	}
	return rows.Err()
}
