package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

type completionRepo struct {
	db *sql.DB
}

func (r *completionRepo) AppendCompletion(ctx context.Context, rec CompletionRecord) error {
	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO completion_events
			(roadmap_item_id, score, total, user_id, reported, new_unlock, error_message, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RoadmapItemID, rec.Score, rec.Total, rec.UserID,
		rec.Reported, rec.NewUnlock, rec.Error, ts.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save completion event: %w", err)
	}
	return nil
}

func (r *completionRepo) RecentCompletions(ctx context.Context, opts QueryOpts) ([]CompletionRecord, error) {
	var (
		where []string
		args  []any
	)
	if !opts.From.IsZero() {
		where = append(where, "timestamp >= ?")
		args = append(args, opts.From.UnixMilli())
	}
	if !opts.To.IsZero() {
		where = append(where, "timestamp <= ?")
		args = append(args, opts.To.UnixMilli())
	}

	q := `SELECT id, roadmap_item_id, score, total, user_id, reported, new_unlock, error_message, timestamp
		FROM completion_events`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY timestamp DESC, id DESC"
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query completion events: %w", err)
	}
	defer rows.Close()

	var out []CompletionRecord
	for rows.Next() {
		var (
			rec CompletionRecord
			ms  int64
		)
		if err := rows.Scan(&rec.ID, &rec.RoadmapItemID, &rec.Score, &rec.Total, &rec.UserID,
			&rec.Reported, &rec.NewUnlock, &rec.Error, &ms); err != nil {
			return nil, fmt.Errorf("scan completion event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ms)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completion events: %w", err)
	}
	return out, nil
}
