package dreams

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var (
	ErrDreamNotFound = errors.New("dream not found")
)

const (
	selectDreamColumns = `SELECT id, title, occurred_at, content, tags, mood, intensity, lucid, created_at, updated_at`

	getDreamStatement = selectDreamColumns + `
	FROM dreams
	WHERE id = ?
	`

	upsertDreamStatement = `
	INSERT OR REPLACE INTO dreams (id, title, occurred_at, content, tags, mood, intensity, lucid, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	deleteDreamStatement = `
	DELETE FROM dreams
	WHERE id = ?
	`

	countDreamsStatement = `
	SELECT COUNT(*) FROM dreams
	`
)

// dbtx is satisfied by both *sql.DB and *sql.Tx so the import path can run
// the same statements inside one transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanDream reads one row into a Dream, applying the lenient codec rules for
// the tags blob and mood token.
func scanDream(scan func(dest ...any) error) (Dream, error) {
	var (
		dream    Dream
		tagsBlob string
		mood     string
	)
	err := scan(
		&dream.ID,
		&dream.Title,
		&dream.OccurredAt,
		&dream.Content,
		&tagsBlob,
		&mood,
		&dream.Intensity,
		&dream.Lucid,
		&dream.CreatedAt,
		&dream.UpdatedAt,
	)
	if err != nil {
		return Dream{}, err
	}

	dream.Tags = DecodeTags(tagsBlob)
	dream.Mood = ParseMood(mood)
	return dream, nil
}

// ListDreams returns every dream matching the filter, most recent
// occurred_at first. An empty result is not an error.
func ListDreams(ctx context.Context, conn *sql.DB, filter Filter) ([]Dream, error) {
	query, args := filter.buildQuery()

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dreams := []Dream{}
	for rows.Next() {
		dream, err := scanDream(rows.Scan)
		if err != nil {
			return nil, err
		}
		// The SQL tag clause is only a pre-filter over the serialized blob;
		// enforce exact membership on the decoded list here.
		if !filter.matchesTags(dream.Tags) {
			continue
		}
		dreams = append(dreams, dream)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return dreams, nil
}

// GetDream retrieves a single dream by id, or ErrDreamNotFound.
func GetDream(ctx context.Context, conn *sql.DB, id string) (Dream, error) {
	return getDream(ctx, conn, id)
}

func getDream(ctx context.Context, q dbtx, id string) (Dream, error) {
	dream, err := scanDream(q.QueryRowContext(ctx, getDreamStatement, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Dream{}, ErrDreamNotFound
		}
		return Dream{}, err
	}
	return dream, nil
}

// UpsertDream replaces the row with the dream's id, or inserts it if absent.
// Every field the caller supplies is written verbatim except updated_at,
// which is always stamped with the actual write time. created_at is the
// caller's responsibility and is preserved as given.
func UpsertDream(ctx context.Context, conn *sql.DB, dream Dream) (Dream, error) {
	return upsertDream(ctx, conn, dream)
}

func upsertDream(ctx context.Context, q dbtx, dream Dream) (Dream, error) {
	now := time.Now().UTC().Format(time.RFC3339)

	_, err := q.ExecContext(
		ctx,
		upsertDreamStatement,
		dream.ID,
		dream.Title,
		dream.OccurredAt,
		dream.Content,
		EncodeTags(dream.Tags),
		dream.Mood.String(),
		dream.Intensity,
		dream.Lucid,
		dream.CreatedAt,
		now,
	)
	if err != nil {
		return Dream{}, err
	}

	dream.UpdatedAt = now
	// Read paths always produce a non-nil tag list; match that shape here
	// so a nil slice doesn't serialize as JSON null.
	if dream.Tags == nil {
		dream.Tags = []string{}
	}
	return dream, nil
}

// DeleteDream removes the row with the given id. Deleting an id that does
// not exist is not an error.
func DeleteDream(ctx context.Context, conn *sql.DB, id string) error {
	_, err := conn.ExecContext(ctx, deleteDreamStatement, id)
	return err
}

// CountDreams returns the total number of stored dreams.
func CountDreams(ctx context.Context, conn *sql.DB) (int64, error) {
	var count int64
	if err := conn.QueryRowContext(ctx, countDreamsStatement).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
