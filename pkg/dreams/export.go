package dreams

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// ExportJSON serializes every stored dream (no filter) into a pretty-printed
// JSON array suitable for round-tripping through ImportJSON.
func ExportJSON(ctx context.Context, conn *sql.DB) (string, error) {
	dreams, err := ListDreams(ctx, conn, Filter{})
	if err != nil {
		return "", err
	}

	out, err := json.MarshalIndent(dreams, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize dreams: %w", err)
	}
	return string(out), nil
}

// ImportJSON upserts every dream in the payload, counting each as imported
// (no prior row with that id) or updated (prior row existed). A malformed
// payload fails before any write; the writes run in one transaction, so a
// failure mid-import leaves the store untouched.
func ImportJSON(ctx context.Context, conn *sql.DB, payload string) (imported, updated int, err error) {
	var incoming []Dream
	if err := json.Unmarshal([]byte(payload), &incoming); err != nil {
		return 0, 0, fmt.Errorf("malformed import payload: %w", err)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, err
	}
	defer tx.Rollback()

	for _, dream := range incoming {
		_, err := getDream(ctx, tx, dream.ID)
		switch {
		case err == nil:
			updated++
		case errors.Is(err, ErrDreamNotFound):
			imported++
		default:
			return 0, 0, err
		}

		if _, err := upsertDream(ctx, tx, dream); err != nil {
			return 0, 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, err
	}

	return imported, updated, nil
}
