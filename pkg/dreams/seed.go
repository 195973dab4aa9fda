package dreams

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// SeedInitialData inserts a few example dreams so a fresh journal is not
// empty. Fires only when the table currently holds no rows; calling it
// against a populated store is a no-op.
func SeedInitialData(ctx context.Context, conn *sql.DB) error {
	count, err := CountDreams(ctx, conn)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC().Format(time.RFC3339)

	seeds := []Dream{
		{
			ID:         uuid.New().String(),
			Title:      "Flying Over Mountains",
			OccurredAt: "2024-01-25T08:30:00Z",
			Content:    "I was soaring through the air, gliding effortlessly over snow-capped mountains. The wind felt cool on my face and I could see an endless landscape below me.",
			Tags:       []string{"adventure", "freedom"},
			Mood:       MoodHappy,
			Intensity:  4,
			Lucid:      true,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		{
			ID:         uuid.New().String(),
			Title:      "Lost in an Old Library",
			OccurredAt: "2024-01-24T06:00:00Z",
			Content:    "I wandered through an endless library filled with books I'd never seen before. The shelves stretched into darkness and I couldn't find the exit.",
			Tags:       []string{"mystery", "confusion"},
			Mood:       MoodWeird,
			Intensity:  3,
			Lucid:      false,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		{
			ID:         uuid.New().String(),
			Title:      "Dancing Under Starlight",
			OccurredAt: "2024-01-23T07:45:00Z",
			Content:    "A beautiful night under the stars where I danced with someone close to me. Everything felt perfect and the music was entrancing.",
			Tags:       []string{"romance", "music"},
			Mood:       MoodRomantic,
			Intensity:  5,
			Lucid:      false,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}

	for _, dream := range seeds {
		if _, err := UpsertDream(ctx, conn, dream); err != nil {
			return err
		}
	}

	return nil
}
