package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dreamlog-app/dreamlog/pkg/dreams"
)

func seedStore(conn *sql.DB) error {
	return dreams.SeedInitialData(context.Background(), conn)
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func splitTags(csv string) []string {
	var tags []string
	for _, tag := range strings.Split(csv, ",") {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List dreams, optionally filtered",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := dreams.Filter{}
		filter.Query, _ = cmd.Flags().GetString("query")
		filter.Mood, _ = cmd.Flags().GetString("mood")
		filter.DateFrom, _ = cmd.Flags().GetString("from")
		filter.DateTo, _ = cmd.Flags().GetString("to")
		filter.Day, _ = cmd.Flags().GetString("day")
		if tagsStr, _ := cmd.Flags().GetString("tags"); tagsStr != "" {
			filter.Tags = splitTags(tagsStr)
		}
		// --tag values are taken verbatim, so tags containing commas work.
		if tagList, _ := cmd.Flags().GetStringArray("tag"); len(tagList) > 0 {
			filter.Tags = append(filter.Tags, tagList...)
		}

		conn, _, err := openStore(true, "FULL", false)
		if err != nil {
			return err
		}
		defer conn.Close()

		result, err := dreams.ListDreams(cmd.Context(), conn, filter)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single dream by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, _, err := openStore(true, "FULL", false)
		if err != nil {
			return err
		}
		defer conn.Close()

		dream, err := dreams.GetDream(cmd.Context(), conn, args[0])
		if err != nil {
			if errors.Is(err, dreams.ErrDreamNotFound) {
				fmt.Fprintf(os.Stderr, "No dream with id '%s'.\n", args[0])
				return nil
			}
			return err
		}
		return printJSON(dream)
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new dream",
	Long: `Records a new dream with a freshly generated id. The occurred time defaults
to now; supply --occurred to backdate the dream itself.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		content, _ := cmd.Flags().GetString("content")
		occurredAt, _ := cmd.Flags().GetString("occurred")
		tagsStr, _ := cmd.Flags().GetString("tags")
		tagList, _ := cmd.Flags().GetStringArray("tag")
		mood, _ := cmd.Flags().GetString("mood")
		intensity, _ := cmd.Flags().GetInt("intensity")
		lucid, _ := cmd.Flags().GetBool("lucid")

		if title == "" {
			return fmt.Errorf("--title is required")
		}

		now := time.Now().UTC().Format(time.RFC3339)
		if occurredAt == "" {
			occurredAt = now
		}

		dream := dreams.Dream{
			ID:         uuid.New().String(),
			Title:      title,
			OccurredAt: occurredAt,
			Content:    content,
			Tags:       append(splitTags(tagsStr), tagList...),
			Mood:       dreams.ParseMood(mood),
			Intensity:  intensity,
			Lucid:      lucid,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		conn, _, err := openStore(true, "FULL", false)
		if err != nil {
			return err
		}
		defer conn.Close()

		stored, err := dreams.UpsertDream(cmd.Context(), conn, dream)
		if err != nil {
			return err
		}
		return printJSON(stored)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a dream by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, _, err := openStore(true, "FULL", false)
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := dreams.DeleteDream(cmd.Context(), conn, args[0]); err != nil {
			return err
		}
		fmt.Printf("Dream '%s' deleted.\n", args[0])
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export every dream as pretty-printed JSON",
	Long:  `Writes a JSON snapshot of all dreams to the given file, or to stdout when no file is given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, _, err := openStore(true, "FULL", false)
		if err != nil {
			return err
		}
		defer conn.Close()

		snapshot, err := dreams.ExportJSON(cmd.Context(), conn)
		if err != nil {
			return err
		}

		if len(args) == 1 {
			if err := os.WriteFile(args[0], []byte(snapshot), 0644); err != nil {
				return fmt.Errorf("failed to write export to '%s': %w", args[0], err)
			}
			fmt.Fprintf(os.Stderr, "Exported dreams to %s\n", args[0])
			return nil
		}

		fmt.Println(snapshot)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import dreams from a JSON snapshot",
	Long: `Reads a JSON array of dreams from the given file and upserts each record.
A malformed file fails before any write; a write failure mid-import rolls
everything back.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read '%s': %w", args[0], err)
		}

		conn, _, err := openStore(true, "FULL", false)
		if err != nil {
			return err
		}
		defer conn.Close()

		imported, updated, err := dreams.ImportJSON(cmd.Context(), conn, string(payload))
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d new dreams, updated %d existing.\n", imported, updated)
		return nil
	},
}

func init() {
	listCmd.Flags().String("query", "", "Substring to match against title or content")
	listCmd.Flags().String("mood", "", "Mood token to match exactly")
	listCmd.Flags().String("tags", "", "Comma-separated tags the dream must all carry")
	listCmd.Flags().StringArray("tag", nil, "Tag the dream must carry, taken verbatim; repeatable")
	listCmd.Flags().String("from", "", "Inclusive lower bound on occurred time (ISO-8601)")
	listCmd.Flags().String("to", "", "Inclusive upper bound on occurred time (ISO-8601)")
	listCmd.Flags().String("day", "", "Exact calendar day of the occurred time (YYYY-MM-DD)")

	addCmd.Flags().String("title", "", "Dream title (required)")
	addCmd.Flags().String("content", "", "Dream body text")
	addCmd.Flags().String("occurred", "", "When the dream occurred (ISO-8601, default now)")
	addCmd.Flags().String("tags", "", "Comma-separated tags")
	addCmd.Flags().StringArray("tag", nil, "Tag to attach, taken verbatim; repeatable")
	addCmd.Flags().String("mood", "neutral", "Mood token (happy, sad, scary, romantic, weird, neutral)")
	addCmd.Flags().Int("intensity", 3, "Intensity rating")
	addCmd.Flags().Bool("lucid", false, "Whether the dream was lucid")
}
