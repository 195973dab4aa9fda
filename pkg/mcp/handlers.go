package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dreamlog-app/dreamlog/pkg/dreams"
	"github.com/dreamlog-app/dreamlog/pkg/security"
)

// Every store-touching tool holds the server mutex for the duration of the
// call, and every failure collapses to a plain message string via
// mcp.NewToolResultError. Structured errors stop at this boundary.

// parseTagsArgument reads the tags argument in any of the forms a client
// may send: a native JSON array, a JSON array string, or a comma-separated
// string. Tags containing commas must use one of the array forms.
func parseTagsArgument(arg any) ([]string, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []any:
		var tags []string
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("tags array may only contain strings")
			}
			if s != "" {
				tags = append(tags, s)
			}
		}
		return tags, nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, nil
		}
		if strings.HasPrefix(trimmed, "[") {
			var tags []string
			if err := json.Unmarshal([]byte(trimmed), &tags); err != nil {
				return nil, fmt.Errorf("malformed tags array: %v", err)
			}
			return tags, nil
		}
		var tags []string
		for _, tag := range strings.Split(v, ",") {
			if t := strings.TrimSpace(tag); t != "" {
				tags = append(tags, t)
			}
		}
		return tags, nil
	default:
		return nil, fmt.Errorf("'tags' must be an array or a string")
	}
}

// RegisterPingTool registers the simple ping tool.
func (s *DreamlogMCPServer) RegisterPingTool() {
	pingTool := mcp.NewTool("ping",
		mcp.WithDescription("Responds with 'pong' to check if the Dreamlog backend is alive."),
	)
	s.mcpServer.AddTool(pingTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("pong"), nil
	})
}

// RegisterListDreamsTool registers the list_dreams tool.
func (s *DreamlogMCPServer) RegisterListDreamsTool() {
	listTool := mcp.NewTool("list_dreams",
		mcp.WithDescription("Lists dreams, optionally filtered. All filters combine with AND; results are ordered by occurredAt descending."),
		mcp.WithString("query", mcp.Description("Substring to match against title or content.")),
		mcp.WithString("mood", mcp.Description("Mood token to match exactly (happy, sad, scary, romantic, weird, neutral).")),
		mcp.WithString("tags", mcp.Description("Tags the dream must all carry: a JSON array string (required for tags containing commas) or a comma-separated list.")),
		mcp.WithString("dateFrom", mcp.Description("Inclusive lower bound on occurredAt (ISO-8601).")),
		mcp.WithString("dateTo", mcp.Description("Inclusive upper bound on occurredAt (ISO-8601).")),
		mcp.WithString("day", mcp.Description("Exact calendar day of occurredAt (YYYY-MM-DD).")),
	)
	s.mcpServer.AddTool(listTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filter := dreams.Filter{}
		filter.Query, _ = request.Params.Arguments["query"].(string)
		filter.Mood, _ = request.Params.Arguments["mood"].(string)
		filter.DateFrom, _ = request.Params.Arguments["dateFrom"].(string)
		filter.DateTo, _ = request.Params.Arguments["dateTo"].(string)
		filter.Day, _ = request.Params.Arguments["day"].(string)
		tags, err := parseTagsArgument(request.Params.Arguments["tags"])
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid 'tags' argument: %v", err)), nil
		}
		filter.Tags = tags

		s.mu.Lock()
		defer s.mu.Unlock()

		result, err := dreams.ListDreams(ctx, s.db, filter)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list dreams: %v", err)), nil
		}

		jsonResult, err := json.Marshal(result)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize dreams to JSON: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// RegisterGetDreamTool registers the get_dream tool. A missing id is a
// successful null result, not an error.
func (s *DreamlogMCPServer) RegisterGetDreamTool() {
	getTool := mcp.NewTool("get_dream",
		mcp.WithDescription("Retrieves a single dream by id. Returns JSON null if no dream has that id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("The dream's id.")),
	)
	s.mcpServer.AddTool(getTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, idOk := request.Params.Arguments["id"].(string)
		if !idOk || id == "" {
			return mcp.NewToolResultError("'id' parameter is required and must be a non-empty string."), nil
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		dream, err := dreams.GetDream(ctx, s.db, id)
		if err != nil {
			if errors.Is(err, dreams.ErrDreamNotFound) {
				return mcp.NewToolResultText("null"), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get dream '%s': %v", id, err)), nil
		}

		jsonResult, err := json.Marshal(dream)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize dream to JSON: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// RegisterUpsertDreamTool registers the upsert_dream tool.
func (s *DreamlogMCPServer) RegisterUpsertDreamTool() {
	upsertTool := mcp.NewTool("upsert_dream",
		mcp.WithDescription("Inserts a dream or fully replaces the one with the same id. updatedAt is stamped server-side; createdAt is stored as supplied."),
		mcp.WithString("dream", mcp.Required(), mcp.Description("The dream record as a JSON object.")),
	)
	s.mcpServer.AddTool(upsertTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		payload, payloadOk := request.Params.Arguments["dream"].(string)
		if !payloadOk || payload == "" {
			return mcp.NewToolResultError("'dream' parameter is required and must be a JSON object string."), nil
		}

		var dream dreams.Dream
		if err := json.Unmarshal([]byte(payload), &dream); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Malformed dream payload: %v", err)), nil
		}
		if dream.ID == "" {
			return mcp.NewToolResultError("Dream 'id' must be a non-empty string."), nil
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		stored, err := dreams.UpsertDream(ctx, s.db, dream)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to upsert dream '%s': %v", dream.ID, err)), nil
		}

		jsonResult, err := json.Marshal(stored)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize dream to JSON: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// RegisterDeleteDreamTool registers the delete_dream tool.
func (s *DreamlogMCPServer) RegisterDeleteDreamTool() {
	deleteTool := mcp.NewTool("delete_dream",
		mcp.WithDescription("Deletes the dream with the given id. Succeeds even if no such dream exists."),
		mcp.WithString("id", mcp.Required(), mcp.Description("The dream's id.")),
	)
	s.mcpServer.AddTool(deleteTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, idOk := request.Params.Arguments["id"].(string)
		if !idOk || id == "" {
			return mcp.NewToolResultError("'id' parameter is required and must be a non-empty string."), nil
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		if err := dreams.DeleteDream(ctx, s.db, id); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete dream '%s': %v", id, err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Dream '%s' deleted.", id)), nil
	})
}

// RegisterExportDreamsTool registers the export_dreams tool.
func (s *DreamlogMCPServer) RegisterExportDreamsTool() {
	exportTool := mcp.NewTool("export_dreams",
		mcp.WithDescription("Exports every dream as a pretty-printed JSON array, suitable for import_dreams."),
	)
	s.mcpServer.AddTool(exportTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		snapshot, err := dreams.ExportJSON(ctx, s.db)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to export dreams: %v", err)), nil
		}
		return mcp.NewToolResultText(snapshot), nil
	})
}

// RegisterImportDreamsTool registers the import_dreams tool.
func (s *DreamlogMCPServer) RegisterImportDreamsTool() {
	importTool := mcp.NewTool("import_dreams",
		mcp.WithDescription("Imports a JSON array of dreams, upserting each. Returns counts of newly imported and updated records."),
		mcp.WithString("json", mcp.Required(), mcp.Description("JSON array of dream records.")),
	)
	s.mcpServer.AddTool(importTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		payload, payloadOk := request.Params.Arguments["json"].(string)
		if !payloadOk || payload == "" {
			return mcp.NewToolResultError("'json' parameter is required and must be a non-empty string."), nil
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		imported, updated, err := dreams.ImportJSON(ctx, s.db, payload)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to import dreams: %v", err)), nil
		}

		jsonResult, err := json.Marshal(map[string]int{"imported": imported, "updated": updated})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize import counts: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// RegisterGetAppPathsTool registers the get_app_paths tool.
func (s *DreamlogMCPServer) RegisterGetAppPathsTool() {
	pathsTool := mcp.NewTool("get_app_paths",
		mcp.WithDescription("Reports where the backing database file lives."),
	)
	s.mcpServer.AddTool(pathsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonResult, err := json.Marshal(map[string]string{"dbPath": s.DBPath})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize paths: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// RegisterHashPinTool registers the hash_pin tool.
func (s *DreamlogMCPServer) RegisterHashPinTool() {
	hashTool := mcp.NewTool("hash_pin",
		mcp.WithDescription("Hashes a PIN with argon2id under a fresh random salt and returns the encoded hash string."),
		mcp.WithString("pin", mcp.Required(), mcp.Description("The plaintext PIN to hash.")),
	)
	s.mcpServer.AddTool(hashTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		pin, pinOk := request.Params.Arguments["pin"].(string)
		if !pinOk {
			return mcp.NewToolResultError("'pin' parameter is required and must be a string."), nil
		}

		encoded, err := security.HashPIN(pin)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to hash pin: %v", err)), nil
		}
		return mcp.NewToolResultText(encoded), nil
	})
}

// RegisterVerifyPinTool registers the verify_pin tool.
func (s *DreamlogMCPServer) RegisterVerifyPinTool() {
	verifyTool := mcp.NewTool("verify_pin",
		mcp.WithDescription("Verifies a PIN against a previously produced hash. Returns 'true' or 'false'; an unparseable hash is an error."),
		mcp.WithString("pin", mcp.Required(), mcp.Description("The plaintext PIN to check.")),
		mcp.WithString("hash", mcp.Required(), mcp.Description("The encoded hash produced by hash_pin.")),
	)
	s.mcpServer.AddTool(verifyTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		pin, pinOk := request.Params.Arguments["pin"].(string)
		if !pinOk {
			return mcp.NewToolResultError("'pin' parameter is required and must be a string."), nil
		}
		hash, hashOk := request.Params.Arguments["hash"].(string)
		if !hashOk || hash == "" {
			return mcp.NewToolResultError("'hash' parameter is required and must be a non-empty string."), nil
		}

		match, err := security.VerifyPIN(pin, hash)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to verify pin: %v", err)), nil
		}
		if match {
			return mcp.NewToolResultText("true"), nil
		}
		return mcp.NewToolResultText("false"), nil
	})
}

// RegisterAllTools registers every dreamlog tool on the server.
func (s *DreamlogMCPServer) RegisterAllTools() {
	s.RegisterPingTool()
	s.RegisterListDreamsTool()
	s.RegisterGetDreamTool()
	s.RegisterUpsertDreamTool()
	s.RegisterDeleteDreamTool()
	s.RegisterExportDreamsTool()
	s.RegisterImportDreamsTool()
	s.RegisterGetAppPathsTool()
	s.RegisterHashPinTool()
	s.RegisterVerifyPinTool()
}
