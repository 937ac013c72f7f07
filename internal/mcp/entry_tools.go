// ABOUTME: MCP tool implementations for diary entries.
// ABOUTME: Registers write_entry, read_entry, list_entries, delete_entry, search_diary.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/minidiary/internal/i18n"
	"github.com/2389-research/minidiary/internal/models"
	"github.com/2389-research/minidiary/internal/storage"
	"github.com/2389-research/minidiary/internal/tui"
)

const defaultListLimit = 10

func (s *Server) registerEntryTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "write_entry",
		Description: "Write the diary entry for a day, replacing what was there. Each day holds one entry. An empty title and text deletes the day's entry.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"date": {"type": "string", "description": "Day in YYYY-MM-DD format (default: today)"},
				"title": {"type": "string", "description": "Entry title"},
				"text": {"type": "string", "description": "Entry text (markdown)"}
			}
		}`),
	}, s.handleWriteEntry)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "read_entry",
		Description: "Read the diary entry for a day.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"date": {"type": "string", "description": "Day in YYYY-MM-DD format"}
			},
			"required": ["date"]
		}`),
	}, s.handleReadEntry)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "list_entries",
		Description: "List diary entries, newest first.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"limit": {"type": "number", "description": "Maximum number of entries to return (default: 10, 0 for all)"}
			}
		}`),
	}, s.handleListEntries)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "delete_entry",
		Description: "Delete the diary entry for a day.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"date": {"type": "string", "description": "Day in YYYY-MM-DD format"}
			},
			"required": ["date"]
		}`),
	}, s.handleDeleteEntry)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "search_diary",
		Description: "Full-text search over entry titles and text. Returns matching days, newest first. The day given as date is marked as selected.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {"type": "string", "description": "Search query text"},
				"date": {"type": "string", "description": "Selected day in YYYY-MM-DD format (default: today)"},
				"limit": {"type": "number", "description": "Maximum number of results (default: all)"}
			},
			"required": ["query"]
		}`),
	}, s.handleSearchDiary)
}

func (s *Server) handleWriteEntry(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Date  string `json:"date"`
		Title string `json:"title"`
		Text  string `json:"text"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.Date == "" {
		args.Date = models.IndexDate(s.now())
	}

	allowFuture, err := s.prefs.LoadFutureEntries()
	if err != nil {
		return toolError("failed to load preferences: %v", err), nil
	}
	if err := storage.CheckDate(args.Date, s.now(), allowFuture); err != nil {
		return toolError("cannot write %s: %v", args.Date, err), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := models.NewEntry(args.Date, args.Title, args.Text)
	if err := storage.InheritID(s.entries, entry); err != nil {
		return toolError("cannot write %s: %v", args.Date, err), nil
	}

	if err := s.entries.WriteEntry(entry); err != nil {
		return toolError("failed to write entry: %v", err), nil
	}

	if entry.IsEmpty() {
		if err := s.index.Remove(entry.Date); err != nil {
			s.logger.Warn("failed to remove entry from index", "date", entry.Date, "error", err)
		}
		return textResult(fmt.Sprintf("Entry for %s is empty and was removed.", entry.Date)), nil
	}

	if err := s.index.Upsert(*entry); err != nil {
		s.logger.Warn("failed to index entry", "date", entry.Date, "error", err)
	}
	return textResult(fmt.Sprintf("Entry written for %s\nPath: %s", entry.Date, entry.FilePath)), nil
}

func (s *Server) handleReadEntry(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Date string `json:"date"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.Date == "" {
		return toolError("date is required"), nil
	}

	entry, err := s.entries.ReadEntry(args.Date)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return toolError("no entry for %s", args.Date), nil
		}
		return toolError("failed to read entry: %v", err), nil
	}

	return textResult(s.formatEntry(*entry)), nil
}

func (s *Server) handleListEntries(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	args := struct {
		Limit *int `json:"limit"`
	}{}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	limit := defaultListLimit
	if args.Limit != nil {
		limit = *args.Limit
	}

	all, err := s.entries.Entries()
	if err != nil {
		return toolError("failed to list entries: %v", err), nil
	}
	if len(all) == 0 {
		return textResult("No entries found."), nil
	}

	dates := all.Dates()
	if limit > 0 && len(dates) > limit {
		dates = dates[:limit]
	}

	var sb strings.Builder
	for _, date := range dates {
		sb.WriteString(fmt.Sprintf("- %s %s\n", date, s.titleOf(all[date])))
	}
	return textResult(sb.String()), nil
}

func (s *Server) handleDeleteEntry(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Date string `json:"date"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.Date == "" {
		return toolError("date is required"), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.entries.DeleteEntry(args.Date); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return toolError("no entry for %s", args.Date), nil
		}
		return toolError("failed to delete entry: %v", err), nil
	}
	if err := s.index.Remove(args.Date); err != nil {
		s.logger.Warn("failed to remove entry from index", "date", args.Date, "error", err)
	}
	return textResult(fmt.Sprintf("Entry for %s deleted.", args.Date)), nil
}

func (s *Server) handleSearchDiary(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Query string `json:"query"`
		Date  string `json:"date"`
		Limit int    `json:"limit"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if strings.TrimSpace(args.Query) == "" {
		return toolError("query is required"), nil
	}

	selected := s.now()
	if args.Date != "" {
		d, err := models.ParseIndexDate(args.Date)
		if err != nil {
			return toolError("invalid date: %v", err), nil
		}
		selected = d
	}

	results, err := s.index.Search(args.Query, args.Limit)
	if err != nil {
		return toolError("search failed: %v", err), nil
	}
	all, err := s.entries.Entries()
	if err != nil {
		return toolError("failed to list entries: %v", err), nil
	}

	view := tui.BuildResults(selected, all, results, s.tr)
	if view.Empty() {
		return textResult(view.Banner), nil
	}

	var sb strings.Builder
	for _, row := range view.Rows {
		marker := "-"
		if row.Selected {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("%s %s (%s) %s\n", marker, row.IndexDate, row.DateLabel, row.Title))
	}
	return textResult(sb.String()), nil
}

func (s *Server) titleOf(e models.Entry) string {
	if e.Title == "" {
		return s.tr.T(i18n.KeyNoTitle)
	}
	return e.Title
}

func (s *Server) formatEntry(e models.Entry) string {
	date, _ := models.ParseIndexDate(e.Date)
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n", s.titleOf(e)))
	sb.WriteString(fmt.Sprintf("Date: %s (%s)\n", e.Date, s.tr.FormatDate(date)))
	if !e.UpdatedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("Updated: %s\n", e.UpdatedAt.Local().Format("2006-01-02 15:04:05")))
	}
	if e.Text != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

func textResult(text string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: text}},
	}
}

// toolError creates an error result for MCP tool responses.
func toolError(format string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}
