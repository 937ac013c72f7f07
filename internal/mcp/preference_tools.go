// ABOUTME: MCP tool implementations for user preferences.
// ABOUTME: Registers get_preferences and set_preference over the preferences service.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/minidiary/internal/prefs"
)

func (s *Server) registerPreferenceTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "get_preferences",
		Description: "Show the diary preferences: diary directory, whether entries for future days are allowed, and the theme (auto, light, dark).",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleGetPreferences)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "set_preference",
		Description: "Change one diary preference.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"name": {"type": "string", "enum": ["dir", "future-entries", "theme"], "description": "Preference name"},
				"value": {"type": "string", "description": "New value: a path for dir, true/false for future-entries, auto/light/dark for theme"}
			},
			"required": ["name", "value"]
		}`),
	}, s.handleSetPreference)
}

func (s *Server) handleGetPreferences(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	p, err := s.prefs.Load()
	if err != nil {
		return toolError("failed to load preferences: %v", err), nil
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return toolError("failed to encode preferences: %v", err), nil
	}
	return textResult(string(data)), nil
}

func (s *Server) handleSetPreference(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.Name == "" {
		return toolError("name is required (%s)", strings.Join(prefs.Names, ", ")), nil
	}

	if err := s.prefs.SetByName(args.Name, args.Value); err != nil {
		return toolError("failed to set %s: %v", args.Name, err), nil
	}
	s.logger.Info("preference changed", "name", args.Name, "value", args.Value)

	msg := fmt.Sprintf("%s set to %s", args.Name, args.Value)
	if args.Name == prefs.NameDir {
		msg += "\nThe new directory is used from the next start."
	}
	return textResult(msg), nil
}
