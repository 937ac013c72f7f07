// ABOUTME: MCP server initialization and configuration for minidiary.
// ABOUTME: Sets up server with diary and preference tools for AI agent access.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/minidiary/internal/i18n"
	"github.com/2389-research/minidiary/internal/platform"
	"github.com/2389-research/minidiary/internal/prefs"
	"github.com/2389-research/minidiary/internal/search"
	"github.com/2389-research/minidiary/internal/storage"
)

// Server wraps the MCP server with the entry store, preferences, and a search index.
type Server struct {
	mcp     *gomcp.Server
	entries storage.EntryStore
	prefs   *prefs.Service
	index   *search.Index
	tr      *i18n.Translator
	now     func() time.Time
	logger  *slog.Logger

	// mu serializes writes so the index stays in step with the store.
	mu sync.Mutex
}

// ServerOption configures optional Server dependencies.
type ServerOption func(*Server)

// WithTranslator sets the translator used for date labels and placeholders.
func WithTranslator(tr *i18n.Translator) ServerOption {
	return func(s *Server) {
		s.tr = tr
	}
}

// WithClock overrides the clock used for "today".
func WithClock(now func() time.Time) ServerOption {
	return func(s *Server) {
		s.now = now
	}
}

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = l
	}
}

// NewServer creates an MCP server over the entry store and preferences, and
// indexes the existing entries for search.
func NewServer(entries storage.EntryStore, p *prefs.Service, opts ...ServerOption) (*Server, error) {
	if entries == nil {
		return nil, fmt.Errorf("entry store is required")
	}
	if p == nil {
		return nil, fmt.Errorf("preferences service is required")
	}

	mcpServer := gomcp.NewServer(
		&gomcp.Implementation{
			Name:    platform.AppName,
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcp:     mcpServer,
		entries: entries,
		prefs:   p,
		tr:      i18n.New(""),
		now:     time.Now,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	index, err := search.New()
	if err != nil {
		return nil, err
	}
	all, err := entries.Entries()
	if err != nil {
		_ = index.Close()
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	if err := index.Build(all); err != nil {
		_ = index.Close()
		return nil, err
	}
	s.index = index
	s.logger.Debug("search index built", "entries", len(all))

	s.registerEntryTools()
	s.registerPreferenceTools()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}

// Close releases the search index.
func (s *Server) Close() error {
	return s.index.Close()
}
