// Package mcp exposes the diary to Model Context Protocol clients.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/zamm-dev/diary-mvp/internal/models"
	"github.com/zamm-dev/diary-mvp/internal/services"
	"go.uber.org/zap"
)

// ServerName identifies this server to clients
const ServerName = "diary-server"

type ListEntriesArgs struct{}

type ListEntriesResult struct {
	Count   int            `json:"count"`
	Entries []models.Entry `json:"entries"`
}

type GetEntryArgs struct {
	ID int `json:"id" jsonschema:"ID of the diary entry"`
}

type AddEntryArgs struct {
	Date    string `json:"date" jsonschema:"Entry date as YYYY-MM-DD, not in the future"`
	Title   string `json:"title" jsonschema:"Entry title"`
	Content string `json:"content" jsonschema:"Entry body, may span several lines"`
}

type AddEntryResult struct {
	Entry   models.Entry `json:"entry"`
	Message string       `json:"message"`
}

type Server struct {
	diary  services.DiaryService
	logger *zap.Logger

	mu         sync.Mutex
	httpServer *http.Server
}

func NewServer(diary services.DiaryService, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		diary:  diary,
		logger: logger,
	}
}

func errorResult[T any](format string, args ...any) *mcp.CallToolResultFor[T] {
	return &mcp.CallToolResultFor[T]{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + fmt.Sprintf(format, args...)},
		},
	}
}

func jsonResult[T any](v any) *mcp.CallToolResultFor[T] {
	data, err := json.Marshal(v)
	if err != nil {
		return errorResult[T]("marshaling result: %v", err)
	}
	return &mcp.CallToolResultFor[T]{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
	}
}

func (s *Server) ListEntries(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[ListEntriesArgs]) (*mcp.CallToolResultFor[ListEntriesResult], error) {
	entries := s.diary.ListEntries()
	return jsonResult[ListEntriesResult](ListEntriesResult{
		Count:   len(entries),
		Entries: entries,
	}), nil
}

func (s *Server) GetEntry(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[GetEntryArgs]) (*mcp.CallToolResultFor[models.Entry], error) {
	entry, err := s.diary.GetEntry(params.Arguments.ID)
	if err != nil {
		return errorResult[models.Entry]("entry with ID %d not found", params.Arguments.ID), nil
	}
	return jsonResult[models.Entry](entry), nil
}

func (s *Server) AddEntry(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[AddEntryArgs]) (*mcp.CallToolResultFor[AddEntryResult], error) {
	args := params.Arguments

	entry, err := s.diary.AddEntry(args.Date, args.Title, args.Content)
	if err != nil {
		s.logger.Info("add_entry rejected", zap.String("date", args.Date), zap.Error(err))
		return errorResult[AddEntryResult]("creating entry: %v", err), nil
	}

	return jsonResult[AddEntryResult](AddEntryResult{
		Entry:   entry,
		Message: fmt.Sprintf("Successfully created entry '%s' for %s", entry.Title, entry.Date),
	}), nil
}

// NewMCPServer builds the protocol server with every diary tool registered
func (s *Server) NewMCPServer() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: ServerName}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_entries",
		Description: "List all diary entries in display order",
	}, s.ListEntries)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_entry",
		Description: "Get a single diary entry by ID",
	}, s.GetEntry)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_entry",
		Description: "Create a new diary entry; the date must be unique and not in the future",
	}, s.AddEntry)

	return server
}

// Start serves until ctx is cancelled, the client disconnects or Stop is called
func (s *Server) Start(ctx context.Context, transport string, address string) error {
	server := s.NewMCPServer()

	switch transport {
	case "stdio":
		s.logger.Info("starting MCP server", zap.String("transport", "stdio"))
		stdioTransport := mcp.NewStdioTransport()
		loggingTransport := mcp.NewLoggingTransport(stdioTransport, os.Stderr)
		if err := server.Run(ctx, loggingTransport); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case "http":
		s.logger.Info("starting MCP server", zap.String("transport", "http"), zap.String("address", address))
		handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
			return server
		}, nil)

		httpServer := &http.Server{Addr: address, Handler: handler}
		s.mu.Lock()
		s.httpServer = httpServer
		s.mu.Unlock()

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unsupported transport type: %s", transport)
	}
}

// Stop shuts down an HTTP transport. A stdio server stops with its context.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	httpServer := s.httpServer
	s.mu.Unlock()

	if httpServer == nil {
		return nil
	}
	return httpServer.Shutdown(ctx)
}
