package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/macropower/hop/pkg/config"
	"github.com/macropower/hop/pkg/rule"
	"github.com/macropower/hop/pkg/switcher"
	"github.com/macropower/hop/pkg/version"
)

// Engine is the navigation engine served by a [Server].
type Engine interface {
	Next(ctx context.Context, req switcher.Request) (*switcher.Result, error)
	Candidates(ctx context.Context, file, project string) (*rule.Resolved, []rule.Entry, error)
	Save(ctx context.Context, file, project string) (*config.Config, error)
	ConfigPath() string
}

// Server implements the MCP server for hop.
type Server struct {
	engine  Engine
	server  *mcp.Server
	tracer  trace.Tracer
	address string
}

// NewServer creates a new MCP server instance. An empty address serves over
// stdio, anything else is used as an HTTP listen address.
func NewServer(address string, engine Engine) *Server {
	impl := &mcp.Implementation{
		Name:    name,
		Version: version.GetVersion(),
	}

	opts := &mcp.ServerOptions{
		Instructions: instructions,
	}

	s := &Server{
		address: address,
		engine:  engine,
		server:  mcp.NewServer(impl, opts),
		tracer:  otel.Tracer("mcp"),
	}

	s.registerTools()

	return s
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "switch_file",
		Description: "Get the file that follows the given file in the matching hop rule. Returns the path to open next.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"file": fileSchema(),
				"kind": {
					Type:        "string",
					Description: "Kind of rule to use: 'file' (default) or 'git'.",
					Enum:        []any{"file", "git"},
				},
				"project": projectSchema(false),
				"dir": {
					Type:        "string",
					Description: "Directory used to find the git repository for 'git' rules. Defaults to the file's directory.",
				},
			},
			Required: []string{"file"},
		},
	}, WithTracing(s.tracer, s.handleSwitchFile))

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_related_files",
		Description: "List every file related to the given file by the matching 'file' rule. The current file is marked.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"file":    fileSchema(),
				"project": projectSchema(false),
			},
			Required: []string{"file"},
		},
	}, WithTracing(s.tracer, s.handleListRelatedFiles))

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "save_rule",
		Description: "Add the given file to a project's 'file' rule and save the configuration. Only use when the user asks for it.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"file":    fileSchema(),
				"project": projectSchema(true),
			},
			Required: []string{"file", "project"},
		},
	}, WithTracing(s.tracer, s.handleSaveRule))
}

// Server returns the underlying MCP server.
func (s *Server) Server() *mcp.Server {
	return s.server
}

// Serve starts the MCP server and blocks until it stops.
func (s *Server) Serve(ctx context.Context) error {
	slog.InfoContext(ctx, "starting MCP server", slog.String("address", s.address))

	if s.address == "" {
		err := s.serveStdio(ctx)
		if err != nil {
			return fmt.Errorf("serve stdio: %w", err)
		}

		return nil
	}

	err := s.serveHTTP(ctx)
	if err != nil {
		return fmt.Errorf("serve HTTP: %w", err)
	}

	return nil
}

func (s *Server) serveHTTP(ctx context.Context) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)

	server := &http.Server{
		Addr:    s.address,
		Handler: handler,

		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		if err != nil {
			slog.ErrorContext(ctx, "shutdown MCP server", slog.Any("err", err))
		}
	}()

	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("MCP server failed: %w", err)
	}

	return nil
}

func (s *Server) serveStdio(ctx context.Context) error {
	t := mcp.NewLoggingTransport(mcp.NewStdioTransport(), os.Stderr)

	err := s.server.Run(ctx, t)
	if err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}

	return nil
}
