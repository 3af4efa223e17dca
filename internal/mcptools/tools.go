// Package mcptools exposes the edge analyzer as Model Context Protocol tools.
package mcptools

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/nfl-edge/internal/edge"
)

type Analyzer interface {
	AnalyzePlayer(ctx context.Context, identity string, week *int) (*edge.EdgeAnalysis, error)
	Compare(ctx context.Context, identities []string, week *int) (*edge.Comparison, error)
}

type AnalyzePlayerArgs struct {
	Player string `json:"player" jsonschema:"Player name, external id or numeric id (required)"`
	Week   int    `json:"week,omitempty" jsonschema:"NFL week (0 = current week)"`
}

type ComparePlayersArgs struct {
	Players []string `json:"players" jsonschema:"Two or more player names or ids (required)"`
	Week    int      `json:"week,omitempty" jsonschema:"NFL week (0 = current week)"`
}

type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Tools holds the handlers behind each registered tool.
type Tools struct {
	analyzer   Analyzer
	maxCompare int
	logger     *logrus.Logger
}

func New(analyzer Analyzer, maxCompare int, logger *logrus.Logger) *Tools {
	if maxCompare < 2 {
		maxCompare = 2
	}
	return &Tools{analyzer: analyzer, maxCompare: maxCompare, logger: logger}
}

// NewServer builds an MCP server with every tool registered and returns the
// tool listing alongside it.
func (t *Tools) NewServer(version string) (*mcp.Server, []ToolInfo) {
	server := mcp.NewServer(&mcp.Implementation{Name: "nfl-edge", Version: version}, nil)
	registry := make([]ToolInfo, 0, 2)

	addTool(server, &registry, &mcp.Tool{
		Name:        "analyze_player",
		Description: "Matchup edge analysis for one NFL player: per-category summaries, signals, overall impact, confidence and a recommendation",
	}, t.AnalyzePlayer)

	addTool(server, &registry, &mcp.Tool{
		Name:        "compare_players",
		Description: "Analyze several NFL players for the same week and rank them by overall impact",
	}, t.ComparePlayers)

	return server, registry
}

func addTool[T any](server *mcp.Server, registry *[]ToolInfo, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	*registry = append(*registry, ToolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, handler)
}

func (t *Tools) AnalyzePlayer(ctx context.Context, _ *mcp.CallToolRequest, args AnalyzePlayerArgs) (*mcp.CallToolResult, any, error) {
	identity := strings.TrimSpace(args.Player)
	if identity == "" {
		return toolError(errors.New("player is required")), nil, nil
	}
	week, err := optionalWeek(args.Week)
	if err != nil {
		return toolError(err), nil, nil
	}

	analysis, err := t.analyzer.AnalyzePlayer(ctx, identity, week)
	if err != nil {
		return t.analysisError(err, identity)
	}
	return toolJSON(analysis)
}

func (t *Tools) ComparePlayers(ctx context.Context, _ *mcp.CallToolRequest, args ComparePlayersArgs) (*mcp.CallToolResult, any, error) {
	identities := make([]string, 0, len(args.Players))
	for _, p := range args.Players {
		if p = strings.TrimSpace(p); p != "" {
			identities = append(identities, p)
		}
	}
	if len(identities) < 2 {
		return toolError(errors.New("at least two players are required")), nil, nil
	}
	if len(identities) > t.maxCompare {
		return toolError(fmt.Errorf("at most %d players can be compared", t.maxCompare)), nil, nil
	}
	week, err := optionalWeek(args.Week)
	if err != nil {
		return toolError(err), nil, nil
	}

	cmp, err := t.analyzer.Compare(ctx, identities, week)
	if err != nil {
		return t.analysisError(err, strings.Join(identities, ","))
	}
	return toolJSON(cmp)
}

// analysisError reports resolution failures to the model as tool errors; any
// other failure is logged and reported without internals.
func (t *Tools) analysisError(err error, identity string) (*mcp.CallToolResult, any, error) {
	var resErr *edge.ResolutionError
	if errors.As(err, &resErr) {
		return toolError(err), nil, nil
	}
	t.logger.WithError(err).WithFields(logrus.Fields{
		"component": "mcp_tools",
		"identity":  identity,
	}).Error("Edge analysis failed")
	return toolError(errors.New("analysis failed, try again later")), nil, nil
}

func optionalWeek(week int) (*int, error) {
	switch {
	case week < 0:
		return nil, fmt.Errorf("invalid week %d", week)
	case week == 0:
		return nil, nil
	default:
		return &week, nil
	}
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return toolError(err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}

// WithAPIKey requires header (or an Authorization bearer token) to equal
// apiKey. An empty apiKey disables the check.
func WithAPIKey(apiKey, header string, next http.Handler) http.Handler {
	apiKey = strings.TrimSpace(apiKey)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if apiKey == "" {
			next.ServeHTTP(w, r)
			return
		}
		key := strings.TrimSpace(r.Header.Get(header))
		if key == "" {
			if authz := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				key = strings.TrimSpace(authz[7:])
			}
		}
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Handler serves the MCP endpoint at path plus /health and /tools.
func Handler(server *mcp.Server, registry []ToolInfo, path, apiKey string) http.Handler {
	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	mux.Handle("/tools", WithAPIKey(apiKey, "X-API-Key", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"tools": registry})
	})))
	mux.Handle(path, WithAPIKey(apiKey, "X-API-Key", streamable))
	return mux
}
