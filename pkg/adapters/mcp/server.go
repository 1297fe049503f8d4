// Package mcp exposes the algorithm catalogue to MCP clients.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/algoviz"
	"github.com/aretw0/algoviz/internal/logging"
	"github.com/aretw0/algoviz/pkg/adapters/dom"
	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/ports"
	"github.com/aretw0/algoviz/pkg/registry"
)

// AlgorithmsURI is the resource listing every registered algorithm.
const AlgorithmsURI = "algoviz://algorithms"

// AlgorithmInfo describes a registered algorithm.
type AlgorithmInfo struct {
	Name       string `json:"name" jsonschema_description:"Registered name, usable as the algorithm query parameter"`
	Title      string `json:"title" jsonschema_description:"Human readable title"`
	Summary    string `json:"summary,omitempty" jsonschema_description:"One line description"`
	PseudoCode string `json:"pseudo_code,omitempty" jsonschema_description:"Markdown pseudo-code shown next to the visualization"`
}

// ListResponse is the result of list_algorithms.
type ListResponse struct {
	Algorithms []AlgorithmInfo `json:"algorithms" jsonschema_description:"Registered algorithms sorted by name"`
}

// SimulateResponse is the result of simulate.
type SimulateResponse struct {
	Algorithm string         `json:"algorithm" jsonschema_description:"The algorithm that ran, idle after a fallback"`
	Frames    []domain.Frame `json:"frames" jsonschema_description:"Every animation frame in order"`
	Dropped   []string       `json:"dropped,omitempty" jsonschema_description:"Operations that were ignored, with the reason"`
}

// Server exposes a registry as an MCP server.
type Server struct {
	registry  *registry.Registry
	algoOpts  map[string]map[string]any
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithAlgorithmOptions passes per-algorithm settings to simulations.
func WithAlgorithmOptions(opts map[string]map[string]any) Option {
	return func(s *Server) {
		s.algoOpts = opts
	}
}

// WithLogger configures a logger for the Server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(reg *registry.Registry, opts ...Option) *Server {
	s := &Server{
		registry:  reg,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("algoviz-mcp", strings.TrimSpace(algoviz.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on addr until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: list_algorithms
	listTool := mcp.NewTool("list_algorithms",
		mcp.WithDescription("List every algorithm that can be visualized."),
		mcp.WithOutputSchema[ListResponse](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleList))

	// TOOL: describe_algorithm
	describeTool := mcp.NewTool("describe_algorithm",
		mcp.WithDescription("Describe one algorithm, including its pseudo-code."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Registered algorithm name, e.g. BST")),
		mcp.WithOutputSchema[AlgorithmInfo](),
	)
	s.mcpServer.AddTool(describeTool, mcp.NewStructuredToolHandler(s.handleDescribe))

	// TOOL: simulate
	simulateTool := mcp.NewTool("simulate",
		mcp.WithDescription("Run toolbar operations against a fresh visualizer and return the animation frames."),
		mcp.WithString("algorithm", mcp.Required(), mcp.Description("Registered algorithm name")),
		mcp.WithString("operations", mcp.Required(), mcp.Description("Semicolon separated operations, e.g. \"insert 5; insert 3; find 3; print\"")),
		mcp.WithOutputSchema[SimulateResponse](),
	)
	s.mcpServer.AddTool(simulateTool, mcp.NewStructuredToolHandler(s.handleSimulate))
}

func (s *Server) info(name string) (AlgorithmInfo, bool) {
	d, ok := s.registry.Describe(name)
	if !ok {
		return AlgorithmInfo{}, false
	}
	return AlgorithmInfo{Name: d.Name, Title: d.Title, Summary: d.Summary, PseudoCode: d.PseudoCode}, true
}

func (s *Server) catalogue() ListResponse {
	resp := ListResponse{Algorithms: []AlgorithmInfo{}}
	for _, name := range s.registry.Names() {
		info, _ := s.info(name)
		info.PseudoCode = ""
		resp.Algorithms = append(resp.Algorithms, info)
	}
	return resp
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ListResponse, error) {
	return s.catalogue(), nil
}

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (AlgorithmInfo, error) {
	name, _ := args["name"].(string)
	info, ok := s.info(name)
	if !ok {
		return AlgorithmInfo{}, fmt.Errorf("unknown algorithm %q", name)
	}
	return info, nil
}

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SimulateResponse, error) {
	name, _ := args["algorithm"].(string)
	script, _ := args["operations"].(string)

	ops, err := ParseOperations(script)
	if err != nil {
		return SimulateResponse{}, err
	}
	if _, ok := s.registry.Resolve(name); !ok {
		return SimulateResponse{}, fmt.Errorf("unknown algorithm %q", name)
	}
	return s.Simulate(ctx, name, ops)
}

// Simulate opens an off-screen page for algorithm and submits ops in order.
// Clear operations reset the visualizer.
func (s *Server) Simulate(ctx context.Context, algorithm string, ops []domain.Operation) (SimulateResponse, error) {
	var (
		mu   sync.Mutex
		resp = SimulateResponse{Frames: []domain.Frame{}}
	)
	frames := ports.FrameSinkFunc(func(ctx context.Context, frame domain.Frame) {
		mu.Lock()
		defer mu.Unlock()
		resp.Frames = append(resp.Frames, frame)
	})
	hooks := domain.LifecycleHooks{
		OnDrop: func(ctx context.Context, ev *domain.OperationEvent) {
			mu.Lock()
			defer mu.Unlock()
			resp.Dropped = append(resp.Dropped, fmt.Sprintf("%s: %s", ev.Kind, ev.Reason))
		},
	}

	const containerID = "viz"
	query := domain.ParamAlgorithm + "=" + algorithm
	page, err := algoviz.Open(ctx,
		dom.NewDocument(dom.NewStandardContainer(containerID)),
		dom.NewLocation("/", query),
		containerID,
		algoviz.WithRegistry(s.registry),
		algoviz.WithFrames(frames),
		algoviz.WithAlgorithmOptions(instant(s.algoOpts, algorithm)),
		algoviz.WithLifecycleHooks(hooks),
		algoviz.WithLogger(s.logger),
	)
	if err != nil {
		return SimulateResponse{}, fmt.Errorf("open failed: %w", err)
	}
	defer page.Close()
	resp.Algorithm = page.Algorithm()

	for _, op := range ops {
		if op.Kind == domain.OpClear {
			err = page.Submitter.Clear(ctx)
		} else {
			field := dom.NewElement("value")
			field.SetValue(op.Value)
			err = page.Submitter.Submit(ctx, op.Kind, field)
		}
		if err != nil {
			return SimulateResponse{}, err
		}
	}

	mu.Lock()
	defer mu.Unlock()
	return resp, nil
}

// instant copies opts with the step delay of algorithm forced to zero.
func instant(opts map[string]map[string]any, algorithm string) map[string]map[string]any {
	out := make(map[string]map[string]any, len(opts)+1)
	for name, o := range opts {
		out[name] = o
	}
	merged := map[string]any{"step_delay": 0}
	for k, v := range opts[algorithm] {
		if k != "step_delay" {
			merged[k] = v
		}
	}
	out[algorithm] = merged
	return out
}

// ParseOperations parses a script such as "insert 5; find 5; clear".
func ParseOperations(script string) ([]domain.Operation, error) {
	var ops []domain.Operation
	for _, stmt := range strings.Split(script, ";") {
		fields := strings.Fields(stmt)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == string(domain.OpClear) {
			ops = append(ops, domain.Operation{Kind: domain.OpClear})
			continue
		}
		kind, err := domain.ParseOpKind(fields[0])
		if err != nil {
			return nil, err
		}
		ops = append(ops, domain.Operation{Kind: kind, Value: strings.Join(fields[1:], " ")})
	}
	if len(ops) == 0 {
		return nil, fmt.Errorf("no operations given")
	}
	return ops, nil
}

func (s *Server) registerResources() {
	// EXPOSE: algoviz://algorithms
	s.mcpServer.AddResource(mcp.NewResource(AlgorithmsURI, "Registered Algorithms",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.catalogue())
		if err != nil {
			return nil, fmt.Errorf("failed to encode catalogue: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      AlgorithmsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
