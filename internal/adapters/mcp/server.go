// Package mcp serves the scoring service as a Model Context Protocol server
// over newline-delimited JSON-RPC 2.0 on stdio.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/okian/revintel/pkg/apperr"
	"github.com/okian/revintel/pkg/logger"
	"github.com/okian/revintel/pkg/metrics"
)

const (
	protocolVersion = "2024-11-05"
	serverName      = "revenue-intelligence"
	maxMessageBytes = 10 * 1024 * 1024
)

// ToolHandler handles one tools/call invocation.
type ToolHandler func(ctx context.Context, args json.RawMessage) (any, error)

type promptHandler func(ctx context.Context, args map[string]string) (getPromptResult, error)

// Server dispatches JSON-RPC requests to tools, resources and prompts.
type Server struct {
	deps    Dependencies
	version string
	logger  logger.Logger
	reader  io.Reader
	writer  io.Writer

	tools    []toolDef
	handlers map[string]ToolHandler

	resources []resourceDef
	templates []resourceTemplateDef

	prompts        []promptDef
	promptHandlers map[string]promptHandler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger. It must not write to the protocol stream.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithVersion sets the version reported in serverInfo.
func WithVersion(v string) Option {
	return func(s *Server) {
		if v != "" {
			s.version = v
		}
	}
}

// New creates a Server reading stdin and writing stdout.
func New(deps Dependencies, opts ...Option) *Server {
	return NewWithIO(deps, os.Stdin, os.Stdout, opts...)
}

// NewWithIO creates a Server over the given reader and writer.
func NewWithIO(deps Dependencies, r io.Reader, w io.Writer, opts ...Option) *Server {
	s := &Server{
		deps:           deps,
		version:        "dev",
		reader:         r,
		writer:         w,
		handlers:       make(map[string]ToolHandler),
		promptHandlers: make(map[string]promptHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("mcp")
	}
	registerTools(s)
	registerResources(s)
	registerPrompts(s)
	return s
}

func (s *Server) addTool(name, description string, schema json.RawMessage, handler ToolHandler) {
	s.tools = append(s.tools, toolDef{Name: name, Description: description, InputSchema: schema})
	s.handlers[name] = handler
}

func (s *Server) addPrompt(def promptDef, handler promptHandler) {
	s.prompts = append(s.prompts, def)
	s.promptHandlers[def.Name] = handler
}

// Run serves requests until the reader is exhausted or ctx is done.
func (s *Server) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.reader)
	scanner.Buffer(make([]byte, 0, 1024*1024), maxMessageBytes)
	s.logger.Info(ctx, "mcp server listening on stdio", logger.String("protocol", protocolVersion))

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req jsonRPCRequest
		if err := json.Unmarshal(line, &req); err != nil {
			metrics.RecordMCPRequest("invalid", "parse_error")
			s.writeError(nil, codeParseError, "parse error")
			continue
		}
		if req.JSONRPC != "2.0" || req.Method == "" {
			metrics.RecordMCPRequest("invalid", "invalid_request")
			if !req.notification() {
				s.writeError(req.ID, codeInvalidRequest, "invalid request")
			}
			continue
		}

		resp := s.dispatch(ctx, &req)
		status := "ok"
		if resp != nil && resp.Error != nil {
			status = "error"
		}
		metrics.RecordMCPRequest(req.Method, status)
		if resp != nil && !req.notification() {
			s.writeJSON(resp)
		}
	}
	return scanner.Err()
}

func (s *Server) dispatch(ctx context.Context, req *jsonRPCRequest) *jsonRPCResponse {
	switch req.Method {
	case "initialize":
		return s.result(req, initializeResult{
			ProtocolVersion: protocolVersion,
			Capabilities: serverCapability{
				Tools:     &struct{}{},
				Resources: &struct{}{},
				Prompts:   &struct{}{},
			},
			ServerInfo: entityInfo{Name: serverName, Version: s.version},
		})
	case "initialized", "notifications/initialized", "notifications/cancelled":
		return nil
	case "ping":
		return s.result(req, struct{}{})
	case "tools/list":
		return s.result(req, toolsListResult{Tools: s.tools})
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	case "resources/list":
		return s.result(req, resourcesListResult{Resources: s.resources})
	case "resources/templates/list":
		return s.result(req, resourceTemplatesListResult{ResourceTemplates: s.templates})
	case "resources/read":
		return s.handleResourcesRead(ctx, req)
	case "prompts/list":
		return s.result(req, promptsListResult{Prompts: s.prompts})
	case "prompts/get":
		return s.handlePromptsGet(ctx, req)
	default:
		return s.failure(req, codeMethodNotFound, fmt.Sprintf("method not found: %s", req.Method))
	}
}

func (s *Server) handleToolsCall(ctx context.Context, req *jsonRPCRequest) *jsonRPCResponse {
	var params callToolParams
	if err := json.Unmarshal(req.Params, &params); err != nil || params.Name == "" {
		return s.failure(req, codeInvalidParams, "invalid params")
	}

	handler, ok := s.handlers[params.Name]
	if !ok {
		return s.result(req, toolError(params.Name, apperr.NotFound("tools/call", "unknown tool: %s", params.Name)))
	}

	result, err := handler(ctx, params.Arguments)
	if err != nil {
		s.logger.Warn(ctx, "tool call failed", logger.String("tool", params.Name), logger.Error(err))
		return s.result(req, toolError(params.Name, err))
	}

	text, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return s.result(req, toolError(params.Name, err))
	}
	return s.result(req, callToolResult{Content: []contentBlock{{Type: "text", Text: string(text)}}})
}

func (s *Server) handleResourcesRead(ctx context.Context, req *jsonRPCRequest) *jsonRPCResponse {
	var params readResourceParams
	if err := json.Unmarshal(req.Params, &params); err != nil || params.URI == "" {
		return s.failure(req, codeInvalidParams, "invalid params")
	}
	v, err := s.readResource(ctx, params.URI)
	if err != nil {
		return s.failure(req, errorCode(err), err.Error())
	}
	text, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return s.failure(req, codeInternalError, err.Error())
	}
	return s.result(req, readResourceResult{Contents: []resourceContents{{
		URI:      params.URI,
		MimeType: "application/json",
		Text:     string(text),
	}}})
}

func (s *Server) handlePromptsGet(ctx context.Context, req *jsonRPCRequest) *jsonRPCResponse {
	var params getPromptParams
	if err := json.Unmarshal(req.Params, &params); err != nil || params.Name == "" {
		return s.failure(req, codeInvalidParams, "invalid params")
	}
	handler, ok := s.promptHandlers[params.Name]
	if !ok {
		return s.failure(req, codeInvalidParams, fmt.Sprintf("unknown prompt: %s", params.Name))
	}
	res, err := handler(ctx, params.Arguments)
	if err != nil {
		return s.failure(req, errorCode(err), err.Error())
	}
	return s.result(req, res)
}

// toolError reports a failed tool call in-band so the model can read it.
func toolError(tool string, err error) callToolResult {
	body := map[string]any{
		"error": err.Error(),
		"kind":  apperr.KindOf(err).String(),
		"tool":  tool,
	}
	var e *apperr.Error
	if errors.As(err, &e) && len(e.Fields) > 0 {
		body["fields"] = e.Fields
	}
	text, _ := json.MarshalIndent(body, "", "  ")
	return callToolResult{Content: []contentBlock{{Type: "text", Text: string(text)}}, IsError: true}
}

func errorCode(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindNotFound:
		return codeInvalidParams
	default:
		return codeInternalError
	}
}

func (s *Server) result(req *jsonRPCRequest, v any) *jsonRPCResponse {
	return &jsonRPCResponse{JSONRPC: "2.0", ID: req.ID, Result: v}
}

func (s *Server) failure(req *jsonRPCRequest, code int, message string) *jsonRPCResponse {
	return &jsonRPCResponse{JSONRPC: "2.0", ID: req.ID, Error: &jsonRPCError{Code: code, Message: message}}
}

func (s *Server) writeJSON(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(s.writer, `{"jsonrpc":"2.0","id":null,"error":{"code":%d,"message":"internal: marshal error"}}`+"\n", codeInternalError)
		return
	}
	fmt.Fprintf(s.writer, "%s\n", data)
}

func (s *Server) writeError(id json.RawMessage, code int, message string) {
	if id == nil {
		id = json.RawMessage("null")
	}
	s.writeJSON(&jsonRPCResponse{JSONRPC: "2.0", ID: id, Error: &jsonRPCError{Code: code, Message: message}})
}
