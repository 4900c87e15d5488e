package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"blob-tools/internal/imaging"
)

const (
	protocolVersion = "2024-11-05"
	serverName      = "blob-tools-mcp"
	serverVersion   = "0.1.0"
)

// JSON-RPC 2.0 error codes.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeToolError      = -32000
)

// Server handles MCP protocol messages over a line-delimited JSON-RPC
// transport. Create one with New and drive it with Run.
type Server struct {
	in    io.Reader
	out   io.Writer
	cache *imaging.ImageCache
	debug bool
}

// New returns a Server wired to stdin/stdout. Debug logging is enabled
// when BLOB_MCP_LOG_LEVEL=debug.
func New() *Server {
	return &Server{
		in:    os.Stdin,
		out:   os.Stdout,
		cache: imaging.NewImageCache(),
		debug: os.Getenv("BLOB_MCP_LOG_LEVEL") == "debug",
	}
}

type jsonRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type jsonRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *jsonRPCError   `json:"error,omitempty"`
}

type jsonRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Run reads requests until the input stream closes. Malformed lines are
// answered with a parse error and the loop continues.
func (s *Server) Run() error {
	scanner := bufio.NewScanner(s.in)
	// Base64 image payloads can be large.
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req jsonRPCRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("parse error: %v", err)
			s.writeError(nil, codeParseError, "parse error")
			continue
		}

		if s.debug {
			log.Printf("request: method=%s id=%s", req.Method, string(req.ID))
		}

		s.handleRequest(&req)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}

func (s *Server) handleRequest(req *jsonRPCRequest) {
	switch req.Method {
	case "initialize":
		s.writeResult(req.ID, map[string]interface{}{
			"protocolVersion": protocolVersion,
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    serverName,
				"version": serverVersion,
			},
		})

	case "notifications/initialized":
		// Notification; no response.

	case "ping":
		s.writeResult(req.ID, map[string]interface{}{})

	case "tools/list":
		s.writeResult(req.ID, map[string]interface{}{
			"tools": toolDefinitions(),
		})

	case "tools/call":
		var params ToolCallParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			s.writeError(req.ID, codeInvalidParams, "invalid params")
			return
		}
		result, err := s.executeTool(&params)
		if err != nil {
			log.Printf("tool %s failed: %v", params.Name, err)
			s.writeError(req.ID, codeToolError, err.Error())
			return
		}
		s.writeResult(req.ID, result)

	default:
		// Notifications for unknown methods are silently dropped.
		if req.ID == nil {
			return
		}
		s.writeError(req.ID, codeMethodNotFound, fmt.Sprintf("method not found: %s", req.Method))
	}
}

func (s *Server) writeResult(id json.RawMessage, result interface{}) {
	s.write(&jsonRPCResponse{JSONRPC: "2.0", ID: id, Result: result})
}

func (s *Server) writeError(id json.RawMessage, code int, message string) {
	s.write(&jsonRPCResponse{JSONRPC: "2.0", ID: id, Error: &jsonRPCError{Code: code, Message: message}})
}

func (s *Server) write(resp *jsonRPCResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		log.Printf("marshal response: %v", err)
		return
	}
	data = append(data, '\n')
	if _, err := s.out.Write(data); err != nil {
		log.Printf("write response: %v", err)
	}
}
