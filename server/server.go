package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mobile-next/adbrobot/utils"
)

const (
	// Parse error: Invalid JSON was received by the server
	ErrCodeParseError = -32700

	// Invalid Request: The JSON sent is not a valid Request object
	ErrCodeInvalidRequest = -32600

	// Method not found: The method does not exist / is not available
	ErrCodeMethodNotFound = -32601

	// Server error: Internal JSON-RPC error
	ErrCodeServerError = -32000

	// Invalid params: Invalid method parameters
	ErrCodeInvalidParams = -32602
)

// Server timeouts. Write timeout leaves room for a full set of ui dump retries.
const (
	ReadTimeout     = 10 * time.Second
	WriteTimeout    = 60 * time.Second
	IdleTimeout     = 120 * time.Second
	ShutdownTimeout = 5 * time.Second
)

// ShutdownMethod stops the server after replying.
const ShutdownMethod = "server.shutdown"

var okResponse = map[string]interface{}{"status": "ok"}

type JSONRPCRequest struct {
	// these fields are all omitempty, so we can report back to client if they are missing
	JSONRPC string          `json:"jsonrpc,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      interface{}     `json:"id,omitempty"`
}

// JSONRPCResponse represents a JSON-RPC response
type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	Result  interface{} `json:"result,omitempty"`
	Error   interface{} `json:"error,omitempty"`
	ID      interface{} `json:"id"`
}

// Server exposes the device commands over JSON-RPC on /rpc and /ws.
type Server struct {
	httpServer   *http.Server
	enableCORS   bool
	registry     map[string]HandlerFunc
	shutdownOnce sync.Once
	done         chan struct{}
}

// NormalizeListenAddr turns a bare port number into ":port".
func NormalizeListenAddr(addr string) (string, error) {
	if strings.Contains(addr, ":") {
		return addr, nil
	}

	port, err := strconv.Atoi(addr)
	if err != nil {
		return "", fmt.Errorf("invalid port: %v", err)
	}

	return fmt.Sprintf(":%d", port), nil
}

// NewServer prepares a server listening on addr. It does not start
// listening until ListenAndServe.
func NewServer(addr string, enableCORS bool) (*Server, error) {
	addr, err := NormalizeListenAddr(addr)
	if err != nil {
		return nil, err
	}

	s := &Server{
		enableCORS: enableCORS,
		registry:   GetMethodRegistry(),
		done:       make(chan struct{}),
	}

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}

	return s, nil
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", sendBanner)
	mux.HandleFunc("/rpc", s.handleJSONRPC)
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		s.handleWebSocket(w, r)
	})

	if s.enableCORS {
		return corsMiddleware(mux)
	}
	return mux
}

// Done is closed once a shutdown has been requested.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) requestShutdown() {
	s.shutdownOnce.Do(func() {
		close(s.done)
	})
}

// ListenAndServe serves until the listener fails or a client calls
// server.shutdown, in which case in-flight requests are drained first.
func (s *Server) ListenAndServe() error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	utils.Info("Starting server on http://%s...", s.httpServer.Addr)

	select {
	case err := <-errCh:
		return err
	case <-s.done:
		utils.Info("Shutdown requested, stopping server")
		ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(ctx)
	}
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.requestShutdown()
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the normalized listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// StartServer runs a server on addr until it is shut down. An interrupt
// drains it through the process shutdown hooks.
func StartServer(addr string, enableCORS bool) error {
	s, err := NewServer(addr, enableCORS)
	if err != nil {
		return err
	}

	utils.OnShutdown("server "+s.Addr(), func() error {
		ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return s.Shutdown(ctx)
	})

	err = s.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// corsMiddleware handles CORS preflight requests and adds CORS headers to responses.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// validateRequest checks the envelope and returns a JSON-RPC error code and
// detail when it is unusable.
func validateRequest(req JSONRPCRequest) (int, string) {
	if req.JSONRPC != "2.0" {
		return ErrCodeInvalidRequest, "'jsonrpc' must be '2.0'"
	}

	if req.ID == nil {
		return ErrCodeInvalidRequest, "'id' field is required"
	}

	if req.Method == "" {
		return ErrCodeInvalidRequest, "'method' is required"
	}

	return 0, ""
}

// call runs one validated request and returns either a result or an error
// triple for the envelope.
func (s *Server) call(ctx context.Context, req JSONRPCRequest) (interface{}, *rpcError) {
	if req.Method == ShutdownMethod {
		return okResponse, nil
	}

	handler, exists := s.registry[req.Method]
	if !exists {
		return nil, &rpcError{ErrCodeMethodNotFound, "Method not found", fmt.Sprintf("Method '%s' not found", req.Method)}
	}

	result, err := handler(ctx, req.Params)
	if err != nil {
		var paramsErr *ParamsError
		if errors.As(err, &paramsErr) {
			return nil, &rpcError{ErrCodeInvalidParams, "Invalid params", paramsErr.Error()}
		}
		return nil, &rpcError{ErrCodeServerError, "Server error", err.Error()}
	}

	return result, nil
}

type rpcError struct {
	code    int
	message string
	data    interface{}
}

func (s *Server) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req JSONRPCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONRPCError(w, nil, ErrCodeParseError, "Parse error", "expecting jsonrpc payload")
		return
	}

	if code, detail := validateRequest(req); code != 0 {
		sendJSONRPCError(w, req.ID, code, "Invalid Request", detail)
		return
	}

	log := utils.Logger().WithField("method", req.Method)
	log.Infof("Request ID: %v, Params: %s", req.ID, string(req.Params))

	result, rpcErr := s.call(r.Context(), req)
	if rpcErr != nil {
		log.Warnf("Error executing method: %v", rpcErr.data)
		sendJSONRPCError(w, req.ID, rpcErr.code, rpcErr.message, rpcErr.data)
		return
	}

	sendJSONRPCResponse(w, req.ID, result)

	if req.Method == ShutdownMethod {
		s.requestShutdown()
	}
}

func sendJSONRPCResponse(w http.ResponseWriter, id interface{}, result interface{}) {
	response := JSONRPCResponse{
		JSONRPC: "2.0",
		Result:  result,
		ID:      id,
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

func sendJSONRPCError(w http.ResponseWriter, id interface{}, code int, message string, data interface{}) {
	response := JSONRPCResponse{
		JSONRPC: "2.0",
		Error: map[string]interface{}{
			"code":    code,
			"message": message,
			"data":    data,
		},
		ID: id,
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

func sendBanner(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(okResponse)
}
