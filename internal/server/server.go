// Copyright 2025 Arion Yau
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
	"kodibot/internal/config"
	"kodibot/internal/kodi"
	"kodibot/internal/logger"
)

// CommandRequest is the webhook body a chat framework posts for a command
type CommandRequest struct {
	From       string `json:"from"`
	Text       string `json:"text"`
	Args       string `json:"args"`
	DeliveryID string `json:"delivery_id"`
}

// CommandReply is the webhook response rendered back to the chat
type CommandReply struct {
	Command string `json:"command"`
	Reply   string `json:"reply"`
	Cached  bool   `json:"cached,omitempty"`
}

// Options tunes the webhook server
type Options struct {
	// RequestTimeout bounds each RPC round trip; zero means no bound
	RequestTimeout time.Duration
	// CacheSize and CacheTTL size the delivery de-duplication cache
	CacheSize int
	CacheTTL  time.Duration
}

// Server exposes the chat commands over HTTP for chat frameworks that
// deliver commands as webhooks
type Server struct {
	handlers *kodi.Handlers
	replies  *ReplyCache
	inflight singleflight.Group
	options  Options
	logger   zerolog.Logger
	server   *http.Server
	started  time.Time
}

// New creates a webhook server backed by handlers
func New(handlers *kodi.Handlers, options Options) *Server {
	return &Server{
		handlers: handlers,
		replies:  NewReplyCache(options.CacheSize, options.CacheTTL),
		options:  options,
		logger:   logger.GetLogger("server"),
		started:  time.Now(),
	}
}

// Router builds the HTTP routes
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()
	router.Use(s.loggingMiddleware)

	apiRouter := router.PathPrefix("/api/v1").Subrouter()

	apiRouter.HandleFunc("/commands", s.handleListCommands).Methods("GET")
	apiRouter.HandleFunc("/commands/{command}", s.handleCommand).Methods("POST")
	apiRouter.HandleFunc("/actions", s.handleListActions).Methods("GET")
	apiRouter.HandleFunc("/config", s.handleConfig).Methods("GET")
	apiRouter.HandleFunc("/config/template", s.handleConfigTemplate).Methods("GET")
	apiRouter.HandleFunc("/health", s.handleHealth).Methods("GET")

	return router
}

// Start serves on address until ctx is cancelled
func (s *Server) Start(ctx context.Context, address string) error {
	s.server = &http.Server{
		Addr:         address,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go s.pruneLoop(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("Error shutting down webhook server")
		}
	}()

	s.logger.Info().
		Str("address", address).
		Str("kodi_host", s.handlers.Config().Host).
		Msg("Starting webhook server")

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("webhook server failed: %w", err)
	}
	return nil
}

// Stop closes the server immediately
func (s *Server) Stop() error {
	if s.server != nil {
		return s.server.Close()
	}
	return nil
}

func (s *Server) pruneLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.replies.PruneExpired(); n > 0 {
				s.logger.Debug().Int("expired_count", n).Msg("Pruned cached replies")
			}
		}
	}
}

// Middleware
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("API request")
	})
}

// Response helpers
func (s *Server) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (s *Server) sendError(w http.ResponseWriter, status int, message string) {
	s.sendJSON(w, status, map[string]interface{}{
		"error":     true,
		"message":   message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["command"]

	if _, ok := kodi.LookupCommand(name); !ok {
		s.sendError(w, http.StatusNotFound, fmt.Sprintf("unknown command: %s", name))
		return
	}

	var req CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if cached, ok := s.replies.Get(name, req.DeliveryID); ok {
		s.logger.Debug().
			Str("command", name).
			Str("delivery_id", req.DeliveryID).
			Msg("Returning cached reply for redelivered command")
		cached.Cached = true
		s.sendJSON(w, http.StatusOK, cached)
		return
	}

	var (
		reply CommandReply
		err   error
	)
	if req.DeliveryID == "" {
		reply, err = s.runCommand(r.Context(), name, req)
	} else {
		reply, err = s.runOnce(r.Context(), name, req)
	}
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("command", name).
			Str("from", req.From).
			Msg("Command failed")
		s.sendError(w, http.StatusBadGateway, fmt.Sprintf("Error: %v", err))
		return
	}

	s.sendJSON(w, http.StatusOK, reply)
}

// runOnce runs a command for a delivery id at most once. Copies that arrive
// while the first is in flight wait for its reply.
func (s *Server) runOnce(ctx context.Context, name string, req CommandRequest) (CommandReply, error) {
	ran := false
	v, err, _ := s.inflight.Do(replyKey(name, req.DeliveryID), func() (interface{}, error) {
		ran = true
		if cached, ok := s.replies.Get(name, req.DeliveryID); ok {
			cached.Cached = true
			return cached, nil
		}

		// The call is shared, so one caller going away must not cancel it
		reply, err := s.runCommand(context.WithoutCancel(ctx), name, req)
		if err != nil {
			return nil, err
		}
		s.replies.Store(name, req.DeliveryID, reply)
		return reply, nil
	})
	if err != nil {
		return CommandReply{}, err
	}

	reply := v.(CommandReply)
	if !ran {
		s.logger.Debug().
			Str("command", name).
			Str("delivery_id", req.DeliveryID).
			Msg("Joined in-flight command for redelivered webhook")
		reply.Cached = true
	}
	return reply, nil
}

// runCommand dispatches one chat command and renders its reply
func (s *Server) runCommand(ctx context.Context, name string, req CommandRequest) (CommandReply, error) {
	msg := kodi.Message{From: req.From, Body: req.Text}
	if msg.Body == "" {
		msg.Body = strings.TrimSpace(name + " " + req.Args)
	}

	if s.options.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.options.RequestTimeout)
		defer cancel()
	}

	result, err := s.handlers.Dispatch(ctx, name, msg, req.Args)
	if err != nil {
		return CommandReply{}, err
	}

	return CommandReply{
		Command: name,
		Reply:   kodi.Render(result),
	}, nil
}

func (s *Server) handleListCommands(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, map[string]interface{}{
		"commands": kodi.Commands(),
	})
}

func (s *Server) handleListActions(w http.ResponseWriter, r *http.Request) {
	actions := kodi.Actions()
	out := make([]map[string]string, 0, len(actions))
	for _, action := range actions {
		out = append(out, map[string]string{
			"name":   action.Name,
			"method": string(action.Method),
			"help":   action.Help,
		})
	}

	s.sendJSON(w, http.StatusOK, map[string]interface{}{
		"actions": out,
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, s.handlers.Config().Redacted())
}

func (s *Server) handleConfigTemplate(w http.ResponseWriter, r *http.Request) {
	template := config.Template()
	template[config.KeyPassword] = ""
	s.sendJSON(w, http.StatusOK, template)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
		"cache":     s.replies.Stats(),
	}

	s.sendJSON(w, http.StatusOK, health)
}
