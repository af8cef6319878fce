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

package kodi

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"kodibot/internal/config"
	"kodibot/internal/logger"
)

// VolumeNotInteger is the reply to a volume argument that is not an integer
const VolumeNotInteger = "Volume must be set to an integer."

// Handlers implements the chat commands against one media center. Every
// call dials a fresh client from the configuration; nothing is shared
// between calls besides the read-only configuration.
type Handlers struct {
	config config.Config
	dial   Dialer
	logger zerolog.Logger
}

// NewHandlers creates handlers that connect real clients built with options
func NewHandlers(cfg config.Config, options ...FnModeOption) *Handlers {
	return NewHandlersWithDialer(cfg, NewDialer(options...))
}

// NewHandlersWithDialer creates handlers that obtain clients from dial
func NewHandlersWithDialer(cfg config.Config, dial Dialer) *Handlers {
	return &Handlers{
		config: cfg,
		dial:   dial,
		logger: logger.GetLogger("kodi.handlers"),
	}
}

// Config returns the configuration the handlers connect with
func (h *Handlers) Config() config.Config {
	return h.config
}

// Notify shows an on-screen notification titled after the sender
func (h *Handlers) Notify(ctx context.Context, msg Message, text string) (any, error) {
	return withResult(h.notify(ctx, msg, text))
}

// PlayURL opens a URL or media path in the player. YouTube links are
// rewritten to the YouTube addon first; a YouTube link without a video id
// fails with *NoVideoError.
func (h *Handlers) PlayURL(ctx context.Context, msg Message, args string) (any, error) {
	return withResult(h.playURL(ctx, args))
}

// SetVolume sets the application volume. The value is forwarded without a
// range check.
func (h *Handlers) SetVolume(ctx context.Context, msg Message, args string) (any, error) {
	return withResult(h.setVolume(ctx, args))
}

// RunCommand runs the zero-argument action bound to a command word
func (h *Handlers) RunCommand(ctx context.Context, msg Message, args string) (any, error) {
	return withResult(h.runCommand(ctx, msg, args))
}

// HTPC is an alias for RunCommand
func (h *Handlers) HTPC(ctx context.Context, msg Message, args string) (any, error) {
	return h.RunCommand(ctx, msg, args)
}

func (h *Handlers) notify(ctx context.Context, msg Message, text string) (any, error) {
	client, err := h.connect()
	if err != nil {
		return nil, err
	}

	title := fmt.Sprintf("%s says:", msg.From)
	return client.Invoke(ctx, GUIShowNotification, Params{
		"title":   title,
		"message": text,
	})
}

func (h *Handlers) playURL(ctx context.Context, args string) (any, error) {
	client, err := h.connect()
	if err != nil {
		return nil, err
	}

	file := args
	if strings.Contains(file, "youtube") {
		file, err = ToPlayableReference(file)
		if err != nil {
			return nil, err
		}
		h.logger.Debug().Str("url", args).Str("file", file).Msg("Rewrote YouTube URL")
	}

	return client.Invoke(ctx, PlayerOpen, Params{
		"item": map[string]any{"file": file},
	})
}

func (h *Handlers) setVolume(ctx context.Context, args string) (any, error) {
	client, err := h.connect()
	if err != nil {
		return nil, err
	}

	volume, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil {
		h.logger.Debug().Str("args", args).Msg("Rejected non-integer volume")
		return VolumeNotInteger, nil
	}

	return client.Invoke(ctx, ApplicationSetVolume, Params{"volume": volume})
}

func (h *Handlers) runCommand(ctx context.Context, msg Message, args string) (any, error) {
	client, err := h.connect()
	if err != nil {
		return nil, err
	}

	action, ok := LookupAction(strings.TrimSpace(args))
	if !ok {
		return fmt.Sprintf("Command %s unrecognized. %s", msg, args), nil
	}

	h.logger.Debug().
		Str("command", action.Name).
		Str("method", string(action.Method)).
		Msg("Running command")

	return action.Run(ctx, client)
}

// connect dials a client for this invocation only
func (h *Handlers) connect() (Invoker, error) {
	client, err := h.dial(h.config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", h.config.Host, err)
	}
	return client, nil
}
