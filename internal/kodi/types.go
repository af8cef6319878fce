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

import "context"

// Method is a fully qualified JSON-RPC method name, e.g. "Player.Open"
type Method string

// Params holds named JSON-RPC parameters
type Params map[string]any

// Request is the JSON-RPC 2.0 request body sent to the media center
type Request struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  Params `json:"params,omitempty"`
	ID      string `json:"id"`
}

// RPCError is the error member of a JSON-RPC response envelope
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Invoker issues a single JSON-RPC call and returns the decoded response
// envelope. The envelope is returned as a generic mapping; its "error"
// member is not interpreted.
type Invoker interface {
	Invoke(ctx context.Context, method Method, params Params) (map[string]any, error)
}

// Message describes the chat message a command arrived in
type Message struct {
	// From is the sender's display name
	From string `json:"from"`
	// Body is the full message text, command word included
	Body string `json:"body"`
}

// String renders the message the way chat frameworks print it: its body
func (m Message) String() string {
	return m.Body
}
