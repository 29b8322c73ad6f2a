// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package remote

import "context"

// SendRequest is the JSON body posted to the chat endpoint.
type SendRequest struct {
	Message string `json:"message"`
}

// Sender delivers one prompt and returns the reply text.
// *Client implements it; tests substitute fakes.
type Sender interface {
	Send(ctx context.Context, text string) (string, error)
}

// SenderFunc adapts a plain function to the Sender interface.
type SenderFunc func(ctx context.Context, text string) (string, error)

// Send calls f(ctx, text).
func (f SenderFunc) Send(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// Pinger fires the startup analytics request.
type Pinger interface {
	Ping(ctx context.Context) error
}
