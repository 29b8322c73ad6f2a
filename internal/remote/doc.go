// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package remote provides the HTTP client for the hosted ChatFXT endpoint.
//
// The endpoint is an opaque black box: a prompt goes out as
// {"message": "..."} and whatever text comes back is the reply. The client
// also fires a best-effort analytics ping on startup.
//
// # Usage
//
//	client := remote.NewClient()
//	reply, err := client.Send(ctx, "hello")
//	if err != nil {
//	    var cerr *remote.ClientError
//	    if errors.As(err, &cerr) && cerr.Type == remote.ErrTypeTimeout {
//	        // ...
//	    }
//	}
package remote
