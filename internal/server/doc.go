// Package server implements the MCP (Model Context Protocol) server for the
// recolor engine.
//
// This package provides a JSON-RPC 2.0 server that exposes tolerance-based
// color replacement, plus the inspection tools needed to drive it well, to
// MCP-compatible clients.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// The server provides 9 tools organized into categories:
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width, height, and stride
//
// Region Operations:
//   - image_crop: Extract rectangular region
//   - image_crop_quadrant: Extract named region (top-left, center, etc.)
//
// Color Operations:
//   - image_sample_color: Get color at pixel
//   - image_sample_colors_multi: Sample multiple points
//   - image_dominant_colors: Extract color palette
//
// Recoloring:
//   - image_recolor: Replace colors within a tolerance, returning replacement
//     statistics and the result as base64 PNG or a written file
//
// Comparison:
//   - image_diff: Pixel-exact comparison of two images
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded bitmaps. Bitmaps are
// cached by path and reused across multiple tool calls, avoiding redundant
// disk I/O. The cache persists for the lifetime of the server process; a path
// written by image_recolor is evicted so a reload sees the new contents.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
