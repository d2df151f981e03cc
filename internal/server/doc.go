// Package server implements the MCP (Model Context Protocol) server for
// thermal inspection.
//
// This package provides a JSON-RPC 2.0 server that exposes the thermal fault
// detector and the feedback calibrator to MCP clients.
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
// Detection:
//   - thermal_compare: Compare a baseline and a candidate image
//   - thermal_box_preview: Crop one detection box as PNG
//
// Calibration:
//   - thermal_calibrate: Propose parameter deltas from reviewer feedback
//   - thermal_default_parameters: Report the default and active parameters
//   - thermal_merge_parameters: Apply a delta to a parameter set
//
// Basic Image Information:
//   - image_dimensions: Get width, height and format
//   - image_cache_clear: Drop one or all cached images
//
// # Parameters
//
// Every tool that runs the detector or the calibrator accepts an optional
// "parameters" object. Its values override the server's base parameters,
// which are the defaults plus any overrides from the environment (see the
// config package). Unknown keys are ignored.
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls. The cache persists for the
// lifetime of the server process unless image_cache_clear drops entries, which
// clients do after rewriting an image file in place.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// A failed tool call never stops the server.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := server.New(cfg).Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Testing
//
// Tests here use the standard testing package with table-driven cases and
// temp-file images, like the rest of the I/O facing packages. The numeric
// packages (thermal, params, calibration, config) use testify instead.
package server
