package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/ironsheep/thermal-inspect-mcp/internal/calibration"
	"github.com/ironsheep/thermal-inspect-mcp/internal/imaging"
	"github.com/ironsheep/thermal-inspect-mcp/internal/params"
	"github.com/ironsheep/thermal-inspect-mcp/internal/thermal"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "thermal_compare").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if s.debug {
			log.Printf("tool %s failed: %v", params.Name, err)
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Layers per-call parameter overrides on the server's base parameters
//  3. Loads images from cache as needed
//  4. Calls the thermal, calibration or imaging function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Detection
	case "thermal_compare":
		return s.handleThermalCompare(args)
	case "thermal_box_preview":
		return s.handleThermalBoxPreview(args)

	// Calibration
	case "thermal_calibrate":
		return s.handleThermalCalibrate(args)
	case "thermal_default_parameters":
		return s.handleThermalDefaultParameters(args)
	case "thermal_merge_parameters":
		return s.handleThermalMergeParameters(args)

	// Basic Image Information
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_cache_clear":
		return s.handleImageCacheClear(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// resolveParams layers raw overrides on top of base. An absent or null
// payload returns base unchanged.
func resolveParams(base params.Set, raw json.RawMessage) (params.Set, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return base, nil
	}
	overrides, err := params.ParseOverrides(raw)
	if err != nil {
		return base, err
	}
	return base.With(overrides), nil
}

// === Detection Handlers ===

type thermalCompareArgs struct {
	BaselinePath  string          `json:"baseline_path"`
	CandidatePath string          `json:"candidate_path"`
	MaskPath      string          `json:"mask_path"`
	Parameters    json.RawMessage `json:"parameters"`
	MatchSize     *bool           `json:"match_size"`
}

func (s *Server) handleThermalCompare(args json.RawMessage) (interface{}, error) {
	var a thermalCompareArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.BaselinePath == "" || a.CandidatePath == "" {
		return nil, fmt.Errorf("baseline_path and candidate_path are required")
	}
	matchSize := a.MatchSize == nil || *a.MatchSize

	p, err := resolveParams(s.params, a.Parameters)
	if err != nil {
		return nil, err
	}

	candidate, err := s.cache.Load(a.CandidatePath)
	if err != nil {
		return nil, err
	}
	baseline, err := s.cache.Load(a.BaselinePath)
	if err != nil {
		return nil, err
	}
	w, h := candidate.Bounds().Dx(), candidate.Bounds().Dy()
	if matchSize {
		baseline = imaging.MatchSize(baseline, w, h)
	}

	var valid *thermal.Mask
	if a.MaskPath != "" {
		if matchSize {
			valid, err = imaging.LoadMask(s.cache, a.MaskPath, w, h)
		} else {
			valid, err = imaging.LoadMask(s.cache, a.MaskPath, 0, 0)
		}
		if err != nil {
			return nil, err
		}
	}

	result, err := thermal.Compare(baseline, candidate, p, valid)
	if err != nil {
		return nil, err
	}
	if s.debug {
		log.Printf("thermal_compare %s: prob=%.3f boxes=%d fault=%s",
			a.CandidatePath, result.Prob, len(result.Boxes), result.FaultType)
	}
	return result, nil
}

type thermalBoxPreviewArgs struct {
	Path  string  `json:"path"`
	X     int     `json:"x"`
	Y     int     `json:"y"`
	W     int     `json:"w"`
	H     int     `json:"h"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleThermalBoxPreview(args json.RawMessage) (interface{}, error) {
	var a thermalBoxPreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.BoxPreview(img, thermal.Box{X: a.X, Y: a.Y, Width: a.W, Height: a.H}, a.Scale)
}

// === Calibration Handlers ===

// feedbackBundle is the calibration payload, inline or in a config file.
type feedbackBundle struct {
	Parameters   json.RawMessage           `json:"parameters"`
	AddedBoxes   []calibration.FeedbackBox `json:"addedBoxes"`
	RemovedBoxes []calibration.FeedbackBox `json:"removedBoxes"`
}

type thermalCalibrateArgs struct {
	feedbackBundle
	CandidatePath string `json:"candidate_path"`
	ConfigPath    string `json:"config_path"`
}

func (s *Server) handleThermalCalibrate(args json.RawMessage) (interface{}, error) {
	var a thermalCalibrateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.CandidatePath == "" {
		return nil, fmt.Errorf("candidate_path is required")
	}

	p := s.params
	var added, removed []calibration.FeedbackBox
	if a.ConfigPath != "" {
		file, err := loadFeedbackBundle(a.ConfigPath)
		if err != nil {
			return nil, err
		}
		if p, err = resolveParams(p, file.Parameters); err != nil {
			return nil, fmt.Errorf("config file %s: %w", a.ConfigPath, err)
		}
		added = append(added, file.AddedBoxes...)
		removed = append(removed, file.RemovedBoxes...)
	}

	p, err := resolveParams(p, a.Parameters)
	if err != nil {
		return nil, err
	}
	added = append(added, a.AddedBoxes...)
	removed = append(removed, a.RemovedBoxes...)

	candidate, err := s.cache.Load(a.CandidatePath)
	if err != nil {
		return nil, err
	}

	report, err := calibration.Calibrate(candidate, calibration.Feedback{
		Parameters:   p,
		AddedBoxes:   added,
		RemovedBoxes: removed,
	})
	if err != nil {
		return nil, err
	}
	if s.debug {
		log.Printf("thermal_calibrate %s: %s", a.CandidatePath, report.Notes)
	}
	return report, nil
}

func loadFeedbackBundle(path string) (*feedbackBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read calibration config: %w", err)
	}
	var b feedbackBundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("invalid calibration config %s: %w", path, err)
	}
	return &b, nil
}

// ParametersResult pairs the documented defaults with the server's active set.
type ParametersResult struct {
	Defaults params.Set `json:"defaults"`
	Active   params.Set `json:"active"`
}

func (s *Server) handleThermalDefaultParameters(args json.RawMessage) (interface{}, error) {
	return &ParametersResult{
		Defaults: params.Defaults(),
		Active:   s.params,
	}, nil
}

type thermalMergeParametersArgs struct {
	Parameters json.RawMessage `json:"parameters"`
	Delta      params.Delta    `json:"delta"`
}

// MergeResult is the merged parameter set and the delta entries applied.
type MergeResult struct {
	Parameters params.Set `json:"parameters"`
	Applied    []string   `json:"applied"`
	Ignored    []string   `json:"ignored,omitempty"`
}

func (s *Server) handleThermalMergeParameters(args json.RawMessage) (interface{}, error) {
	var a thermalMergeParametersArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	p, err := resolveParams(s.params, a.Parameters)
	if err != nil {
		return nil, err
	}

	applied, ignored := []string{}, []string(nil)
	for _, key := range sortedKeys(a.Delta) {
		if params.Known(key) {
			applied = append(applied, key)
		} else {
			ignored = append(ignored, key)
		}
	}
	return &MergeResult{
		Parameters: p.Apply(a.Delta),
		Applied:    applied,
		Ignored:    ignored,
	}, nil
}

func sortedKeys(d params.Delta) []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// === Basic Image Information Handlers ===

type imagePathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// CacheClearResult reports how many cached images a clear dropped.
type CacheClearResult struct {
	Evicted int `json:"evicted"`
}

func (s *Server) handleImageCacheClear(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return &CacheClearResult{Evicted: s.cache.Clear()}, nil
	}
	n := 0
	if s.cache.Evict(a.Path) {
		n = 1
	}
	return &CacheClearResult{Evicted: n}, nil
}
