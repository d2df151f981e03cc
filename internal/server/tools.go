package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// parametersSchema describes the optional per-call parameter overrides.
func parametersSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":                 "object",
		"description":          "Optional detection parameter overrides, e.g. {\"warm_sat_threshold\": 0.35}. Unknown keys are ignored.",
		"additionalProperties": map[string]interface{}{"type": "number"},
	}
}

// boxListSchema describes a list of [x, y, w, h] boxes.
func boxListSchema(description string) map[string]interface{} {
	return map[string]interface{}{
		"type": "array",
		"items": map[string]interface{}{
			"type":     "array",
			"items":    map[string]interface{}{"type": "number"},
			"minItems": 4,
			"maxItems": 4,
		},
		"description": description,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Detection
		{
			Name:        "thermal_compare",
			Description: "Compare a baseline and a candidate thermal image of the same equipment. Returns the fault probability, the warm regions found as [x,y,w,h] boxes, per-box fault labels and severities, and the overall fault type (loose joint, wire overload, point overload or none).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"baseline_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the reference image",
					},
					"candidate_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image under inspection",
					},
					"mask_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional validity mask image. Black pixels are ignored by the detector.",
					},
					"parameters": parametersSchema(),
					"match_size": map[string]interface{}{
						"type":        "boolean",
						"description": "Resize the baseline (and mask) to the candidate's dimensions. Default true; when false, mismatched sizes are an error.",
						"default":     true,
					},
				},
				"required": []string{"baseline_path", "candidate_path"},
			},
		},
		{
			Name:        "thermal_box_preview",
			Description: "Crop one detection box out of an image and return it as base64-encoded PNG, to inspect a reported region up close.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x": map[string]interface{}{"type": "integer", "description": "Box left edge (0-based)"},
					"y": map[string]interface{}{"type": "integer", "description": "Box top edge (0-based)"},
					"w": map[string]interface{}{"type": "integer", "description": "Box width in pixels"},
					"h": map[string]interface{}{"type": "integer", "description": "Box height in pixels"},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 4.0 to enlarge a small hot spot). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "x", "y", "w", "h"},
			},
		},

		// Calibration
		{
			Name:        "thermal_calibrate",
			Description: "Propose detection parameter adjustments from reviewer feedback on a candidate image. addedBoxes are regions the detector missed, removedBoxes are false positives. Returns signed deltas to merge into the parameter set, not absolute values.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"candidate_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the reviewed candidate image",
					},
					"parameters":   parametersSchema(),
					"addedBoxes":   boxListSchema("Boxes that should have been detected, each [x, y, w, h]"),
					"removedBoxes": boxListSchema("Boxes that should not have been detected, each [x, y, w, h]"),
					"config_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional JSON file with parameters, addedBoxes and removedBoxes. Inline arguments are applied on top of it.",
					},
				},
				"required": []string{"candidate_path"},
			},
		},
		{
			Name:        "thermal_default_parameters",
			Description: "Return the documented default detection parameters and the parameters this server is configured with.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "thermal_merge_parameters",
			Description: "Apply a parameter delta (for example the parameter_updates of thermal_calibrate) to a parameter set and return the merged set.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"parameters": parametersSchema(),
					"delta": map[string]interface{}{
						"type":                 "object",
						"description":          "Signed adjustments keyed by parameter name",
						"additionalProperties": map[string]interface{}{"type": "number"},
					},
				},
				"required": []string{"delta"},
			},
		},

		// Basic Image Information
		{
			Name:        "image_dimensions",
			Description: "Get the width, height and format of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_cache_clear",
			Description: "Drop decoded images from the server's cache so files rewritten in place are read again. With path, only that image is dropped; without it, the whole cache is cleared.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to evict, exactly as it was passed to other tools",
					},
				},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
