package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"
	"os"

	"github.com/NiftyTreeStudios/image-recolor-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_recolor", "image_crop").
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
//  2. Applies default values for optional parameters
//  3. Loads bitmaps from cache as needed
//  4. Calls the appropriate imaging function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Region Operations
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_crop_quadrant":
		return s.handleImageCropQuadrant(args)

	// Color Operations
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_sample_colors_multi":
		return s.handleImageSampleColorsMulti(args)
	case "image_dominant_colors":
		return s.handleImageDominantColors(args)

	// Recoloring
	case "image_recolor":
		return s.handleImageRecolor(args)

	// Comparison
	case "image_diff":
		return s.handleImageDiff(args)

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

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadBitmapInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Region Operation Handlers ===

type imageCropArgs struct {
	Path  string  `json:"path"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2"`
	Y2    int     `json:"y2"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	b, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Crop(b, a.X1, a.Y1, a.X2, a.Y2, a.Scale)
}

type imageCropQuadrantArgs struct {
	Path   string  `json:"path"`
	Region string  `json:"region"`
	Scale  float64 `json:"scale"`
}

func (s *Server) handleImageCropQuadrant(args json.RawMessage) (interface{}, error) {
	var a imageCropQuadrantArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	b, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.CropQuadrant(b, a.Region, a.Scale)
}

// === Color Operation Handlers ===

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	b, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(b, a.X, a.Y)
}

type imageSampleColorsMultiArgs struct {
	Path   string `json:"path"`
	Points []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Label string `json:"label,omitempty"`
	} `json:"points"`
}

func (s *Server) handleImageSampleColorsMulti(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorsMultiArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	b, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	points := make([]imaging.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = imaging.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}
	return imaging.SampleColorsMulti(b, points)
}

type imageDominantColorsArgs struct {
	Path   string `json:"path"`
	Count  int    `json:"count"`
	Region *struct {
		X1 int `json:"x1"`
		Y1 int `json:"y1"`
		X2 int `json:"x2"`
		Y2 int `json:"y2"`
	} `json:"region,omitempty"`
}

func (s *Server) handleImageDominantColors(args json.RawMessage) (interface{}, error) {
	var a imageDominantColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	b, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	var region *imaging.Region
	if a.Region != nil {
		region = &imaging.Region{X1: a.Region.X1, Y1: a.Region.Y1, X2: a.Region.X2, Y2: a.Region.Y2}
	}
	return imaging.DominantColors(b, a.Count, region)
}

// === Recolor Handler ===

type imageRecolorArgs struct {
	Path        string   `json:"path"`
	Target      string   `json:"target"`
	Replacement string   `json:"replacement"`
	Tolerance   *float64 `json:"tolerance"`
	OutputPath  string   `json:"output_path"`
}

// recolorResult is the tool-level result for image_recolor. The replacement
// counters come from diffing the output against the source bitmap.
type recolorResult struct {
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Target         string  `json:"target"`
	Replacement    string  `json:"replacement"`
	Tolerance      float64 `json:"tolerance"`
	PixelsReplaced int     `json:"pixels_replaced"`
	TotalPixels    int     `json:"total_pixels"`
	OutputPath     string  `json:"output_path,omitempty"`
	ImageBase64    string  `json:"image_base64,omitempty"`
	MimeType       string  `json:"mime_type,omitempty"`
}

func (s *Server) handleImageRecolor(args json.RawMessage) (interface{}, error) {
	var a imageRecolorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	src, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	target, err := imaging.ParseHex(a.Target)
	if err != nil {
		return nil, fmt.Errorf("invalid target color: %w", err)
	}
	replacement, err := imaging.ParseHex(a.Replacement)
	if err != nil {
		return nil, fmt.Errorf("invalid replacement color: %w", err)
	}

	tolerance := imaging.DefaultTolerance
	if a.Tolerance != nil {
		tolerance = *a.Tolerance
	}

	out, err := imaging.Recolor(src, imaging.ReplaceRequest{
		Target:      target,
		Replacement: replacement,
		Tolerance:   tolerance,
	})
	if err != nil {
		return nil, err
	}

	diff, err := imaging.Diff(src, out)
	if err != nil {
		return nil, err
	}

	result := &recolorResult{
		Width:          out.Width,
		Height:         out.Height,
		Target:         target.Hex(),
		Replacement:    replacement.Hex(),
		Tolerance:      tolerance,
		PixelsReplaced: diff.PixelsDifferent,
		TotalPixels:    diff.TotalPixels,
	}

	data, err := encodePNG(out)
	if err != nil {
		return nil, err
	}

	if a.OutputPath != "" {
		if err := os.WriteFile(a.OutputPath, data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write output image: %w", err)
		}
		// The output path may shadow a cached entry from an earlier load.
		s.cache.Evict(a.OutputPath)
		result.OutputPath = a.OutputPath
		return result, nil
	}

	result.ImageBase64 = base64.StdEncoding.EncodeToString(data)
	result.MimeType = "image/png"
	return result, nil
}

// === Comparison Handlers ===

type imageDiffArgs struct {
	Path1 string `json:"path1"`
	Path2 string `json:"path2"`
}

func (s *Server) handleImageDiff(args json.RawMessage) (interface{}, error) {
	var a imageDiffArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	b1, err := s.cache.Load(a.Path1)
	if err != nil {
		return nil, err
	}
	b2, err := s.cache.Load(a.Path2)
	if err != nil {
		return nil, err
	}
	return imaging.Diff(b1, b2)
}

// encodePNG renders a bitmap as PNG bytes.
func encodePNG(b *imaging.Bitmap) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, b.ToImage()); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}
