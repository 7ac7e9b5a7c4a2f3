// Package tools defines the re:lation tool catalog and the generic handler
// that routes tool calls to the API.
package tools

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// allowedMethods is the whitelist of HTTP methods for catalog tools.
var allowedMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "PATCH": true,
}

// ParamLocation says where a parameter is routed in the outgoing request.
type ParamLocation string

const (
	InPath  ParamLocation = "path"
	InQuery ParamLocation = "query"
	InBody  ParamLocation = "body"
)

// ParamType is the JSON schema type of a tool parameter. Array types carry
// their item type because the remote API distinguishes them in its schemas.
type ParamType string

const (
	TypeString      ParamType = "string"
	TypeNumber      ParamType = "number"
	TypeBoolean     ParamType = "boolean"
	TypeStringArray ParamType = "string_array"
	TypeNumberArray ParamType = "number_array"
	TypeObject      ParamType = "object"
)

// Param describes one parameter of a tool: its schema entry plus its routing.
// Rename, when set, is the wire name sent to the API in place of Name.
type Param struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool
	In          ParamLocation
	Rename      string
}

// wireName returns the field name sent to the remote API.
func (p Param) wireName() string {
	if p.Rename != "" {
		return p.Rename
	}
	return p.Name
}

// ErrorStrategy selects how a handler reports a failed remote call.
// A soft strategy swallows the error and returns a successful envelope
// carrying {"error": message}; a propagating strategy surfaces the failure
// as a hard tool-invocation error to the host.
type ErrorStrategy struct {
	Propagate bool
	Message   string
}

// SoftError returns a strategy that swallows failures behind a static message.
func SoftError(message string) ErrorStrategy {
	return ErrorStrategy{Message: message}
}

// Propagate surfaces failures to the host unchanged.
var Propagate = ErrorStrategy{Propagate: true}

// ToolDef is one entry in the tool catalog: the input schema, the endpoint
// template, the per-field routing, and the error strategy.
type ToolDef struct {
	Name        string
	Description string
	Method      string
	Path        string
	OnError     ErrorStrategy
	Params      []Param
}

// Validate checks a single tool definition for internal consistency.
func Validate(def ToolDef) error {
	if def.Name == "" {
		return fmt.Errorf("tool has empty name")
	}
	if !allowedMethods[strings.ToUpper(def.Method)] {
		return fmt.Errorf("tool %q has unsupported method %q", def.Name, def.Method)
	}
	if def.Path == "" || !strings.HasPrefix(def.Path, "/") {
		return fmt.Errorf("tool %q has invalid path %q", def.Name, def.Path)
	}
	if !def.OnError.Propagate && def.OnError.Message == "" {
		return fmt.Errorf("tool %q has no error strategy", def.Name)
	}

	seen := make(map[string]bool, len(def.Params))
	for _, p := range def.Params {
		if p.Name == "" {
			return fmt.Errorf("tool %q has a parameter with empty name", def.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("tool %q has duplicate parameter %q", def.Name, p.Name)
		}
		seen[p.Name] = true
		switch p.In {
		case InPath:
			if !strings.Contains(def.Path, "{"+p.Name+"}") {
				return fmt.Errorf("tool %q path %q has no segment for path parameter %q", def.Name, def.Path, p.Name)
			}
			if !p.Required {
				return fmt.Errorf("tool %q path parameter %q must be required", def.Name, p.Name)
			}
		case InQuery, InBody:
		default:
			return fmt.Errorf("tool %q parameter %q has invalid location %q", def.Name, p.Name, p.In)
		}
	}

	// Every template segment must be bound to a declared path parameter.
	for _, seg := range pathSegments(def.Path) {
		if !seen[seg] {
			return fmt.Errorf("tool %q path segment {%s} has no matching parameter", def.Name, seg)
		}
	}
	return nil
}

// ValidateAll validates every definition and rejects duplicate tool names.
func ValidateAll(defs []ToolDef) error {
	seen := make(map[string]bool, len(defs))
	for _, def := range defs {
		if err := Validate(def); err != nil {
			return err
		}
		if seen[def.Name] {
			return fmt.Errorf("duplicate tool %q", def.Name)
		}
		seen[def.Name] = true
	}
	return nil
}

// pathSegments extracts {name} placeholders from a path template.
func pathSegments(path string) []string {
	var segs []string
	for {
		open := strings.Index(path, "{")
		if open < 0 {
			return segs
		}
		end := strings.Index(path[open:], "}")
		if end < 0 {
			return segs
		}
		segs = append(segs, path[open+1:open+end])
		path = path[open+end+1:]
	}
}

// Build converts a ToolDef into an mcp.Tool with the matching input schema.
func Build(def ToolDef) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(def.Description)}
	for _, p := range def.Params {
		opts = append(opts, buildParamOption(p))
	}
	return mcp.NewTool(def.Name, opts...)
}

// buildParamOption maps a Param to the appropriate mcp-go tool option.
func buildParamOption(p Param) mcp.ToolOption {
	var opts []mcp.PropertyOption
	if p.Description != "" {
		opts = append(opts, mcp.Description(p.Description))
	}
	if p.Required {
		opts = append(opts, mcp.Required())
	}

	switch p.Type {
	case TypeNumber:
		return mcp.WithNumber(p.Name, opts...)
	case TypeBoolean:
		return mcp.WithBoolean(p.Name, opts...)
	case TypeStringArray:
		opts = append([]mcp.PropertyOption{mcp.WithStringItems()}, opts...)
		return mcp.WithArray(p.Name, opts...)
	case TypeNumberArray:
		opts = append([]mcp.PropertyOption{mcp.Items(map[string]any{"type": "number"})}, opts...)
		return mcp.WithArray(p.Name, opts...)
	case TypeObject:
		return mcp.WithObject(p.Name, opts...)
	default:
		return mcp.WithString(p.Name, opts...)
	}
}
