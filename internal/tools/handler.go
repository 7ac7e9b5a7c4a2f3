package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/relationtools/relation-mcp/internal/common"
	"github.com/relationtools/relation-mcp/internal/relation"
)

// Handler creates the generic handler for a tool definition. It validates
// required parameters, routes each field to the path, query string, or JSON
// body per the definition, issues the API call, and wraps the response in
// the standard envelope. Parameters absent from the input are omitted from
// the request entirely.
func Handler(c *relation.Client, def ToolDef, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		log := logger.WithCorrelationId(uuid.NewString())

		path := def.Path
		query := url.Values{}
		body := map[string]any{}

		for _, param := range def.Params {
			val, ok := argValue(request, param)
			if !ok {
				if param.Required {
					return errorResult(fmt.Sprintf("Error: %s parameter is required", param.Name)), nil
				}
				continue
			}
			switch param.In {
			case InPath:
				path = strings.ReplaceAll(path, "{"+param.Name+"}", url.PathEscape(fmt.Sprint(val)))
			case InQuery:
				addQueryValue(query, param, val)
			case InBody:
				body[param.wireName()] = val
			}
		}

		if len(query) > 0 {
			path += "?" + query.Encode()
		}

		log.Debug().Str("tool", def.Name).Str("method", def.Method).Str("path", path).Msg("tool call")

		res, err := c.Do(ctx, strings.ToUpper(def.Method), path, requestBody(def.Method, body))
		if err != nil {
			log.Warn().Str("tool", def.Name).Str("error", err.Error()).Msg("tool call failed")
			if def.OnError.Propagate {
				return nil, err
			}
			return Envelope(map[string]string{"error": def.OnError.Message})
		}

		if res.NoContent {
			return Envelope(nil)
		}
		return Envelope(res.Value)
	}
}

// Register validates the catalog and adds every tool to the MCP server.
func Register(s *server.MCPServer, c *relation.Client, logger *common.Logger) (int, error) {
	defs := Catalog()
	if err := ValidateAll(defs); err != nil {
		return 0, err
	}
	for _, def := range defs {
		s.AddTool(Build(def), Handler(c, def, logger))
	}
	return len(defs), nil
}

// argValue extracts a parameter value from the request arguments.
// A missing key or an explicit null counts as absent. Path parameters also
// treat an empty string as absent, since an empty segment cannot form a
// valid endpoint path; elsewhere an empty string is a legitimate value.
func argValue(request mcp.CallToolRequest, param Param) (any, bool) {
	args := request.GetArguments()
	if args == nil {
		return nil, false
	}
	val, ok := args[param.Name]
	if !ok || val == nil {
		return nil, false
	}
	if param.In == InPath {
		if s, isStr := val.(string); isStr && s == "" {
			return nil, false
		}
	}
	return val, true
}

// addQueryValue adds a value to the query string. Arrays are encoded as
// repeated "name[]" entries; scalars as a single entry.
func addQueryValue(query url.Values, param Param, val any) {
	if items, ok := val.([]any); ok {
		key := param.wireName() + "[]"
		for _, item := range items {
			query.Add(key, queryValue(item))
		}
		return
	}
	query.Set(param.wireName(), queryValue(val))
}

// queryValue renders a scalar for the query string. JSON numbers arrive as
// float64; FormatFloat keeps large IDs in plain notation where fmt.Sprint
// would switch to scientific.
func queryValue(v any) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// requestBody returns the JSON body for body-carrying methods, or nil for
// methods that take none. Body-carrying tools always send an object, even
// when every optional field was omitted.
func requestBody(method string, body map[string]any) any {
	switch strings.ToUpper(method) {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return body
	}
	return nil
}
