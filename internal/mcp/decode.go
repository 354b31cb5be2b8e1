package mcp

import (
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// decode unmarshals tool arguments into T. No arguments give the zero value.
// A wrongly typed argument is reported by name, e.g.
// `invalid arguments: "hide_packed" must be bool`.
func decode[T any](req mcp.CallToolRequest) (T, error) {
	var result T
	args := req.GetArguments()
	if len(args) == 0 {
		return result, nil
	}
	b, err := json.Marshal(args)
	if err != nil {
		return result, fmt.Errorf("marshal args: %w", err)
	}
	if err := json.Unmarshal(b, &result); err != nil {
		var typeErr *json.UnmarshalTypeError
		if stderrors.As(err, &typeErr) && typeErr.Field != "" {
			return result, fmt.Errorf("invalid arguments: %q must be %s", typeErr.Field, typeErr.Type)
		}
		return result, fmt.Errorf("invalid arguments: %w", err)
	}
	return result, nil
}
