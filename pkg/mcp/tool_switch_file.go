package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/macropower/hop/pkg/rule"
	"github.com/macropower/hop/pkg/switcher"
)

// SwitchFileParams defines parameters for the switch_file tool.
type SwitchFileParams struct {
	File    string `json:"file"`
	Kind    string `json:"kind,omitempty"`
	Project string `json:"project,omitempty"`
	Dir     string `json:"dir,omitempty"`
}

// SwitchFileResult contains the result of the switch_file tool.
type SwitchFileResult struct {
	Path     string `json:"path,omitempty"`
	Template string `json:"template,omitempty"`
	Project  string `json:"project,omitempty"`
	Error    string `json:"error,omitempty"`
	Message  string `json:"message"`
}

func (s *Server) handleSwitchFile(
	ctx context.Context,
	_ *mcp.ServerSession,
	params *mcp.CallToolParamsFor[SwitchFileParams],
) (*mcp.CallToolResultFor[SwitchFileResult], error) {
	args := params.Arguments

	res, err := s.engine.Next(ctx, switcher.Request{
		File:    args.File,
		Kind:    rule.Kind(args.Kind),
		Project: args.Project,
		WorkDir: args.Dir,
	})
	if err != nil {
		return toolError("No related file found: "+err.Error(), SwitchFileResult{
			Error:   err.Error(),
			Message: "No related file found.",
		}), nil
	}

	result := SwitchFileResult{
		Path:     res.Path,
		Template: res.Template,
		Project:  res.Rule.Project,
		Message:  fmt.Sprintf("Next file: %s", res.Path),
	}

	return toolResult(result.Message, result), nil
}
