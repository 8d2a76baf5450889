package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SaveRuleParams defines parameters for the save_rule tool.
type SaveRuleParams struct {
	File    string `json:"file"`
	Project string `json:"project"`
}

// SaveRuleResult contains the result of the save_rule tool.
type SaveRuleResult struct {
	ConfigPath   string `json:"configPath"`
	Error        string `json:"error,omitempty"`
	Message      string `json:"message"`
	ProjectCount int    `json:"projectCount"`
}

func (s *Server) handleSaveRule(
	ctx context.Context,
	_ *mcp.ServerSession,
	params *mcp.CallToolParamsFor[SaveRuleParams],
) (*mcp.CallToolResultFor[SaveRuleResult], error) {
	args := params.Arguments

	if args.Project == "" {
		return toolError("Rule not saved: project must not be empty", SaveRuleResult{
			ConfigPath: s.engine.ConfigPath(),
			Error:      "project must not be empty",
			Message:    "Rule not saved.",
		}), nil
	}

	cfg, err := s.engine.Save(ctx, args.File, args.Project)
	if err != nil {
		return toolError("Rule not saved: "+err.Error(), SaveRuleResult{
			ConfigPath: s.engine.ConfigPath(),
			Error:      err.Error(),
			Message:    "Rule not saved.",
		}), nil
	}

	result := SaveRuleResult{
		ConfigPath:   s.engine.ConfigPath(),
		ProjectCount: len(cfg.Projects),
		Message:      fmt.Sprintf("Added %s to project %q.", args.File, args.Project),
	}

	return toolResult(result.Message, result), nil
}
