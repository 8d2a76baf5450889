package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/macropower/hop/pkg/rule"
)

// ListRelatedFilesParams defines parameters for the list_related_files tool.
type ListRelatedFilesParams struct {
	File    string `json:"file"`
	Project string `json:"project,omitempty"`
}

// ListRelatedFilesResult contains the result of the list_related_files tool.
type ListRelatedFilesResult struct {
	Project string       `json:"project,omitempty"`
	Error   string       `json:"error,omitempty"`
	Message string       `json:"message"`
	Entries []rule.Entry `json:"entries"`
}

func (s *Server) handleListRelatedFiles(
	ctx context.Context,
	_ *mcp.ServerSession,
	params *mcp.CallToolParamsFor[ListRelatedFilesParams],
) (*mcp.CallToolResultFor[ListRelatedFilesResult], error) {
	args := params.Arguments

	matched, entries, err := s.engine.Candidates(ctx, args.File, args.Project)
	if err != nil {
		return toolError("No related files found: "+err.Error(), ListRelatedFilesResult{
			Error:   err.Error(),
			Message: "No related files found.",
			Entries: []rule.Entry{},
		}), nil
	}

	result := ListRelatedFilesResult{
		Project: matched.Project,
		Entries: entries,
		Message: fmt.Sprintf("Found %d related files.", len(entries)),
	}

	return toolResult(result.Message, result), nil
}
