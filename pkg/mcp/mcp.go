// Package mcp exposes hop's navigation engine as Model Context Protocol
// tools.
package mcp

import "github.com/modelcontextprotocol/go-sdk/jsonschema"

const (
	name         = "hop"
	instructions = `MCP Server 'hop' finds files related to a given file (implementation and test, source and docs, ...) using the user's hop rules.

When to use these tools:
- Finding the test for an implementation file, or the implementation for a test
- Listing every file the user considers related to the file you are editing
- Remembering a file as part of a project, so later lookups include it

Workflow:
1. Use 'list_related_files' with an absolute file path to see the related files of a 'file' rule.
2. Use 'switch_file' to get the single next related file. Use kind 'git' for rules that look names up in the repository's tracked files.
3. Use 'save_rule' only when the user asks to add a file to a project.
`
)

func fileSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Description: "Absolute path of the current file.",
	}
}

func projectSchema(required bool) *jsonschema.Schema {
	desc := "Name of the project whose rule should be used. Omit to match by path."
	if required {
		desc = "Name of the project to add the file to. Created if it does not exist."
	}

	return &jsonschema.Schema{
		Type:        "string",
		Description: desc,
	}
}
