package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macropower/hop/pkg/mcp"
)

type ServeMCPArgs struct {
	*RootArgs

	Address string
}

func NewServeMCPCmd(ra *RootArgs) *cobra.Command {
	sa := &ServeMCPArgs{RootArgs: ra}

	cmd := &cobra.Command{
		Use:   "serve-mcp",
		Short: "Serve hop's tools over the Model Context Protocol",
		Long: `Serve hop's tools over the Model Context Protocol.

Without --address the server speaks over stdin and stdout. With an address,
the streamable HTTP transport is served there.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server := mcp.NewServer(sa.Address, sa.Engine(cmd.ErrOrStderr()))

			err := server.Serve(cmd.Context())
			if err != nil {
				return fmt.Errorf("serve MCP: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&sa.Address, "address", "", "HTTP listen address, e.g. localhost:8080")

	return cmd
}
