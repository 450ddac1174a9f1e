package cli

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose Rocket Fuel to AI assistants",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve Rocket Fuel over the Model Context Protocol",
	Long: `Serve search_questions, get_question, list_answers and the tag tools
to an MCP client, together with the rocketfuel://session resource.

Stdio is used unless --port is given, in which case the server speaks
streamable HTTP and answers GET /healthz.

  rocketfuel mcp serve
  rocketfuel mcp serve --port 8080
  rocketfuel mcp serve --host 0.0.0.0 --port 8080

Register it with a client as:

  {"mcpServers": {"rocketfuel": {"command": "rocketfuel", "args": ["mcp", "serve"]}}}`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

// serveMCP is swapped out in tests.
var serveMCP = func(cmd *cobra.Command, server *mcp.Server, addr string) error {
	if addr == "" {
		return server.Run(cmd.Context())
	}
	cmd.Printf("MCP server listening on http://%s\n", addr)
	return server.RunHTTP(cmd.Context(), addr)
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "serve HTTP on this port instead of stdio")
	mcpServeCmd.Flags().String("host", "localhost", "interface to bind in HTTP mode")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	host, err := cmd.Flags().GetString("host")
	if err != nil {
		return fmt.Errorf("getting host flag: %w", err)
	}
	var addr string
	if port > 0 {
		addr = net.JoinHostPort(host, strconv.Itoa(port))
	}
	if questionService == nil {
		return errNotConfigured("question")
	}

	ports := &mcp.Ports{
		Questions: questionService,
		Answers:   answerService,
		Tags:      tagService,
		Session:   sessionService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	return serveMCP(cmd, server, addr)
}
