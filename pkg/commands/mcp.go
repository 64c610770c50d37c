package commands

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/dayplan/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	var (
		transport string
		httpHost  string
		httpPort  int
		httpPath  string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server that exposes the logged-in user's tasks, notes,
and reports through the Model Context Protocol.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			_, sessions, remote, err := setup()
			if err != nil {
				return err
			}
			active, err := currentUser(sessions)
			if err != nil {
				return err
			}

			path := strings.TrimSpace(httpPath)
			if path == "" {
				path = "/mcp"
			}
			if !strings.HasPrefix(path, "/") {
				path = "/" + path
			}

			runner := mcp.Runner{
				Remote:           remote,
				UserID:           active.UserID,
				Name:             "dayplan",
				Version:          "dev",
				HTTPEndpointPath: path,
			}

			switch strings.ToLower(strings.TrimSpace(transport)) {
			case "", string(mcp.TransportStdio):
				runner.Transport = mcp.TransportStdio
			case string(mcp.TransportHTTP):
				host := strings.TrimSpace(httpHost)
				if host == "" {
					host = "127.0.0.1"
				}
				if httpPort < 0 || httpPort > 65535 {
					return fmt.Errorf("invalid http-port %d", httpPort)
				}

				addr := net.JoinHostPort(host, strconv.Itoa(httpPort))
				runner.Transport = mcp.TransportHTTP
				runner.HTTPListenAddr = addr
				runner.OnHTTPListening = func(a net.Addr) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "MCP HTTP server listening on %s%s\n", a.String(), path)
				}
			default:
				return fmt.Errorf("unsupported transport %q (expected http or stdio)", transport)
			}

			return runner.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&transport, "transport", string(mcp.TransportStdio), "transport to use: http or stdio")
	cmd.Flags().StringVar(&httpHost, "http-host", "127.0.0.1", "host/interface for HTTP transport")
	cmd.Flags().IntVar(&httpPort, "http-port", 8080, "port for HTTP transport (use 0 for random)")
	cmd.Flags().StringVar(&httpPath, "http-path", "/mcp", "HTTP endpoint path")

	topLevel.AddCommand(cmd)
}
