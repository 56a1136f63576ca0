package main

import (
	"fmt"
	"strings"

	"github.com/jetrtc/urlfam"
	"github.com/spf13/cobra"
)

func newBuildCmd(a *app) *cobra.Command {
	var (
		scheme, host string
		port         uint16
		paths        []string
		queries      []string
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a single URL",
		Example: `  urlfam build --host example.com --path api --path people --query v=1
  urlfam build --scheme http --host localhost --port 8080 --query "q=a b"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u := urlfam.New(scheme, host)
			if cmd.Flags().Changed("port") {
				u = u.Port(port)
			}
			for _, p := range paths {
				u = u.Path(p)
			}
			for _, q := range queries {
				key, value, ok := strings.Cut(q, "=")
				if !ok {
					return fmt.Errorf("invalid query %q, expected key=value", q)
				}
				u = u.Query(key, value)
			}
			s, err := u.Build()
			if err != nil {
				return err
			}
			a.Debugf("Built %s", s)
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
	cmd.Flags().StringVar(&scheme, "scheme", "https", "URL scheme")
	cmd.Flags().StringVar(&host, "host", "", "host name")
	cmd.Flags().Uint16Var(&port, "port", 0, "port number")
	cmd.Flags().StringArrayVar(&paths, "path", nil, "path segment, repeatable")
	cmd.Flags().StringArrayVar(&queries, "query", nil, "query pair key=value, repeatable")
	return cmd
}
