package main

import (
	"fmt"
	"os"

	"github.com/jetrtc/urlfam"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newFamilyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "family FILE",
		Short: "Build every member of a family file",
		Long: `Build every member of a YAML family file and print one "name<TAB>url" line
per member. Example file:

  base:
    scheme: https
    host: example.com
    paths: [api]
    query:
      - {key: api-version, value: "42"}
  members:
    - name: people
      paths: [people]
    - name: machines
      port: 8443
      paths: [machines]`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			family, err := loadFamily(args[0])
			if err != nil {
				return err
			}
			results, err := family.Build()
			for _, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", r.Name, r.URL)
			}
			if err != nil {
				a.Errorf("Failed to build family %s: %s", args[0], err.Error())
				return err
			}
			a.Debugf("Built %d URLs from %s", len(results), args[0])
			return nil
		},
	}
}

func loadFamily(path string) (*urlfam.FamilySpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read family file: %w", err)
	}
	family := &urlfam.FamilySpec{}
	if err := yaml.Unmarshal(data, family); err != nil {
		return nil, fmt.Errorf("failed to parse family file: %w", err)
	}
	return family, nil
}
