package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"orgair-hq/atlas/pkg/cli"
	"orgair-hq/atlas/pkg/settings"
)

var schemaFormat string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Show the configuration schema",
	Long: `Schema lists every configuration key with its type, default or
requirement, and constraint, in registry order.`,
	Args: cobra.NoArgs,
	RunE: runSchema,
}

func init() {
	schemaCmd.Flags().StringVarP(&schemaFormat, "format", "f", "text", "output format (text, json)")
	rootCmd.AddCommand(schemaCmd)
}

// fieldInfo is the JSON shape of one schema entry.
type fieldInfo struct {
	Key        string `json:"key"`
	Type       string `json:"type"`
	Required   bool   `json:"required"`
	Optional   bool   `json:"optional"`
	Default    string `json:"default,omitempty"`
	Constraint string `json:"constraint,omitempty"`
	Secret     bool   `json:"secret"`
}

func runSchema(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(schemaFormat)
	if err != nil {
		return err
	}

	fields := settings.Fields()

	if format == cli.FormatJSON {
		infos := make([]fieldInfo, 0, len(fields))
		for _, f := range fields {
			info := fieldInfo{
				Key:      f.Key,
				Type:     f.Kind.String(),
				Required: f.Required,
				Optional: f.Optional,
				Default:  f.Default,
				Secret:   f.Secret,
			}
			if c := f.Constraint(); c != "-" {
				info.Constraint = c
			}
			infos = append(infos, info)
		}
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, infos)
	}

	fmt.Printf("%-34s %-8s %-24s %s\n", "KEY", "TYPE", "DEFAULT", "CONSTRAINT")
	for _, f := range fields {
		def := f.Default
		switch {
		case f.Required:
			def = "(required)"
		case f.Optional:
			def = "(optional)"
		case f.Secret && def != "":
			def = settings.Mask
		}
		fmt.Printf("%-34s %-8s %-24s %s\n", f.Key, f.Kind, def, f.Constraint())
	}
	return nil
}
