package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vitalvas/apidoc/meta"
	"github.com/vitalvas/apidoc/validate"
)

func newCheckCmd(catalog *meta.Catalog) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the OpenAPI document",
		Long:  "Generate the OpenAPI document, or read it from --file, and validate it with kin-openapi.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, _ := cmd.Flags().GetString("file")
			ctx := cmd.Context()

			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read %s: %w", file, err)
				}
				if err := validate.Data(ctx, data); err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", file)
				return err
			}

			rt, err := newRuntime(cmd, catalog)
			if err != nil {
				return err
			}

			doc, err := rt.generator.Generate(ctx)
			if err != nil {
				return err
			}
			if err := validate.Document(ctx, doc); err != nil {
				return err
			}

			schemas := 0
			if doc.Components != nil {
				schemas = len(doc.Components.Schemas)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "document valid: %d operations, %d schemas\n", doc.Operations(), schemas)
			return err
		},
	}

	cmd.Flags().String("file", "", "Validate this JSON or YAML file instead of generating")

	return cmd
}
