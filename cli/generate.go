package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vitalvas/apidoc/meta"
	"github.com/vitalvas/apidoc/openapi"
	"gopkg.in/yaml.v3"
)

func newGenerateCmd(catalog *meta.Catalog) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the OpenAPI document",
		Long:  "Generate the OpenAPI document from the declared controllers and write it to stdout or a file. The cache is never used.",
		Example: strings.TrimSpace(`  apidoc generate
  apidoc generate --format yaml --out openapi.yaml
  apidoc --controllers shop/controllers generate`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, _ := cmd.Flags().GetString("format")
			out, _ := cmd.Flags().GetString("out")

			format = strings.ToLower(strings.TrimSpace(format))
			if format != "json" && format != "yaml" {
				return newUsageError(fmt.Sprintf("unsupported format %q (want json or yaml)", format))
			}

			rt, err := newRuntime(cmd, catalog)
			if err != nil {
				return err
			}

			doc, err := rt.generator.Generate(cmd.Context())
			if err != nil {
				return err
			}

			data, err := encode(doc, format)
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return writeFile(out, data)
		},
	}

	cmd.Flags().StringP("format", "f", "json", "Output format (json|yaml)")
	cmd.Flags().StringP("out", "o", "", "Output file; stdout when empty or \"-\"")

	return cmd
}

func encode(doc *openapi.Document, format string) ([]byte, error) {
	if format == "yaml" {
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return data, nil
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return append(data, '\n'), nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
