package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/qflow/internal/definition"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a definition file",
	Long: `Validate a definition file against the definition schema, then compile its
question tree to catch bad patterns, bad semver constraints and duplicate
question names.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		out := cmd.OutOrStdout()

		result, err := definition.ValidateFile(path)
		if err != nil {
			return err
		}
		if !result.Valid {
			fmt.Fprintf(out, "✗ %s\n", path)
			for _, issue := range result.Issues {
				fmt.Fprintf(out, "  %s\n", issue)
			}
			return fmt.Errorf("%s has %d schema issue(s)", path, len(result.Issues))
		}

		def, err := definition.Load(path)
		if err != nil {
			return err
		}
		tree, err := def.Build()
		if err != nil {
			fmt.Fprintf(out, "✗ %s\n  %v\n", path, err)
			return fmt.Errorf("%s does not compile", path)
		}

		fmt.Fprintf(out, "✓ %s (%s %s, %d nodes)\n", path, def.Name, def.Version, tree.Len())
		return nil
	},
}
