package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/qflow/internal/config"
	"github.com/agentx-labs/qflow/internal/definition"
)

var askOpts walkOptions

func init() {
	addWalkFlags(askCmd, &askOpts)
	rootCmd.AddCommand(askCmd)
}

var askCmd = &cobra.Command{
	Use:   "ask <definition>",
	Short: "Walk the questionnaire of a definition file",
	Long: `Walk the questionnaire declared in a definition file and print the answers.

<definition> is a path to a YAML, TOML or JSON file, or the name of a file
in ~/.qflow/definitions (without extension). Type the back keyword at any
prompt to revisit the previous question, or the cancel keyword to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := loadDefinition(args[0])
		if err != nil {
			return err
		}
		tree, err := def.Build()
		if err != nil {
			return fmt.Errorf("building questionnaire %s: %w", def.Name, err)
		}

		logger.Info("walking definition", "name", def.Name, "version", def.Version, "nodes", tree.Len())
		_, err = runQuestionnaire(cmd, tree, askOpts)
		return err
	},
}

// loadDefinition loads a definition by path, or by name from the
// definitions directory.
func loadDefinition(ref string) (*definition.Definition, error) {
	if _, err := os.Stat(ref); err == nil {
		return definition.Load(ref)
	}
	for _, ext := range []string{".yaml", ".yml", ".toml", ".json"} {
		path := filepath.Join(config.DefinitionsDir(), ref+ext)
		if _, err := os.Stat(path); err == nil {
			return definition.Load(path)
		}
	}
	return nil, fmt.Errorf("definition %q not found (looked for a file and in %s)", ref, config.DefinitionsDir())
}
