package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/qflow/internal/qtree"
	"github.com/agentx-labs/qflow/internal/questions"
)

var newOpts walkOptions

func init() {
	addWalkFlags(newCmd, &newOpts)
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Answer the built-in new-project questionnaire",
	Long: `Ask for the capabilities, language, name and location of a new project
and print the collected answers. Nothing is written to disk other than the
--output file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := qtree.Build(questions.NewProject())
		if err != nil {
			return fmt.Errorf("building project questionnaire: %w", err)
		}

		bag, err := runQuestionnaire(cmd, tree, newOpts)
		if err != nil || bag == nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Project %s would be created in %s\n",
			bag.String(questions.AppName), bag.String(questions.TargetDir))
		return nil
	},
}
