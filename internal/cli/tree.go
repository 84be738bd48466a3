package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/qflow/internal/qtree"
	"github.com/agentx-labs/qflow/internal/questions"
	"github.com/agentx-labs/qflow/internal/validation"
)

func init() {
	rootCmd.AddCommand(treeCmd)
}

var treeCmd = &cobra.Command{
	Use:   "tree [definition]",
	Short: "Print the trimmed question tree",
	Long: `Print the question tree of a definition, or of the built-in new-project
questionnaire when no definition is given, after empty groups are removed
and single-child groups are collapsed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := questions.NewProject()
		if len(args) == 1 {
			def, err := loadDefinition(args[0])
			if err != nil {
				return err
			}
			if root, err = def.Tree(); err != nil {
				return err
			}
		}

		tree, err := qtree.Build(root)
		if err != nil {
			return err
		}
		return printTree(cmd.OutOrStdout(), tree)
	},
}

func printTree(w io.Writer, tree *qtree.Tree) error {
	var err error
	tree.Walk(func(id qtree.NodeID, depth int) {
		if err != nil {
			return
		}
		n := tree.Node(id)
		line := strings.Repeat("  ", depth) + string(n.Data.Type())
		if q, ok := tree.Question(id); ok {
			line += " " + q.Base().Name
		}
		if n.Condition != nil {
			var cond string
			if cond, err = describeCondition(n.Condition); err != nil {
				return
			}
			line += " if " + cond
		}
		_, err = fmt.Fprintln(w, line)
	})
	return err
}

func describeCondition(s *validation.Schema) (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("describing condition: %w", err)
	}
	return string(data), nil
}
