package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c360studio/termgraph/rdf"
	"github.com/c360studio/termgraph/vocabulary/skos"
)

func newConvertCommand(app *App) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "convert <file>...",
		Short: "Parse vocabulary files and reserialize the merged graph",
		Long: `Convert loads one or more vocabulary files into a single graph and writes
the merged result to stdout in the requested format. Useful for
normalizing hand-edited Turtle or merging a vocabulary with its
extensions into one document.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := rdf.ParseFormat(to)
			if err != nil {
				return err
			}

			session := skos.Open(app.Logger)
			defer session.Close()

			for _, file := range args {
				if err := session.LoadFile(file, "", nil); err != nil {
					return fmt.Errorf("load %s: %w", file, err)
				}
			}

			out, err := rdf.Serialize(session.Graph(), target)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "turtle", "output format (turtle, ntriples)")
	return cmd
}
