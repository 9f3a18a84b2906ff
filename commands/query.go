package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c360studio/termgraph/graph"
	"github.com/c360studio/termgraph/model"
	"github.com/c360studio/termgraph/storage"
)

// queryStore opens the configured store, optionally preloading vocabulary
// files into it first. Preloading is how the in-memory backend gets data to
// query within a single invocation.
func queryStore(ctx context.Context, app *App, loadFiles []string) (storage.TermStore, func(), error) {
	store, closeStore, err := openStore(ctx, app)
	if err != nil {
		return nil, nil, err
	}
	if len(loadFiles) > 0 {
		if err := loadAndIngest(ctx, app, store, loadFiles, "", nil); err != nil {
			closeStore()
			return nil, nil, err
		}
	}
	return store, closeStore, nil
}

func newGetCommand(app *App) *cobra.Command {
	var loadFiles []string

	cmd := &cobra.Command{
		Use:   "get <uri>",
		Short: "Print the stored term for a URI as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, closeStore, err := queryStore(ctx, app, loadFiles)
			if err != nil {
				return err
			}
			defer closeStore()

			term, err := store.Get(ctx, args[0])
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(term, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&loadFiles, "load", nil, "vocabulary file to load before querying (repeatable)")
	return cmd
}

func newBroaderCommand(app *App) *cobra.Command {
	var loadFiles []string

	cmd := &cobra.Command{
		Use:   "broader <uri>",
		Short: "List a term and all its transitive broader terms",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, closeStore, err := queryStore(ctx, app, loadFiles)
			if err != nil {
				return err
			}
			defer closeStore()

			terms, err := graph.NewTraversal(store).Broader(ctx, args[0])
			if err != nil {
				return err
			}
			printTerms(cmd, terms)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&loadFiles, "load", nil, "vocabulary file to load before querying (repeatable)")
	return cmd
}

func newNarrowerCommand(app *App) *cobra.Command {
	var loadFiles []string

	cmd := &cobra.Command{
		Use:   "narrower <uri>",
		Short: "List all transitive narrower terms of a term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, closeStore, err := queryStore(ctx, app, loadFiles)
			if err != nil {
				return err
			}
			defer closeStore()

			terms, err := graph.NewTraversal(store).Narrower(ctx, args[0])
			if err != nil {
				return err
			}
			printTerms(cmd, terms)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&loadFiles, "load", nil, "vocabulary file to load before querying (repeatable)")
	return cmd
}

func newSchemesCommand(app *App) *cobra.Command {
	var loadFiles []string

	cmd := &cobra.Command{
		Use:   "schemes",
		Short: "List schemes and their term counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, closeStore, err := queryStore(ctx, app, loadFiles)
			if err != nil {
				return err
			}
			defer closeStore()

			counts, err := graph.NewTraversal(store).Schemes(ctx)
			if err != nil {
				return err
			}
			for _, sc := range counts {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", sc.Scheme, sc.Count)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&loadFiles, "load", nil, "vocabulary file to load before querying (repeatable)")
	return cmd
}

func printTerms(cmd *cobra.Command, terms []*model.Term) {
	for _, term := range terms {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", term.URI, term.Scheme, term.Name)
	}
}
