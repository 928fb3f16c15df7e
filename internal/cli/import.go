package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/utrgv-dp/roadmap/pkg/errors"
	"github.com/utrgv-dp/roadmap/pkg/roadmap"
)

// newImportCmd creates the import command: seed roadmap collections and
// the degree listing directly into the configured store.
func newImportCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Seed the store from JSON files",
	}
	cmd.AddCommand(newImportRoadmapsCmd(opts))
	cmd.AddCommand(newImportListingsCmd(opts))
	return cmd
}

func newImportRoadmapsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "roadmaps <course-type> <file.json>",
		Short: "Import a roadmap collection from a JSON array",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			collection, err := roadmap.CollectionName(args[0])
			if err != nil {
				return err
			}

			var docs []roadmap.Roadmap
			if err := decodeFile(args[1], &docs); err != nil {
				return err
			}
			for i := range docs {
				if err := docs[i].Validate(); err != nil {
					return errors.Wrap(errors.GetCode(err), err, "document %d of %s", i, args[1])
				}
			}

			ctx := cmd.Context()
			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close(context.Background())

			if err := st.InsertRoadmaps(ctx, collection, docs); err != nil {
				return err
			}
			printSuccess("Imported %d documents into %s", len(docs), collection)
			return nil
		},
	}
}

func newImportListingsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "listings <file.json>",
		Short: "Replace the degree listing from a JSON array",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			var listings []roadmap.Listing
			if err := decodeFile(args[0], &listings); err != nil {
				return err
			}

			ctx := cmd.Context()
			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close(context.Background())

			if err := st.ReplaceListings(ctx, listings); err != nil {
				return err
			}
			printSuccess("Imported %d degree listings", len(listings))
			return nil
		},
	}
}

func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "reading %s", path)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decoding %s", path)
	}
	return nil
}
