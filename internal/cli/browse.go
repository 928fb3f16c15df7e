package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/utrgv-dp/roadmap/pkg/catalog"
	"github.com/utrgv-dp/roadmap/pkg/client"
)

// newBrowseCmd creates the browse command: the degree catalog in the
// terminal, one page at a time.
func newBrowseCmd(opts *rootOptions) *cobra.Command {
	var (
		level string
		page  int
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the degree catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			api := client.New(cfg.Client.BaseURL)
			spin := newSpinner(ctx, "Fetching degree catalog")
			spin.Start()
			listings, err := api.FetchListings(ctx)
			spin.Stop()
			if err != nil {
				return err
			}

			state := catalog.NewViewState()
			state.Level = level
			state.Page = page
			view := catalog.Browse(listings, state, cfg.Client.PageSize)

			fmt.Println(StyleTitle.Render(titleFor(level)))
			if len(view.Items) == 0 {
				printInfo("No degrees on this page")
				return nil
			}
			for _, l := range view.Items {
				printListing(l.Course, l.Degree, l.College)
				printDetail("roadmap export %s", l.CourseType)
			}
			printDetail("page %d of %d", view.Number, view.Total)
			return nil
		},
	}

	cmd.Flags().StringVarP(&level, "level", "l", catalog.LevelUndergraduate,
		"degree level (undergraduate or graduate)")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")
	return cmd
}

func titleFor(level string) string {
	if level == catalog.LevelGraduate {
		return "Graduate Degrees"
	}
	return "Undergraduate Degrees"
}
