package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"blog-api/fixtures"
	"blog-api/logger"
)

var (
	seedCount int
	seedDrop  bool
	seedValue int64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert randomly generated posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedCount < 1 {
			return fmt.Errorf("--count must be at least 1")
		}
		ctx := cmd.Context()

		a, err := openApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		if seedDrop {
			if err := a.mongo.Drop(ctx); err != nil {
				return err
			}
			if err := a.posts.EnsureIndexes(ctx); err != nil {
				return err
			}
		}

		inserted, err := a.posts.InsertMany(ctx, fixtures.New(seedValue).Posts(seedCount))
		if err != nil {
			return err
		}
		total, err := a.posts.Count(ctx)
		if err != nil {
			return err
		}
		logger.InfoWithFields("seeded posts", logger.Fields{"inserted": len(inserted), "total": total})
		fmt.Fprintf(cmd.OutOrStdout(), "inserted %d posts (%d total)\n", len(inserted), total)
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVarP(&seedCount, "count", "n", 11, "number of posts to insert")
	seedCmd.Flags().BoolVar(&seedDrop, "drop", false, "drop the database before seeding")
	seedCmd.Flags().Int64Var(&seedValue, "seed", 0, "random seed (0 picks one)")
}
