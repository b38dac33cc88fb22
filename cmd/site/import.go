package main

import (
	"fmt"
	"os"
	"path/filepath"

	site "github.com/goliatone/go-cms-site"
	"github.com/spf13/cobra"
)

func importPostsCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import-posts <dir>",
		Short: "Publish Markdown files as posts",
		Long: `Converts every *.md file under <dir> into a post and creates it through the
content API. Front matter supplies title, slug, excerpt, status, category,
image, pages, date and draft. Posts whose slug already exists are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			module, err := site.New(cfg)
			if err != nil {
				return fmt.Errorf("build site: %w", err)
			}

			root := filepath.Clean(args[0])
			result, importErr := module.ImportPosts(cmd.Context(), os.DirFS(root), ".", dryRun)

			out := cmd.OutOrStdout()
			for _, slug := range result.Created {
				if dryRun {
					fmt.Fprintf(out, "would create %s\n", slug)
				} else {
					fmt.Fprintf(out, "created %s\n", slug)
				}
			}
			for _, slug := range result.Skipped {
				fmt.Fprintf(out, "skipped %s\n", slug)
			}
			fmt.Fprintf(out, "%d created, %d skipped, %d failed\n", len(result.Created), len(result.Skipped), len(result.Errors))
			return importErr
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Convert documents without creating posts")
	return cmd
}
