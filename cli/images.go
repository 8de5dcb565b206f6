package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"adrija-tours/app"
	"adrija-tours/service"
)

func newImagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "images",
		Short: "Manage the optimized image cache",
	}
	cmd.AddCommand(newImagesWarmCommand())
	return cmd
}

func newImagesWarmCommand() *cobra.Command {
	var size string

	cmd := &cobra.Command{
		Use:   "warm",
		Short: "Optimize every catalog image that is not cached yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := configFrom(ctx)

			source, closeSource, err := app.OpenSource(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeSource()

			listings := service.NewListingService(source)
			if _, err := listings.Load(ctx); err != nil {
				return err
			}

			images, err := app.NewImageService(ctx, cfg, listings)
			if err != nil {
				return err
			}
			defer images.Close()

			report, err := images.WarmCache(ctx, service.ParseImageSize(size))
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}

	cmd.Flags().StringVar(&size, "size", string(service.ImageMedium), "image size: thumb, medium")
	return cmd
}
