package cli

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"adrija-tours/config"
	"adrija-tours/db"
	"adrija-tours/repository"
)

func newSeedCommand() *cobra.Command {
	var fixturesPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the PostgreSQL catalog with the fixtures catalog",
		Long: `seed reads the fixtures catalog (embedded, or --fixtures) and replaces
every catalog table in PostgreSQL with it in one transaction.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := configFrom(ctx)
			if cfg.Database.URL == "" && cfg.Database.Host == "" {
				return &ExitError{Code: 2, Err: fmt.Errorf("seed requires DATABASE_URL or DATABASE_HOST")}
			}

			fixtures := repository.NewFixtureRepository(fixturesPath)
			c, err := fixtures.Catalog(ctx)
			if err != nil {
				return err
			}

			conn, err := db.Open(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := db.EnsureSchema(ctx, conn); err != nil {
				return err
			}
			if err := repository.NewCatalogRepository(conn).Seed(ctx, c); err != nil {
				return err
			}

			log.Printf("🌱 Seeded %s from %s", config.SourcePostgres, fixtures.Name())
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d destinations, %d hotels, %d blog posts\n",
				len(c.Destinations), len(c.Hotels), len(c.BlogPosts))
			return err
		},
	}

	cmd.Flags().StringVar(&fixturesPath, "fixtures", "", "fixtures catalog file (default: embedded catalog)")
	return cmd
}
