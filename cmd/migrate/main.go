// Command migrate applies the SQL files under migrations/ with Atlas.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"academy-booking/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
	"ariga.io/atlas/sql/migrate"
)

func main() {
	dirPath := flag.String("dir", "migrations", "migration directory")
	atlasBin := flag.String("atlas", "atlas", "atlas binary")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall timeout")
	flag.Parse()

	if err := run(*dirPath, *atlasBin, *timeout); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func run(dirPath, atlasBin string, timeout time.Duration) error {
	dbCfg, storeCfg, err := config.LoadStoreConfig()
	if err != nil {
		return err
	}
	if !storeCfg.UsesPostgres() {
		slog.Info("memory backend selected, nothing to migrate")
		return nil
	}

	if err := refreshSum(dirPath); err != nil {
		return err
	}

	abs, err := filepath.Abs(dirPath)
	if err != nil {
		return err
	}
	client, err := atlasexec.NewClient(".", atlasBin)
	if err != nil {
		return fmt.Errorf("atlas client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    dbCfg.BuildDSN(),
		DirURL: "file://" + abs,
	})
	if err != nil {
		return fmt.Errorf("migrate apply: %w", err)
	}
	slog.Info("migrations applied", "count", len(res.Applied), "current", res.Current, "target", res.Target)
	return nil
}

// refreshSum rewrites atlas.sum so hand-edited files apply without a separate
// "atlas migrate hash" step.
func refreshSum(dirPath string) error {
	dir, err := migrate.NewLocalDir(dirPath)
	if err != nil {
		return fmt.Errorf("open migration dir: %w", err)
	}
	sum, err := dir.Checksum()
	if err != nil {
		return fmt.Errorf("checksum migrations: %w", err)
	}
	return migrate.WriteSumFile(dir, sum)
}
