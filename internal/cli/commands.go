package cli

import (
	"context"
	"fmt"
	"time"

	"NewsTrust/internal/config"
	"NewsTrust/internal/infrastructure/storage"
	"NewsTrust/internal/ports"
	"NewsTrust/internal/scoring"
)

const commandTimeout = 30 * time.Second

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	DSN     string `long:"dsn" description:"Postgres DSN (defaults to configuration)"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
}

// ClearEmptyCommand deletes pages whose content score is still null.
type ClearEmptyCommand struct {
	globals *GlobalFlags
	repo    ports.Repository // injectable for testing; nil opens the configured DB
}

// Execute implements the go-flags Commander interface.
func (c *ClearEmptyCommand) Execute(args []string) error {
	repo, cleanup, err := openRepository(c.globals, c.repo)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	deleted, err := repo.DeleteUnscored(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Successfully deleted %d pages with empty content score\n", deleted)
	return nil
}

// ClearOldCommand deletes pages scored with a policy version older than the
// previous one.
type ClearOldCommand struct {
	globals *GlobalFlags
	repo    ports.Repository // injectable for testing
}

// Execute implements the go-flags Commander interface.
func (c *ClearOldCommand) Execute(args []string) error {
	repo, cleanup, err := openRepository(c.globals, c.repo)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	deleted, err := repo.DeleteStaleVersions(ctx, scoring.CurrentVersion-1)
	if err != nil {
		return err
	}

	fmt.Printf("Successfully deleted %d pages with old content score\n", deleted)
	return nil
}

func openRepository(globals *GlobalFlags, injected ports.Repository) (ports.Repository, func(), error) {
	if injected != nil {
		return injected, func() {}, nil
	}

	dsn := globals.DSN
	if dsn == "" {
		dsn = config.Load().Database.DSN
	}

	db, err := storage.Open(dsn)
	if err != nil {
		return nil, nil, err
	}

	repo, err := storage.NewRepository(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	return repo, func() { db.Close() }, nil
}
