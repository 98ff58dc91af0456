package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ggframe/pkg/cache"
	"github.com/matzehuels/ggframe/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var redisURL string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear cached layouts and renders",
		Long: `Clear cached layouts and renders.

Clears the local cache directory, or the Redis cache when --redis is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if redisURL != "" {
				return clearRedis(cmd.Context(), redisURL)
			}
			return clearLocal(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&redisURL, "redis", "", "clear this Redis cache instead of the local one")
	return cmd
}

func clearLocal(ctx context.Context) error {
	dir, err := cacheDir()
	if err != nil {
		return fmt.Errorf("get cache dir: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		printInfo("Cache is empty")
		return nil
	}

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return err
	}
	if err := clearCache(ctx, fc); err != nil {
		return err
	}
	printSuccess("Cleared local cache")
	printDetail("Directory: %s", dir)
	return nil
}

func clearRedis(ctx context.Context, url string) error {
	if err := errors.ValidateURL(url, "redis", "rediss"); err != nil {
		return err
	}
	rc, err := cache.NewRedisCache(ctx, url, cache.DefaultRedisPrefix)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer rc.Close()
	if err := clearCache(ctx, rc); err != nil {
		return err
	}
	printSuccess("Cleared redis cache")
	return nil
}

// clearCache clears c if its backend supports it.
func clearCache(ctx context.Context, c cache.Cache) error {
	cl, ok := c.(cache.Clearer)
	if !ok {
		return errors.New(errors.ErrCodeUnsupported, "cache backend cannot be cleared")
	}
	if err := cl.Clear(ctx); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
