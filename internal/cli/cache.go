package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/primgeom/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the shape cache",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Clear all cached shapes",
			Long:  "Clear all cached shapes. With --redis-addr the shared namespace is cleared instead of the local directory.",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.clearCache(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the cache directory path",
			RunE: func(*cobra.Command, []string) error {
				dir, err := cacheDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				fmt.Println(dir)
				return nil
			},
		},
	)
	return cmd
}

func (c *CLI) clearCache(ctx context.Context) error {
	var (
		target interface {
			cache.Cache
			cache.Clearer
		}
		where string
	)

	if c.redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{Addr: c.redisAddr, Namespace: redisNamespace})
		if err != nil {
			return err
		}
		target, where = rc, "Redis: "+c.redisAddr
	} else {
		dir, err := cacheDir()
		if err != nil {
			return fmt.Errorf("get cache dir: %w", err)
		}
		if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
			printInfo("Cache is empty")
			return nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return err
		}
		target, where = fc, "Directory: "+fc.Dir()
	}
	defer target.Close()

	if err := target.Clear(ctx); err != nil {
		return err
	}
	printSuccess("Cleared cached shapes")
	printDetail("%s", where)
	return nil
}
