package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hotline-go/hotline/pkg/config"
	"github.com/spf13/cobra"
)

var getFlags *connectionFlags
var getOutputPath string

var getCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Download a file from the server",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	getFlags = addConnectionFlags(getCmd)
	getCmd.Flags().StringVarP(&getOutputPath, "output", "o", "", "local destination (default: the download directory from config, same base name)")
}

func runGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}
	store, err := newCredentialsStore()
	if err != nil {
		return err
	}
	opts, err := resolveOptions(getFlags, cfg, store)
	if err != nil {
		return err
	}

	remote := strings.Split(strings.Trim(args[0], "/"), "/")

	dest := getOutputPath
	if dest == "" {
		dest = filepath.Join(cfg.Transfer.DownloadDir, remote[len(remote)-1])
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout+5*time.Second)
	defer cancel()

	s, err := connectSession(ctx, opts)
	if err != nil {
		return err
	}
	defer s.Disconnect()

	go func() {
		for {
			select {
			case ev := <-s.Events():
				handleCommonEvent(s, ev)
			case <-ctx.Done():
				return
			}
		}
	}()

	lastPct := -1
	data, err := s.DownloadFile(remote, int64(cfg.Transfer.MaxFileSize), func(done, total int64) {
		if total <= 0 {
			return
		}
		pct := int(done * 100 / total)
		if pct != lastPct {
			lastPct = pct
			fmt.Printf("\r%s: %d%%", remote[len(remote)-1], pct)
		}
	})
	if err != nil {
		return err
	}
	fmt.Println()

	if limit := cfg.Transfer.MaxFileSize; limit > 0 && uint64(len(data)) > limit.Uint64() {
		return fmt.Errorf("%s is %d bytes, over the max_file_size limit of %s", remote[len(remote)-1], len(data), limit)
	}

	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}

	fmt.Printf("saved %s (%d bytes)\n", dest, len(data))
	return nil
}
