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

var putFlags *connectionFlags
var putRemotePath string

var putCmd = &cobra.Command{
	Use:   "put <local-file>",
	Short: "Upload a file to the server",
	Args:  cobra.ExactArgs(1),
	RunE:  runPut,
}

func init() {
	putFlags = addConnectionFlags(putCmd)
	putCmd.Flags().StringVar(&putRemotePath, "remote-path", "", "destination folder on the server (default: root)")
}

func runPut(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}
	store, err := newCredentialsStore()
	if err != nil {
		return err
	}
	opts, err := resolveOptions(putFlags, cfg, store)
	if err != nil {
		return err
	}

	local := args[0]
	data, err := os.ReadFile(local)
	if err != nil {
		return fmt.Errorf("reading %s: %w", local, err)
	}

	var remote []string
	if putRemotePath != "" {
		remote = strings.Split(strings.Trim(putRemotePath, "/"), "/")
	}
	remote = append(remote, filepath.Base(local))

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
	err = s.UploadFile(remote, data, func(done, total int64) {
		if total <= 0 {
			return
		}
		pct := int(done * 100 / total)
		if pct != lastPct {
			lastPct = pct
			fmt.Printf("\r%s: %d%%", filepath.Base(local), pct)
		}
	})
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("uploaded %s (%d bytes)\n", local, len(data))
	return nil
}
