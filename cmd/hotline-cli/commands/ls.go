package commands

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/hotline-go/hotline/internal/bytesize"
	"github.com/hotline-go/hotline/internal/cli/output"
	"github.com/hotline-go/hotline/pkg/config"
	"github.com/hotline-go/hotline/pkg/hotline"
	"github.com/spf13/cobra"
)

var lsFlags *connectionFlags

var lsCmd = &cobra.Command{
	Use:   "ls [path]",
	Short: "List files and folders at a path on the server",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLs,
}

func init() {
	lsFlags = addConnectionFlags(lsCmd)
}

type fileRow struct {
	name  string
	size  uint32
	isDir bool
}

type fileTable []fileRow

func (rows fileTable) Headers() []string { return []string{"Name", "Size", "Type"} }

func (rows fileTable) Rows() [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		kind := "file"
		size := bytesize.ByteSize(r.size).String()
		if r.isDir {
			kind = "folder"
			size = "-"
		}
		out = append(out, []string{r.name, size, kind})
	}
	return out
}

func runLs(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}
	store, err := newCredentialsStore()
	if err != nil {
		return err
	}
	opts, err := resolveOptions(lsFlags, cfg, store)
	if err != nil {
		return err
	}

	var path []string
	if len(args) == 1 && args[0] != "" && args[0] != "/" {
		path = strings.Split(strings.Trim(args[0], "/"), "/")
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout+5*time.Second)
	defer cancel()

	s, err := connectSession(ctx, opts)
	if err != nil {
		return err
	}
	defer s.Disconnect()

	if err := s.GetFileNameList(path); err != nil {
		return err
	}

	for {
		select {
		case ev := <-s.Events():
			if handleCommonEvent(s, ev) {
				continue
			}
			if ev.Type == hotline.EventFileList {
				rows := make(fileTable, 0, len(ev.Files.Entries))
				for _, e := range ev.Files.Entries {
					rows = append(rows, fileRow{name: e.Name, size: e.Size, isDir: e.IsDir})
				}
				return output.PrintTable(cmd.OutOrStdout(), rows)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint32(v), err
}
