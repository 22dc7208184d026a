package commands

import (
	"fmt"
	"strconv"

	"github.com/hotline-go/hotline/internal/cli/output"
	"github.com/hotline-go/hotline/pkg/config"
	"github.com/hotline-go/hotline/pkg/hotline"
	"github.com/spf13/cobra"
)

var (
	listHost string
	listPort uint16
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List servers published by a tracker",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listHost, "tracker", "", "tracker host (default: from config)")
	listCmd.Flags().Uint16Var(&listPort, "tracker-port", 0, "tracker port (default: from config)")
}

type trackerRow struct {
	name        string
	address     string
	users       uint16
	description string
}

type trackerTable []trackerRow

func (rows trackerTable) Headers() []string {
	return []string{"Name", "Address", "Users", "Description"}
}

func (rows trackerTable) Rows() [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.name, r.address, strconv.Itoa(int(r.users)), r.description})
	}
	return out
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	host := listHost
	if host == "" {
		host = cfg.Tracker.Host
	}
	port := listPort
	if port == 0 {
		port = cfg.Tracker.Port
	}
	if host == "" {
		return fmt.Errorf("no tracker host given: pass --tracker or set tracker.host in config")
	}

	listings, err := hotline.FetchTrackerListing(host, port, cfg.Tracker.Timeout)
	if err != nil {
		return err
	}

	rows := make(trackerTable, 0, len(listings))
	for _, l := range listings {
		rows = append(rows, trackerRow{
			name:        l.Name,
			address:     l.Address + ":" + strconv.Itoa(int(l.Port)),
			users:       l.UserCount,
			description: l.Description,
		})
	}
	return output.PrintTable(cmd.OutOrStdout(), rows)
}
