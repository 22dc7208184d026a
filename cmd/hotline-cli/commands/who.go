package commands

import (
	"context"
	"strconv"
	"time"

	"github.com/hotline-go/hotline/internal/cli/output"
	"github.com/hotline-go/hotline/pkg/config"
	"github.com/hotline-go/hotline/pkg/hotline"
	"github.com/spf13/cobra"
)

var whoFlags *connectionFlags

var whoCmd = &cobra.Command{
	Use:   "who",
	Short: "List users currently on the server",
	RunE:  runWho,
}

func init() {
	whoFlags = addConnectionFlags(whoCmd)
}

type userRow struct {
	id   uint16
	name string
	icon uint16
}

type userTable []userRow

func (rows userTable) Headers() []string { return []string{"ID", "Name", "Icon"} }

func (rows userTable) Rows() [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{strconv.Itoa(int(r.id)), r.name, strconv.Itoa(int(r.icon))})
	}
	return out
}

func runWho(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}
	store, err := newCredentialsStore()
	if err != nil {
		return err
	}
	opts, err := resolveOptions(whoFlags, cfg, store)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout+5*time.Second)
	defer cancel()

	s, err := connectSession(ctx, opts)
	if err != nil {
		return err
	}
	defer s.Disconnect()

	users := make(map[uint16]userRow)
	deadline := time.After(2 * time.Second)

collect:
	for {
		select {
		case ev := <-s.Events():
			if handleCommonEvent(s, ev) {
				continue
			}
			switch ev.Type {
			case hotline.EventUserJoined:
				users[ev.UserJoined.UserID] = userRow{id: ev.UserJoined.UserID, name: ev.UserJoined.UserName, icon: ev.UserJoined.IconID}
			case hotline.EventUserLeft:
				delete(users, ev.UserLeft.UserID)
			}
		case <-deadline:
			break collect
		case <-ctx.Done():
			break collect
		}
	}

	rows := make(userTable, 0, len(users))
	for _, u := range users {
		rows = append(rows, u)
	}
	return output.PrintTable(cmd.OutOrStdout(), rows)
}
