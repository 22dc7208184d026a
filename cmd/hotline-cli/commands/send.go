package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/hotline-go/hotline/pkg/config"
	"github.com/spf13/cobra"
)

var sendFlags *connectionFlags

var sendCmd = &cobra.Command{
	Use:   "send <user-id> <message>",
	Short: "Send an instant message to a user and exit",
	Args:  cobra.ExactArgs(2),
	RunE:  runSend,
}

func init() {
	sendFlags = addConnectionFlags(sendCmd)
}

func runSend(cmd *cobra.Command, args []string) error {
	userID, err := strconv.ParseUint(args[0], 10, 16)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", args[0], err)
	}

	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}
	store, err := newCredentialsStore()
	if err != nil {
		return err
	}
	opts, err := resolveOptions(sendFlags, cfg, store)
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

	if err := s.SendInstantMessage(uint16(userID), args[1]); err != nil {
		return err
	}

	fmt.Println("sent")
	return nil
}
