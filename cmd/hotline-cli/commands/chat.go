package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/hotline-go/hotline/pkg/config"
	"github.com/spf13/cobra"
)

var chatFlags *connectionFlags
var chatAnnounce bool

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Send a line to the public chat room and exit",
	Args:  cobra.ExactArgs(1),
	RunE:  runChat,
}

func init() {
	chatFlags = addConnectionFlags(chatCmd)
	chatCmd.Flags().BoolVar(&chatAnnounce, "announce", false, "send as a server-wide announcement")
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}
	store, err := newCredentialsStore()
	if err != nil {
		return err
	}
	opts, err := resolveOptions(chatFlags, cfg, store)
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

	if err := s.SendChat(args[0], chatAnnounce); err != nil {
		return err
	}

	fmt.Println("sent")
	return nil
}
