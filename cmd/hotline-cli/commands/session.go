package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hotline-go/hotline/internal/cli/credentials"
	"github.com/hotline-go/hotline/pkg/config"
	"github.com/hotline-go/hotline/pkg/hotline"
	"github.com/spf13/cobra"
)

// connectionFlags are the flags shared by every command that opens a
// session: an explicit address, or a saved bookmark, with individual
// overrides for each field a bookmark carries.
type connectionFlags struct {
	address     string
	port        uint16
	login       string
	password    string
	displayName string
	iconID      uint16
	bookmark    string
}

func addConnectionFlags(cmd *cobra.Command) *connectionFlags {
	f := &connectionFlags{}
	cmd.Flags().StringVar(&f.address, "address", "", "server address (host or host:port)")
	cmd.Flags().Uint16Var(&f.port, "port", 0, "server port")
	cmd.Flags().StringVar(&f.login, "login", "", "account login (blank for guest)")
	cmd.Flags().StringVar(&f.password, "password", "", "account password")
	cmd.Flags().StringVar(&f.displayName, "name", "", "display name")
	cmd.Flags().Uint16Var(&f.iconID, "icon", 0, "icon id")
	cmd.Flags().StringVar(&f.bookmark, "bookmark", "", "use a saved bookmark instead of --address")
	return f
}

// resolveOptions merges connection flags, a saved bookmark, and config
// defaults into a hotline.Options, in that order of precedence.
func resolveOptions(f *connectionFlags, cfg *config.Config, store *credentials.Store) (hotline.Options, error) {
	opts := hotline.Options{
		DisplayName:       cfg.Connection.DisplayName,
		ConnectTimeout:    cfg.Connection.ConnectTimeout,
		ReplyTimeout:      cfg.Connection.ReplyTimeout,
		KeepAliveInterval: cfg.Connection.KeepAliveInterval,
		IconID:            cfg.Connection.IconID,
		Port:              cfg.Connection.DefaultPort,
	}

	bookmarkName := f.bookmark
	if bookmarkName == "" && f.address == "" {
		if b, err := store.GetDefaultBookmark(); err == nil {
			applyBookmark(&opts, b)
		}
	} else if bookmarkName != "" {
		b, err := store.GetBookmark(bookmarkName)
		if err != nil {
			return hotline.Options{}, fmt.Errorf("bookmark %q: %w", bookmarkName, err)
		}
		applyBookmark(&opts, b)
	}

	if f.address != "" {
		host, port, err := splitHostPort(f.address)
		if err != nil {
			return hotline.Options{}, err
		}
		opts.Address = host
		if port != 0 {
			opts.Port = port
		}
	}
	if f.port != 0 {
		opts.Port = f.port
	}
	if f.login != "" {
		opts.Login = f.login
	}
	if f.password != "" {
		opts.Password = f.password
	}
	if f.displayName != "" {
		opts.DisplayName = f.displayName
	}
	if f.iconID != 0 {
		opts.IconID = f.iconID
	}

	if opts.Address == "" {
		return hotline.Options{}, fmt.Errorf("no server address given: pass --address, --bookmark, or set a default bookmark")
	}

	return opts, nil
}

func applyBookmark(opts *hotline.Options, b *credentials.Bookmark) {
	opts.Address = b.Address
	if b.Port != 0 {
		opts.Port = b.Port
	}
	opts.Login = b.Login
	opts.Password = b.Password
	if b.IconID != 0 {
		opts.IconID = b.IconID
	}
}

func splitHostPort(addr string) (string, uint16, error) {
	host, portStr, ok := strings.Cut(addr, ":")
	if !ok {
		return addr, 0, nil
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return "", 0, fmt.Errorf("invalid port in address %q: %w", addr, err)
	}
	return host, uint16(port), nil
}

// connectSession opens a session and completes the handshake and login.
// The caller owns the returned session, must drain Events() itself (using
// handleCommonEvent for the agreement prompt), and must call Disconnect
// when done.
func connectSession(ctx context.Context, opts hotline.Options) (*hotline.Session, error) {
	s, err := hotline.NewSession(opts)
	if err != nil {
		return nil, err
	}
	if err := s.Connect(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// handleCommonEvent answers the server's use agreement on behalf of every
// command's event loop, since a fresh login frequently carries one before
// any command-specific events arrive. It reports whether it consumed ev.
func handleCommonEvent(s *hotline.Session, ev hotline.Event) bool {
	if ev.Type != hotline.EventAgreementRequired {
		return false
	}
	go func() {
		if err := s.AcceptAgreement(); err != nil {
			PrintErr("failed to accept server agreement: %v", err)
		}
	}()
	return true
}
