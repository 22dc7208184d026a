package commands

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hotline-go/hotline/internal/logger"
	"github.com/hotline-go/hotline/pkg/config"
	"github.com/hotline-go/hotline/pkg/hotline"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var connectFlags *connectionFlags

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Open an interactive session: chat, instant messages, and user list",
	Long: `Open an interactive session on a server. Lines typed at the prompt are
sent as public chat. Lines starting with /msg <user-id> <text> send an
instant message; /who prints the current user list; /quit disconnects.`,
	RunE: runConnect,
}

func init() {
	connectFlags = addConnectionFlags(connectCmd)
}

func runConnect(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}
	if err := InitLogger(cfg); err != nil {
		return err
	}
	store, err := newCredentialsStore()
	if err != nil {
		return err
	}
	opts, err := resolveOptions(connectFlags, cfg, store)
	if err != nil {
		return err
	}

	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		opts.Metrics = hotline.NewMetrics(reg)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		addr := fmt.Sprintf("127.0.0.1:%d", cfg.Metrics.Port)
		srv := &http.Server{Addr: addr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Warn("metrics server stopped", logger.Err(err))
			}
		}()
		defer srv.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	s, err := connectSession(ctx, opts)
	cancel()
	if err != nil {
		return err
	}
	defer s.Disconnect()

	fmt.Printf("connected to %s as %s\n", opts.Address, opts.DisplayName)

	users := make(map[uint16]string)
	done := make(chan struct{})

	go func() {
		for ev := range s.Events() {
			if handleCommonEvent(s, ev) {
				continue
			}
			switch ev.Type {
			case hotline.EventStatusChanged:
				if ev.Status == hotline.StatusDisconnected || ev.Status == hotline.StatusFailed {
					close(done)
					return
				}
			case hotline.EventChatMessage:
				fmt.Printf("%s: %s\n", ev.Chat.UserName, ev.Chat.Text)
			case hotline.EventPrivateMessage:
				fmt.Printf("[private from %d] %s\n", ev.Private.UserID, ev.Private.Text)
			case hotline.EventServerMessage:
				fmt.Printf("*** %s\n", ev.Server.Text)
			case hotline.EventNewMessageBoardPost:
				fmt.Printf("*** new message board post\n")
			case hotline.EventUserJoined:
				users[ev.UserJoined.UserID] = ev.UserJoined.UserName
				fmt.Printf("*** %s joined\n", ev.UserJoined.UserName)
			case hotline.EventUserChanged:
				users[ev.UserChanged.UserID] = ev.UserChanged.UserName
			case hotline.EventUserLeft:
				name := users[ev.UserLeft.UserID]
				delete(users, ev.UserLeft.UserID)
				fmt.Printf("*** %s left\n", name)
			}
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := handleConnectLine(s, line, users); err != nil {
			if err == errQuitSession {
				break
			}
			PrintErr("%v", err)
		}
	}

	s.Disconnect()
	<-done
	return nil
}

var errQuitSession = fmt.Errorf("quit")

func handleConnectLine(s *hotline.Session, line string, users map[uint16]string) error {
	switch {
	case line == "/quit":
		return errQuitSession
	case line == "/who":
		for id, name := range users {
			fmt.Printf("%d\t%s\n", id, name)
		}
		return nil
	case strings.HasPrefix(line, "/msg "):
		rest := strings.TrimPrefix(line, "/msg ")
		parts := strings.SplitN(rest, " ", 2)
		if len(parts) != 2 {
			return fmt.Errorf("usage: /msg <user-id> <text>")
		}
		id, err := strconv.ParseUint(parts[0], 10, 16)
		if err != nil {
			return fmt.Errorf("invalid user id %q: %w", parts[0], err)
		}
		return s.SendInstantMessage(uint16(id), parts[1])
	case strings.HasPrefix(line, "/"):
		return fmt.Errorf("unknown command: %s", line)
	default:
		if err := s.SendChat(line, false); err != nil {
			logger.Warn("send chat failed", logger.Err(err))
			return err
		}
		return nil
	}
}
