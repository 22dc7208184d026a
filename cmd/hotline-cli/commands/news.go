package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hotline-go/hotline/internal/cli/output"
	"github.com/hotline-go/hotline/pkg/config"
	"github.com/spf13/cobra"
)

var newsFlags *connectionFlags

var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Browse and post to the news tree",
}

var newsListCmd = &cobra.Command{
	Use:   "list [path]",
	Short: "List categories and articles at a news path",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runNewsList,
}

var newsReadCmd = &cobra.Command{
	Use:   "read <path> <article-id>",
	Short: "Print the body of a news article",
	Args:  cobra.ExactArgs(2),
	RunE:  runNewsRead,
}

var newsPostCmd = &cobra.Command{
	Use:   "post <path> <title> <body>",
	Short: "Post a new article in a news category",
	Args:  cobra.ExactArgs(3),
	RunE:  runNewsPost,
}

func init() {
	newsFlags = addConnectionFlags(newsCmd)
	newsCmd.AddCommand(newsListCmd)
	newsCmd.AddCommand(newsReadCmd)
	newsCmd.AddCommand(newsPostCmd)
}

func newsPathArg(arg string) []string {
	if arg == "" || arg == "/" {
		return nil
	}
	return strings.Split(strings.Trim(arg, "/"), "/")
}

type categoryRow struct {
	name     string
	kind     string
	children string
}

type categoryTable []categoryRow

func (rows categoryTable) Headers() []string { return []string{"Name", "Type", "Children"} }

func (rows categoryTable) Rows() [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.name, r.kind, r.children})
	}
	return out
}

func runNewsList(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}
	store, err := newCredentialsStore()
	if err != nil {
		return err
	}
	opts, err := resolveOptions(newsFlags, cfg, store)
	if err != nil {
		return err
	}

	var path []string
	if len(args) == 1 {
		path = newsPathArg(args[0])
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

	categories, err := s.GetNewsCategoryList(path)
	if err != nil {
		return err
	}

	rows := make(categoryTable, 0, len(categories))
	for _, c := range categories {
		kind := "category"
		children := "-"
		if c.IsBundle {
			kind = "bundle"
			children = strconv.Itoa(int(c.ChildCount))
		}
		rows = append(rows, categoryRow{name: c.Name, kind: kind, children: children})
	}
	return output.PrintTable(cmd.OutOrStdout(), rows)
}

func runNewsRead(cmd *cobra.Command, args []string) error {
	articleID, err := parseUint32(args[1])
	if err != nil {
		return fmt.Errorf("invalid article id %q: %w", args[1], err)
	}

	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}
	store, err := newCredentialsStore()
	if err != nil {
		return err
	}
	opts, err := resolveOptions(newsFlags, cfg, store)
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

	text, err := s.GetNewsArticleData(newsPathArg(args[0]), articleID)
	if err != nil {
		return err
	}

	fmt.Println(text)
	return nil
}

func runNewsPost(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}
	store, err := newCredentialsStore()
	if err != nil {
		return err
	}
	opts, err := resolveOptions(newsFlags, cfg, store)
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

	if err := s.PostNewsArticle(newsPathArg(args[0]), args[1], args[2]); err != nil {
		return err
	}

	fmt.Println("posted")
	return nil
}
