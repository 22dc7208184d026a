package commands

import (
	"fmt"

	"github.com/hotline-go/hotline/internal/cli/credentials"
	"github.com/hotline-go/hotline/internal/cli/output"
	"github.com/spf13/cobra"
)

var bookmarkCmd = &cobra.Command{
	Use:   "bookmark",
	Short: "Manage saved server bookmarks",
}

var bookmarkAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Save a bookmark",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookmarkAdd,
}

var bookmarkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved bookmarks",
	RunE:  runBookmarkList,
}

var bookmarkUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the default bookmark",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookmarkUse,
}

var bookmarkRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Delete a bookmark",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookmarkRemove,
}

var (
	bookmarkAddAddress  string
	bookmarkAddPort     uint16
	bookmarkAddLogin    string
	bookmarkAddPassword string
	bookmarkAddIcon     uint16
	bookmarkAddDefault  bool
)

func init() {
	bookmarkAddCmd.Flags().StringVar(&bookmarkAddAddress, "address", "", "server address (required)")
	bookmarkAddCmd.Flags().Uint16Var(&bookmarkAddPort, "port", 5500, "server port")
	bookmarkAddCmd.Flags().StringVar(&bookmarkAddLogin, "login", "", "account login")
	bookmarkAddCmd.Flags().StringVar(&bookmarkAddPassword, "password", "", "account password")
	bookmarkAddCmd.Flags().Uint16Var(&bookmarkAddIcon, "icon", 0, "icon id")
	bookmarkAddCmd.Flags().BoolVar(&bookmarkAddDefault, "default", false, "make this the default bookmark")
	_ = bookmarkAddCmd.MarkFlagRequired("address")

	bookmarkCmd.AddCommand(bookmarkAddCmd)
	bookmarkCmd.AddCommand(bookmarkListCmd)
	bookmarkCmd.AddCommand(bookmarkUseCmd)
	bookmarkCmd.AddCommand(bookmarkRemoveCmd)
}

type bookmarkRow struct {
	name      string
	b         *credentials.Bookmark
	isDefault bool
}

type bookmarkTable []bookmarkRow

func (rows bookmarkTable) Headers() []string {
	return []string{"Name", "Address", "Login", "Default"}
}

func (rows bookmarkTable) Rows() [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		def := ""
		if r.isDefault {
			def = "*"
		}
		login := r.b.Login
		if login == "" {
			login = "(guest)"
		}
		out = append(out, []string{r.name, fmt.Sprintf("%s:%d", r.b.Address, r.b.Port), login, def})
	}
	return out
}

func runBookmarkAdd(cmd *cobra.Command, args []string) error {
	name := args[0]
	store, err := credentials.NewStore()
	if err != nil {
		return err
	}

	b := &credentials.Bookmark{
		Name:     name,
		Address:  bookmarkAddAddress,
		Port:     bookmarkAddPort,
		Login:    bookmarkAddLogin,
		Password: bookmarkAddPassword,
		IconID:   bookmarkAddIcon,
	}
	if err := store.SetBookmark(name, b); err != nil {
		return err
	}
	if bookmarkAddDefault {
		if err := store.UseBookmark(name); err != nil {
			return err
		}
	}

	fmt.Printf("Saved bookmark %q (%s:%d)\n", name, b.Address, b.Port)
	return nil
}

func runBookmarkList(cmd *cobra.Command, args []string) error {
	store, err := credentials.NewStore()
	if err != nil {
		return err
	}

	names := store.ListBookmarks()
	defaultName := store.GetDefaultBookmarkName()

	rows := make(bookmarkTable, 0, len(names))
	for _, name := range names {
		b, err := store.GetBookmark(name)
		if err != nil {
			return err
		}
		rows = append(rows, bookmarkRow{name: name, b: b, isDefault: name == defaultName})
	}

	return output.PrintTable(cmd.OutOrStdout(), rows)
}

func runBookmarkUse(cmd *cobra.Command, args []string) error {
	store, err := credentials.NewStore()
	if err != nil {
		return err
	}
	if err := store.UseBookmark(args[0]); err != nil {
		return err
	}
	fmt.Printf("Default bookmark set to %q\n", args[0])
	return nil
}

func runBookmarkRemove(cmd *cobra.Command, args []string) error {
	store, err := credentials.NewStore()
	if err != nil {
		return err
	}
	if err := store.DeleteBookmark(args[0]); err != nil {
		return err
	}
	fmt.Printf("Removed bookmark %q\n", args[0])
	return nil
}
