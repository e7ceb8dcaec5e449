package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/ersm/internal/game"
	"github.com/thoreinstein/ersm/internal/paths"
)

func init() {
	rootCmd.AddCommand(gamesCmd)
}

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List known game profiles",
	Long: `List the game profiles ersm can manage.

The builtin profiles cover the FromSoftware titles that share the save
layout. User profiles and overrides come from games.toml in the config
directory. The profile currently in effect is marked with an asterisk.`,
	Example: `  # List profiles
  ersm games

  # Work on a different game
  ersm list --game sekiro

  See Also: ersm status`,
	Args: cobra.NoArgs,
	RunE: runGames,
}

func runGames(_ *cobra.Command, _ []string) error {
	return runGamesWithWriter(os.Stdout)
}

func runGamesWithWriter(w io.Writer) error {
	reg, err := game.LoadRegistry(paths.GamesFile())
	if err != nil {
		return err
	}

	active := activeGameID()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  \tID\tNAME\tSAVE ROOT\n")
	for _, p := range reg.Profiles() {
		marker := " "
		if p.ID == active {
			marker = "*"
		}

		root, err := p.ResolveSaveRoot()
		if err != nil {
			root = color.New(color.FgHiBlack).Sprint("(not found)")
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", marker, color.GreenString(p.ID), p.Name, root)
	}
	return tw.Flush()
}
