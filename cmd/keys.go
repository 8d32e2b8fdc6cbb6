package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/spf13/cobra"

	"github.com/zjrosen/keytrain/internal/keys"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Print the key binding reference",
	Long: `Print the key binding reference.

Lists the modal commands the interpreter understands, grouped by kind,
followed by the application control chords.`,
	RunE: runKeys,
}

func init() {
	rootCmd.AddCommand(keysCmd)
}

// keyGroup is one section of the reference table.
type keyGroup struct {
	name    string
	entries [][2]string
}

var keyReference = []keyGroup{
	{
		name: "Modes",
		entries: [][2]string{
			{"i a", "insert before / after the cursor"},
			{"I A", "insert at line start / line end"},
			{"o O", "open a line below / above"},
			{"<escape>", "return to Normal mode, clear pending state"},
		},
	},
	{
		name: "Motions",
		entries: [][2]string{
			{"h l", "left / right"},
			{"j k", "down / up"},
			{"0 $", "line start / line end"},
			{"w e b", "word forward / word end / word back"},
			{"W E B", "WORD forward / WORD end / WORD back"},
		},
	},
	{
		name: "Operators",
		entries: [][2]string{
			{"d{motion}", "delete"},
			{"y{motion}", "yank"},
			{"c{motion}", "change (delete, then Insert)"},
			{"dd yy cc", "operate on the whole line"},
			{"D C Y", "operate from cursor to end of line"},
			{"r{motion}", "cut (yank to the clipboard, then delete)"},
		},
	},
	{
		name: "Text objects",
		entries: [][2]string{
			{"iw aw", "inner / around word"},
			{"iW aW", "inner / around WORD"},
		},
	},
	{
		name: "Find",
		entries: [][2]string{
			{"f{char} F{char}", "find forward / backward"},
			{"t{char} T{char}", "till forward / backward"},
			{"; ,", "repeat find / repeat inverted"},
		},
	},
	{
		name: "Clipboard",
		entries: [][2]string{
			{"p P", "paste after / before"},
		},
	},
	{
		name: "Counts",
		entries: [][2]string{
			{"[1-9][0-9]*", "repeat the next motion or operator"},
		},
	},
}

func runKeys(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	for _, g := range keyReference {
		fmt.Fprintln(out, statsHeaderStyle.Render(g.name))
		for _, e := range g.entries {
			fmt.Fprintf(out, "  %-18s %s\n", e[0], e[1])
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, statsHeaderStyle.Render("Controls"))
	km := keys.DefaultKeyMap()
	for _, b := range []key.Binding{km.ToggleSession, km.ResetBuffer, km.Help, km.Quit} {
		fmt.Fprintf(out, "  %-18s %s\n", b.Help().Key, b.Help().Desc)
	}
	return nil
}
