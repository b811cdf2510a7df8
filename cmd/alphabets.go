package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/eykd/mkpasswd-go/alphabet"
	"github.com/spf13/cobra"
)

// AlphabetInfo describes one catalog entry.
type AlphabetInfo struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Size        int     `json:"size"`
	BitsPerChar float64 `json:"bits_per_char"`
	Characters  string  `json:"characters"`
}

// alphabetsOutput is the top-level JSON structure for the alphabets command.
type alphabetsOutput struct {
	Alphabets []AlphabetInfo `json:"alphabets"`
}

// NewAlphabetsCmd creates the alphabets command listing the catalog.
func NewAlphabetsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:          "alphabets",
		Short:        "List the predefined alphabets",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			infos := listAlphabets()

			if jsonOutput {
				writeJSON(cmd.OutOrStdout(), &alphabetsOutput{Alphabets: infos})
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FLAG\tSIZE\tBITS/CHAR\tDESCRIPTION")
			for _, info := range infos {
				fmt.Fprintf(tw, "--%s\t%d\t%.2f\t%s\n", info.Name, info.Size, info.BitsPerChar, info.Description)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")

	return cmd
}

func listAlphabets() []AlphabetInfo {
	entries := alphabet.Catalog()
	infos := make([]AlphabetInfo, len(entries))
	for i, e := range entries {
		set := e.Set()
		infos[i] = AlphabetInfo{
			Name:        e.Name,
			Description: e.Description,
			Size:        set.Len(),
			BitsPerChar: set.EntropyBits(1),
			Characters:  set.String(),
		}
	}
	return infos
}
