package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/simonhull/imagescore"
)

type readResult struct {
	Path   string             `json:"path"`
	Fields []imagescore.Field `json:"fields"`
	Score  *float64           `json:"aesthetic_score,omitempty"`
}

func newReadCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "read <file>",
		Short: "List every metadata field of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			fields, err := imagescore.ReadMetadataContext(cmd.Context(), path)
			if err != nil {
				return err
			}
			ctx.loggerValue().Debug("metadata read", "path", path, "fields", len(fields))

			result := readResult{Path: path, Fields: fields}
			if score, ok := imagescore.ExtractScore(fields); ok {
				result.Score = &score
			}
			if result.Fields == nil {
				result.Fields = []imagescore.Field{}
			}

			if ctx.wantJSON(jsonOutput) {
				return writeJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			if len(fields) == 0 {
				fmt.Fprintf(out, "%s: no metadata fields\n", path)
				return nil
			}

			headers := []string{"Section", "Tag", "Value"}
			rows := make([][]string, 0, len(fields))
			for _, f := range fields {
				rows = append(rows, []string{f.Section.String(), f.Tag, f.Value})
			}
			if !isTerminal(out) {
				fmt.Fprint(out, renderTSV(headers, rows))
				return nil
			}
			fmt.Fprintln(out, renderTable(headers, rows, nil))
			if result.Score != nil {
				fmt.Fprintf(out, "Aesthetic score: %s\n", formatScore(*result.Score))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print fields as JSON")
	return cmd
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
