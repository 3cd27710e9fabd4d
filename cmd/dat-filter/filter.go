package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/dat-filter/internal/filter"
	"github.com/pdiddy/dat-filter/internal/match"
	"github.com/pdiddy/dat-filter/pkg/types"
)

var filterCmd = &cobra.Command{
	Use:   "filter [input] [output]",
	Short: "Filter a DAT catalog down to recommended games",
	Long: `Filter parses the input DAT, gathers recommended titles from the source
pages (or a saved titles file), and writes a new DAT containing only the best
matching release of each recommended game. Unmatched titles are reported in
per-source CSV files next to the output.

The output path defaults to the input path with a "_filtered" suffix.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runFilter,
}

func init() {
	filterCmd.Flags().String("titles-file", "", "reuse a titles file saved by fetch instead of scraping")
	filterCmd.Flags().IntP("threshold", "t", types.DefaultThreshold, "minimum similarity score (0-100) for automatic matches")
	filterCmd.Flags().Bool("review", false, "interactively review titles left unmatched")
	addScrapeFlags(filterCmd)

	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := ""
	if len(args) == 2 {
		output = args[1]
	}

	threshold := intSetting(cmd, "threshold", "match.threshold", types.DefaultThreshold)
	if threshold < 0 || threshold > 100 {
		return fmt.Errorf("threshold must be between 0 and 100, got %d", threshold)
	}

	titlesFile, _ := cmd.Flags().GetString("titles-file")
	urls, err := collectSourceURLs(cmd)
	if err != nil {
		return err
	}
	if titlesFile == "" && len(urls) == 0 {
		return fmt.Errorf("provide at least one --url, a --sources-file, or a --titles-file")
	}

	review := boolSetting(cmd, "review", "match.review")
	noColor, _ := cmd.Flags().GetBool("no-color")

	reviewThreshold := types.DefaultReviewThreshold
	if viper.IsSet("match.review_threshold") {
		reviewThreshold = viper.GetInt("match.review_threshold")
	}

	opts := filter.Options{
		InputPath:  input,
		OutputPath: output,
		SourceURLs: urls,
		TitlesFile: titlesFile,
		Scrape:     scrapeConfig(cmd),
		Match: types.MatchConfig{
			Threshold:       threshold,
			Review:          review,
			ReviewThreshold: reviewThreshold,
		},
		ShowProgress: isatty.IsTerminal(os.Stderr.Fd()),
		Version:      version,
	}
	if review {
		opts.Port = match.NewConsolePort(os.Stdin, os.Stdout, noColor)
	}

	_, err = filter.Run(cmd.Context(), opts)
	return err
}
