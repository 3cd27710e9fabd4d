package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dat-filter/internal/httputil"
	"github.com/pdiddy/dat-filter/internal/scrape"
	"github.com/pdiddy/dat-filter/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Scrape recommendation pages and print the extracted titles",
	Long: `Fetch runs the scrape stage alone: it downloads each source page, extracts
the recommended titles, and prints a per-source count. With --save, the result
is written to a YAML titles file that filter --titles-file can reuse, so the
matching stages can run offline.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("save", "", "write the scraped titles to this YAML file")
	addScrapeFlags(fetchCmd)

	rootCmd.AddCommand(fetchCmd)
}

// addScrapeFlags registers the flags shared by every command that scrapes.
func addScrapeFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("url", "u", nil, "recommendation page URL (repeatable)")
	cmd.Flags().String("sources-file", "", "YAML file listing recommendation page URLs")
	cmd.Flags().Bool("include-homebrew", false, "also fetch each source's /Homebrew variant")
	cmd.Flags().Bool("include-japan", false, "also fetch each source's /Japan variant")
	cmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	cmd.Flags().String("user-agent", "", "override the User-Agent header")
}

// collectSourceURLs merges the repeated --url flags with the sources file.
func collectSourceURLs(cmd *cobra.Command) ([]string, error) {
	urls, _ := cmd.Flags().GetStringArray("url")
	sourcesFile := stringSetting(cmd, "sources-file", "scrape.sources_file", "")
	if sourcesFile != "" {
		fromFile, err := scrape.ReadSourcesFile(sourcesFile)
		if err != nil {
			return nil, err
		}
		urls = append(urls, fromFile...)
	}
	return urls, nil
}

// scrapeConfig builds the scrape settings from flags and config.
func scrapeConfig(cmd *cobra.Command) types.ScrapeConfig {
	return types.ScrapeConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   durationSetting(cmd, "timeout", "http.timeout", types.DefaultTimeout),
			UserAgent: stringSetting(cmd, "user-agent", "http.user_agent", ""),
		},
		IncludeHomebrew: boolSetting(cmd, "include-homebrew", "scrape.include_homebrew"),
		IncludeJapan:    boolSetting(cmd, "include-japan", "scrape.include_japan"),
	}
}

func runFetch(cmd *cobra.Command, args []string) error {
	urls, err := collectSourceURLs(cmd)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("provide at least one --url or a --sources-file")
	}

	cfg := scrapeConfig(cmd)
	client := httputil.NewClient(cfg.HTTPConfig)
	expanded := scrape.ExpandVariants(urls, cfg.IncludeHomebrew, cfg.IncludeJapan)

	out := scrape.FetchAll(cmd.Context(), client, expanded, cfg, nil)

	for _, url := range expanded {
		if set, ok := out.BySource[url]; ok {
			fmt.Printf("%s: %d titles\n", url, len(set))
		} else {
			fmt.Printf("%s: fetch failed\n", url)
		}
	}
	fmt.Printf("total unique titles: %d\n", len(out.All))

	if save, _ := cmd.Flags().GetString("save"); save != "" {
		if err := scrape.WriteTitlesFile(save, out); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Saved titles to", save)
	}
	return nil
}
