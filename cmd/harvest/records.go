package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ivoa/adsharvest/internal/ads"
	"github.com/ivoa/adsharvest/internal/config"
	"github.com/ivoa/adsharvest/internal/fetch"
	"github.com/ivoa/adsharvest/internal/localmeta"
	"github.com/ivoa/adsharvest/internal/record"
)

var (
	recordsRepoURL      string
	recordsUseCache     bool
	recordsCachePath    string
	recordsADSToken     string
	recordsNotesFile    string
	recordsArxivFile    string
	recordsOverrides    string
	recordsShortNameMap string
	recordsOutput       string
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Harvest the whole repository and write ADS tagged records",
	Long: `Harvest the whole document repository and write ADS tagged records.

The index page decides which documents count as finished standards; the
notes file adds the notes cleared for publication. With an ADS token the
resulting bibcodes are checked against ADS first and only records ADS
does not already carry are written.

Examples:
  harvest records > records.txt
  harvest records --cache --shortname-map bibcodes.json
  harvest records --ads-token "$ADS_TOKEN" -o new-records.txt`,
	Args: cobra.NoArgs,
	RunE: runRecords,
}

func init() {
	rootCmd.AddCommand(recordsCmd)
	recordsCmd.Flags().StringVarP(&recordsRepoURL, "repo-url", "r", "", "Document repository URL (default "+config.DefaultRepoURL+")")
	recordsCmd.Flags().BoolVarP(&recordsUseCache, "cache", "C", false, "Use cached copies of fetched pages (or create them)")
	recordsCmd.Flags().StringVar(&recordsCachePath, "cache-path", "", "Page cache location (default "+config.DefaultCachePath+")")
	recordsCmd.Flags().StringVarP(&recordsADSToken, "ads-token", "a", "", "ADS access token to filter out records already in ADS")
	recordsCmd.Flags().StringVar(&recordsNotesFile, "notes-file", "published_notes.txt", "List of note URLs cleared for publication")
	recordsCmd.Flags().StringVar(&recordsArxivFile, "arxiv-file", "arXiv_ids.txt", "Short-name to arXiv id map")
	recordsCmd.Flags().StringVar(&recordsOverrides, "overrides", "", "YAML file extending the built-in override tables")
	recordsCmd.Flags().StringVar(&recordsShortNameMap, "shortname-map", "", "Also write a short-name to bibcodes JSON map to this path")
	recordsCmd.Flags().StringVarP(&recordsOutput, "output", "o", "", "Write records to this file instead of stdout")
}

func runRecords(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	ov, err := localmeta.LoadOverrides(recordsOverrides)
	if err != nil {
		exitWithError(ExitConfigError, "loading overrides: %v", err)
	}
	lm, err := localmeta.Load(recordsArxivFile)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	fetcher, cleanup, err := buildFetcher(cfg, recordsUseCache, recordsCachePath)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer cleanup()

	repoURL := cfg.ResolveRepoURL(recordsRepoURL)
	docs, err := harvestDocuments(ctx, fetcher, repoURL, recordsNotesFile, lm, ov)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	tables := ov.Tables()
	coll, err := record.NewCollection(docs, tables)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "\ndocument repository invalid, not generating records")
		os.Exit(ExitDataError)
	}

	// With a token, restrict output to what ADS does not already carry.
	var limitTo map[string]bool
	if token := cfg.ResolveToken(recordsADSToken); token != "" {
		bibcodes, err := coll.Bibcodes()
		if err != nil {
			exitWithError(ExitDataError, "%v", err)
		}
		unpublished, err := ads.NewClient(token).FilterUnpublished(ctx, bibcodes)
		if err != nil {
			exitWithError(ExitExternalError, "%v", err)
		}
		limitTo = make(map[string]bool, len(unpublished))
		for _, bibcode := range unpublished {
			limitTo[bibcode] = true
		}
	}

	out := os.Stdout
	if recordsOutput != "" {
		f, err := os.Create(recordsOutput)
		if err != nil {
			exitWithError(ExitError, "creating output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	for _, doc := range coll.Docs {
		bibcode, err := doc.Bibcode(tables)
		if err != nil {
			exitWithError(ExitDataError, "%v", err)
		}
		if limitTo != nil && !limitTo[bibcode] {
			continue
		}
		rec, err := doc.ADSRecord(tables)
		if err != nil {
			exitWithError(ExitDataError, "%v", err)
		}
		fmt.Fprintln(out, rec)
	}

	if recordsShortNameMap != "" {
		if err := writeShortNameMap(coll, ov, recordsShortNameMap); err != nil {
			exitWithError(ExitError, "%v", err)
		}
	}
	return nil
}

// buildFetcher assembles the fetcher, opening the page cache when asked
// to. The returned cleanup closes the cache.
func buildFetcher(cfg *config.Config, useCache bool, cachePath string) (*fetch.Fetcher, func(), error) {
	if !useCache {
		return fetch.New(), func() {}, nil
	}
	cache, err := fetch.OpenCache(cfg.ResolveCachePath(cachePath))
	if err != nil {
		return nil, nil, err
	}
	return fetch.New(fetch.WithCache(cache)), func() { cache.Close() }, nil
}

// writeShortNameMap writes the short-name to bibcodes mapping as JSON.
func writeShortNameMap(coll *record.Collection, ov *localmeta.Overrides, path string) error {
	byName, err := coll.ShortNames(func(url string) (string, error) {
		return localmeta.PathShortName(url, ov)
	})
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(byName, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding short-name map: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing short-name map: %w", err)
	}
	return nil
}
