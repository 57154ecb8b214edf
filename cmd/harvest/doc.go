package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ivoa/adsharvest/internal/config"
	"github.com/ivoa/adsharvest/internal/localmeta"
	"github.com/ivoa/adsharvest/internal/record"
)

var (
	docUseCache  bool
	docCachePath string
	docArxivFile string
	docOverrides string
)

var docCmd = &cobra.Command{
	Use:   "doc <url>",
	Short: "Harvest a single document landing page",
	Long: `Harvest a single document landing page and print its record.

This is for testing and debugging only: identifier assignment depends on
the whole sorted collection, so the ivoadoc id (and in clash situations
the bibcode) may differ from a full run.

Examples:
  harvest doc http://www.ivoa.net/documents/SAMP/20120411/
  harvest doc --human http://www.ivoa.net/documents/SAMP/20120411/`,
	Args: cobra.ExactArgs(1),
	RunE: runDoc,
}

func init() {
	rootCmd.AddCommand(docCmd)
	docCmd.Flags().BoolVarP(&docUseCache, "cache", "C", false, "Use cached copies of fetched pages (or create them)")
	docCmd.Flags().StringVar(&docCachePath, "cache-path", "", "Page cache location (default "+config.DefaultCachePath+")")
	docCmd.Flags().StringVar(&docArxivFile, "arxiv-file", "arXiv_ids.txt", "Short-name to arXiv id map")
	docCmd.Flags().StringVar(&docOverrides, "overrides", "", "YAML file extending the built-in override tables")
}

// DocResult is the JSON output for the doc command.
type DocResult struct {
	URL       string `json:"url"`
	Bibcode   string `json:"bibcode"`
	IvoaDocID string `json:"ivoadocId"`
	ShortName string `json:"shortName,omitempty"`
	Type      string `json:"type"`
	Record    string `json:"record"`
}

func runDoc(cmd *cobra.Command, args []string) error {
	url := args[0]

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	ov, err := localmeta.LoadOverrides(docOverrides)
	if err != nil {
		exitWithError(ExitConfigError, "loading overrides: %v", err)
	}
	lm, err := localmeta.Load(docArxivFile)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	fetcher, cleanup, err := buildFetcher(cfg, docUseCache, docCachePath)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer cleanup()

	doc, err := harvestOne(ctx, fetcher, url, lm, ov)
	if err != nil {
		exitWithError(ExitDataError, "in document %s: %v", url, err)
	}

	tables := ov.Tables()
	coll, err := record.NewCollection([]*record.Document{doc}, tables)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	doc = coll.Docs[0]

	bibcode, err := doc.Bibcode(tables)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	rec, err := doc.ADSRecord(tables)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	if humanOutput {
		fmt.Println(rec)
		return nil
	}

	result := DocResult{
		URL:       doc.URL,
		Bibcode:   bibcode,
		IvoaDocID: doc.IvoaDocID,
		Type:      doc.Type,
		Record:    rec,
	}
	if shortName, err := localmeta.GuessShortName(url, ov); err == nil {
		result.ShortName = shortName
	}
	return outputJSON(result)
}
