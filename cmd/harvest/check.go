package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ivoa/adsharvest/internal/config"
	"github.com/ivoa/adsharvest/internal/localmeta"
	"github.com/ivoa/adsharvest/internal/pdfcheck"
	"github.com/ivoa/adsharvest/internal/record"
)

var (
	checkRemote    bool
	checkPDF       bool
	checkRepoURL   string
	checkUseCache  bool
	checkCachePath string
	checkNotesFile string
	checkArxivFile string
	checkOverrides string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify harvest inputs",
	Long: `Verify harvest inputs: the arXiv id map, the notes list and the
override tables. With --remote the repository itself is walked and RECs
without an arXiv id are reported; --pdf additionally downloads every
document's PDF and verifies it is readable.

Examples:
  harvest check
  harvest check --remote --cache
  harvest check --pdf --cache`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkRemote, "remote", false, "Also walk the repository and check harvested metadata")
	checkCmd.Flags().BoolVar(&checkPDF, "pdf", false, "Also download and verify PDF links (implies --remote)")
	checkCmd.Flags().StringVarP(&checkRepoURL, "repo-url", "r", "", "Document repository URL (default "+config.DefaultRepoURL+")")
	checkCmd.Flags().BoolVarP(&checkUseCache, "cache", "C", false, "Use cached copies of fetched pages (or create them)")
	checkCmd.Flags().StringVar(&checkCachePath, "cache-path", "", "Page cache location (default "+config.DefaultCachePath+")")
	checkCmd.Flags().StringVar(&checkNotesFile, "notes-file", "published_notes.txt", "List of note URLs cleared for publication")
	checkCmd.Flags().StringVar(&checkArxivFile, "arxiv-file", "arXiv_ids.txt", "Short-name to arXiv id map")
	checkCmd.Flags().StringVar(&checkOverrides, "overrides", "", "YAML file extending the built-in override tables")
}

// CheckResult is the JSON output for the check command.
type CheckResult struct {
	Status    string       `json:"status"`
	Documents int          `json:"documents"`
	Issues    []CheckIssue `json:"issues"`
}

// CheckIssue represents a single issue found during check.
type CheckIssue struct {
	Type   string `json:"type"`
	URL    string `json:"url,omitempty"`
	Detail string `json:"detail,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	ov, err := localmeta.LoadOverrides(checkOverrides)
	if err != nil {
		exitWithError(ExitConfigError, "loading overrides: %v", err)
	}
	lm, err := localmeta.Load(checkArxivFile)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	var issues []CheckIssue

	noteURLs, err := localmeta.ReadNotesList(checkNotesFile)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	for _, noteURL := range noteURLs {
		if _, err := url.ParseRequestURI(noteURL); err != nil {
			issues = append(issues, CheckIssue{
				Type:   "bad_note_url",
				URL:    noteURL,
				Detail: err.Error(),
			})
		}
	}

	documents := 0
	if checkRemote || checkPDF {
		fetcher, cleanup, err := buildFetcher(cfg, checkUseCache, checkCachePath)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		defer cleanup()

		repoURL := cfg.ResolveRepoURL(checkRepoURL)
		docs, err := harvestDocuments(ctx, fetcher, repoURL, checkNotesFile, lm, ov)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		documents = len(docs)

		for _, doc := range docs {
			// RECs are supposed to carry arXiv ids; this is advisory
			// rather than fatal so a missing entry doesn't block record
			// generation.
			if doc.Type == record.TypeSpec && doc.ArXivID == "" {
				issues = append(issues, CheckIssue{
					Type:   "missing_arxiv_id",
					URL:    doc.URL,
					Detail: "REC without an entry in the arXiv id map",
				})
			}
			if !checkPDF {
				continue
			}
			if doc.PDF == "" {
				issues = append(issues, CheckIssue{
					Type: "missing_pdf",
					URL:  doc.URL,
				})
				continue
			}
			body, err := fetcher.Get(ctx, doc.PDF)
			if err != nil {
				issues = append(issues, CheckIssue{
					Type:   "bad_pdf",
					URL:    doc.PDF,
					Detail: err.Error(),
				})
				continue
			}
			if _, err := pdfcheck.Verify(body); err != nil {
				issues = append(issues, CheckIssue{
					Type:   "bad_pdf",
					URL:    doc.PDF,
					Detail: err.Error(),
				})
			}
		}
	}

	status := "ok"
	if len(issues) > 0 {
		status = "issues"
	}
	result := CheckResult{Status: status, Documents: documents, Issues: issues}

	if humanOutput {
		fmt.Printf("status: %s (%d documents)\n", status, documents)
		for _, issue := range issues {
			fmt.Printf("  %s %s", issue.Type, issue.URL)
			if issue.Detail != "" {
				fmt.Printf(": %s", issue.Detail)
			}
			fmt.Println()
		}
		return nil
	}
	return outputJSON(result)
}
