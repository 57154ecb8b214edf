package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ivoa/adsharvest/internal/docrepo"
	"github.com/ivoa/adsharvest/internal/fetch"
	"github.com/ivoa/adsharvest/internal/localmeta"
	"github.com/ivoa/adsharvest/internal/record"
)

// harvestDocuments fetches and parses every finished document reachable
// from the index page, plus the manually curated notes list. A failure in
// one document is reported to stderr and the document skipped; an
// interrupt aborts the whole run.
func harvestDocuments(ctx context.Context, fetcher *fetch.Fetcher, repoURL, notesFile string, lm *localmeta.Metadata, ov *localmeta.Overrides) ([]*record.Document, error) {
	indexBody, err := fetcher.Get(ctx, repoURL)
	if err != nil {
		return nil, fmt.Errorf("fetching document index: %w", err)
	}
	urls, err := docrepo.ParseIndex(indexBody, repoURL)
	if err != nil {
		return nil, err
	}

	// Most notes are not pushed to ADS; the exec lists the ones it wants
	// published and the document coordinator maintains the file.
	noteURLs, err := localmeta.ReadNotesList(notesFile)
	if err != nil {
		return nil, err
	}
	urls = append(urls, noteURLs...)

	var docs []*record.Document
	for _, url := range urls {
		doc, err := harvestOne(ctx, fetcher, url, lm, ov)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			fmt.Fprintf(os.Stderr, "in document %s: %v\n", url, err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, ctx.Err()
}

// harvestOne fetches one landing page and builds its validated document.
func harvestOne(ctx context.Context, fetcher *fetch.Fetcher, url string, lm *localmeta.Metadata, ov *localmeta.Overrides) (*record.Document, error) {
	body, err := fetcher.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	raw, err := docrepo.ParseLandingPage(body, url, lm, ov)
	if err != nil {
		return nil, err
	}
	return record.NewDocument(raw)
}
