package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tkarvinen/libris/googlebooks"
	"github.com/tkarvinen/libris/internal/config"
	"github.com/tkarvinen/libris/internal/fileutil"
	"github.com/tkarvinen/libris/internal/tui"
)

// SearchCmd represents the search command
type SearchCmd struct {
	Query     string `short:"q" help:"Raw search string (supports field prefixes like isbn: and intitle:)"`
	ISBN      string `help:"Search by ISBN"`
	Title     string `help:"Search by words in the title"`
	Author    string `help:"Search by author name"`
	Publisher string `help:"Search by publisher name"`
	Subject   string `help:"Search by subject category"`
	LCCN      string `help:"Search by Library of Congress Control Number"`
	OCLC      string `help:"Search by OCLC number"`

	MaxResults  int    `help:"Maximum number of results (default from config)"`
	StartIndex  int    `help:"First result position for pagination" default:"-1"`
	Lang        string `help:"Restrict results to a two-letter language code"`
	Projection  string `help:"Metadata projection" enum:",full,lite" default:""`
	PrintType   string `help:"Content category filter" enum:",all,books,magazines" default:""`
	Interactive bool   `short:"i" help:"Pick a result interactively"`
	CoverDir    string `help:"Download the cover of the picked (or first) result into this directory"`
}

// Run executes the search command.
func (s *SearchCmd) Run() error {
	query, err := s.buildQuery()
	if err != nil {
		return err
	}

	client := newClient()
	ctx := context.Background()

	slog.Debug("Searching Google Books", "query", query.Term())
	response, err := client.Search(ctx, query)
	if err != nil {
		if googlebooks.IsRateLimitError(err) {
			return fmt.Errorf("quota exhausted, try again later: %w", err)
		}
		return err
	}

	if outputJSON {
		return writeJSON(os.Stdout, response)
	}

	if s.Interactive {
		result, err := tui.SelectVolume(query.Term(), response.Items)
		if err != nil {
			return err
		}
		if result.Action != tui.ActionSelected {
			return nil
		}
		printVolume(os.Stdout, *result.Selection)
		return s.downloadCover(ctx, client, *result.Selection)
	}

	printVolumeList(os.Stdout, response)
	if len(response.Items) > 0 {
		return s.downloadCover(ctx, client, response.Items[0])
	}
	return nil
}

// buildQuery translates the parsed flags into a volume query. The raw
// --query flag seeds the term when present; field flags follow in a fixed
// order, each appended as a conjunctive predicate.
func (s *SearchCmd) buildQuery() (googlebooks.VolumeQuery, error) {
	type predicate struct {
		value string
		seed  func(string) googlebooks.VolumeQuery
		and   func(googlebooks.VolumeQuery, string) googlebooks.VolumeQuery
	}

	predicates := []predicate{
		{s.ISBN, googlebooks.ByISBN, googlebooks.VolumeQuery.AndISBN},
		{s.Title, googlebooks.ByTitle, googlebooks.VolumeQuery.AndTitle},
		{s.Author, googlebooks.ByAuthor, googlebooks.VolumeQuery.AndAuthor},
		{s.Publisher, googlebooks.ByPublisher, googlebooks.VolumeQuery.AndPublisher},
		{s.Subject, googlebooks.BySubject, googlebooks.VolumeQuery.AndSubject},
		{s.LCCN, googlebooks.ByLCCN, googlebooks.VolumeQuery.AndLCCN},
		{s.OCLC, googlebooks.ByOCLC, googlebooks.VolumeQuery.AndOCLC},
	}

	var query googlebooks.VolumeQuery
	var seeded bool

	if s.Query != "" {
		var err error
		query, err = googlebooks.NewQuery(s.Query)
		if err != nil {
			return googlebooks.VolumeQuery{}, err
		}
		seeded = true
	}

	for _, p := range predicates {
		if p.value == "" {
			continue
		}
		if seeded {
			query = p.and(query, p.value)
		} else {
			query = p.seed(p.value)
			seeded = true
		}
	}

	if !seeded {
		return googlebooks.VolumeQuery{}, fmt.Errorf("a search term is required (provide --query or one of the field flags)")
	}

	maxResults := s.MaxResults
	if maxResults == 0 {
		maxResults = config.MaxResults
	}
	if maxResults > 0 {
		query = query.WithMaxResults(maxResults)
	}
	if s.StartIndex >= 0 {
		query = query.WithStartIndex(s.StartIndex)
	}
	if s.Lang != "" {
		query = query.WithLangRestrict(s.Lang)
	}

	switch s.Projection {
	case "full":
		query = query.WithProjection(googlebooks.ProjectionFull)
	case "lite":
		query = query.WithProjection(googlebooks.ProjectionLite)
	}

	switch s.PrintType {
	case "all":
		query = query.WithPrintType(googlebooks.PrintTypeAll)
	case "books":
		query = query.WithPrintType(googlebooks.PrintTypeBooks)
	case "magazines":
		query = query.WithPrintType(googlebooks.PrintTypeMagazines)
	}

	return query, nil
}

func (s *SearchCmd) downloadCover(ctx context.Context, client *googlebooks.Client, volume googlebooks.Volume) error {
	if s.CoverDir == "" {
		return nil
	}

	coverURL := volume.CoverURL()
	if coverURL == "" {
		slog.Warn("No cover image available", "volume", volume.ID)
		return nil
	}

	filename := fileutil.SanitizeFilename(volume.VolumeInfo.Title) + " - cover.jpg"
	savePath := filepath.Join(s.CoverDir, filename)

	if err := client.DownloadThumbnail(ctx, coverURL, savePath, 0); err != nil {
		return fmt.Errorf("downloading cover: %w", err)
	}

	slog.Info("Cover downloaded", "path", savePath)
	return nil
}
