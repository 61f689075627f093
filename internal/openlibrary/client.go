package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"book-review/internal/apperror"
	"book-review/pkg/utils"

	"go.uber.org/zap"
)

const worksPrefix = "/works/"

// Client talks to the Open Library search and works endpoints to resolve a
// free-text (title, author) pair into a canonical catalog entry.
type Client struct {
	httpClient *http.Client
	baseURL    string
	coversURL  string
	log        *zap.Logger
}

func NewClient(config utils.OpenLibraryConfig, log *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: time.Duration(config.TimeoutSeconds) * time.Second},
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		coversURL:  strings.TrimRight(config.CoversURL, "/"),
		log:        log.With(zap.String("client", "openlibrary")),
	}
}

// Lookup resolves (title, author) to the catalog's canonical metadata.
// Returns apperror.ErrNotFound when the search has no results; the caller
// must not create a book in that case.
func (c *Client) Lookup(ctx context.Context, title, author string) (*Book, error) {
	params := url.Values{}
	params.Add("title", title)
	params.Add("author", author)

	searchURL := fmt.Sprintf("%s/search.json?%s", c.baseURL, params.Encode())

	var search searchResponse
	if err := c.getJSON(ctx, searchURL, &search); err != nil {
		return nil, fmt.Errorf("search %q by %q: %w", title, author, err)
	}

	if len(search.Docs) == 0 {
		c.log.Warn("No catalog results",
			zap.String("title", title),
			zap.String("author", author),
		)
		return nil, apperror.NotFoundMsg("No books found in Open Library search.")
	}

	doc := search.Docs[0]
	workID := strings.TrimPrefix(doc.Key, worksPrefix)

	workURL := fmt.Sprintf("%s/works/%s.json", c.baseURL, workID)

	var work workResponse
	if err := c.getJSON(ctx, workURL, &work); err != nil {
		return nil, fmt.Errorf("fetch work %s: %w", workID, err)
	}

	book := &Book{
		OpenLibraryID: workID,
		Title:         work.Title,
		Author:        author,
	}

	// Fall back to the submitted fields when the catalog record is sparse.
	if book.Title == "" {
		book.Title = title
	}
	if len(doc.AuthorName) > 0 {
		book.Author = doc.AuthorName[0]
	}
	if doc.CoverID > 0 {
		coverURL := fmt.Sprintf("%s/b/id/%d-M.jpg", c.coversURL, doc.CoverID)
		book.CoverURL = &coverURL
	}

	c.log.Debug("Catalog entry resolved",
		zap.String("open_library_id", book.OpenLibraryID),
		zap.String("title", book.Title),
		zap.String("author", book.Author),
	)

	return book, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("open library returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
