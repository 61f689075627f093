package openlibrary

// searchDoc is one result of the search.json endpoint. Only the fields the
// lookup needs are decoded.
type searchDoc struct {
	Key        string   `json:"key"` // e.g. "/works/OL27448W"
	AuthorName []string `json:"author_name"`
	CoverID    int64    `json:"cover_i"`
}

type searchResponse struct {
	NumFound int         `json:"numFound"`
	Docs     []searchDoc `json:"docs"`
}

// workResponse is the richer record at /works/{id}.json.
type workResponse struct {
	Title string `json:"title"`
}

// Book is the canonical catalog entry returned by a lookup.
type Book struct {
	OpenLibraryID string
	Title         string
	Author        string
	CoverURL      *string
}
