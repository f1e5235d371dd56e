package googlebooks

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Projection selects how much volume metadata the API returns.
type Projection int

const (
	// ProjectionFull includes all volume metadata (API default).
	ProjectionFull Projection = iota
	// ProjectionLite includes only essential metadata and access information.
	ProjectionLite
)

// String renders the projection the way the API expects it in a query
// parameter. New variants must be added here as well.
func (p Projection) String() string {
	switch p {
	case ProjectionLite:
		return "lite"
	default:
		return "full"
	}
}

// PrintType filters results by content category.
type PrintType int

const (
	// PrintTypeAll returns all content types (API default).
	PrintTypeAll PrintType = iota
	// PrintTypeBooks returns only books.
	PrintTypeBooks
	// PrintTypeMagazines returns only magazines.
	PrintTypeMagazines
)

// String renders the print type the way the API expects it in a query
// parameter. New variants must be added here as well.
func (t PrintType) String() string {
	switch t {
	case PrintTypeBooks:
		return "books"
	case PrintTypeMagazines:
		return "magazines"
	default:
		return "all"
	}
}

// VolumeQuery builds a search against the volumes endpoint. Construct one
// with NewQuery or one of the By* constructors, then chain option setters:
//
//	query := googlebooks.ByTitle("La Conquête du Pain").
//		AndAuthor("Kropotkin").
//		WithMaxResults(10)
//
// Every method returns an updated copy, so two chains derived from the same
// query never share state.
type VolumeQuery struct {
	term         string
	maxResults   *int
	startIndex   *int
	langRestrict *string
	projection   *Projection
	printType    *PrintType
}

// NewQuery creates a query from a raw search string. The string may contain
// any full-text search syntax the API understands, including field prefixes.
func NewQuery(seed string) (VolumeQuery, error) {
	if seed == "" {
		return VolumeQuery{}, ErrEmptyQuery
	}
	return VolumeQuery{term: seed}, nil
}

// ByISBN creates a query matching a specific ISBN.
func ByISBN(isbn string) VolumeQuery { return seeded("isbn", isbn) }

// ByTitle creates a query matching words in the title.
func ByTitle(title string) VolumeQuery { return seeded("intitle", title) }

// ByAuthor creates a query matching an author name.
func ByAuthor(author string) VolumeQuery { return seeded("inauthor", author) }

// ByPublisher creates a query matching a publisher name.
func ByPublisher(publisher string) VolumeQuery { return seeded("inpublisher", publisher) }

// BySubject creates a query matching a subject category.
func BySubject(subject string) VolumeQuery { return seeded("subject", subject) }

// ByLCCN creates a query matching a Library of Congress Control Number.
func ByLCCN(lccn string) VolumeQuery { return seeded("lccn", lccn) }

// ByOCLC creates a query matching an OCLC number.
func ByOCLC(oclc string) VolumeQuery { return seeded("oclc", oclc) }

func seeded(prefix, value string) VolumeQuery {
	// The prefix guarantees a non-empty term, so the NewQuery error
	// path cannot trigger here.
	return VolumeQuery{term: prefix + ":" + value}
}

// AndISBN appends an ISBN predicate to the query.
func (q VolumeQuery) AndISBN(isbn string) VolumeQuery { return q.and("isbn", isbn) }

// AndTitle appends a title predicate to the query.
func (q VolumeQuery) AndTitle(title string) VolumeQuery { return q.and("intitle", title) }

// AndAuthor appends an author predicate to the query.
func (q VolumeQuery) AndAuthor(author string) VolumeQuery { return q.and("inauthor", author) }

// AndPublisher appends a publisher predicate to the query.
func (q VolumeQuery) AndPublisher(publisher string) VolumeQuery {
	return q.and("inpublisher", publisher)
}

// AndSubject appends a subject predicate to the query.
func (q VolumeQuery) AndSubject(subject string) VolumeQuery { return q.and("subject", subject) }

// AndLCCN appends an LCCN predicate to the query.
func (q VolumeQuery) AndLCCN(lccn string) VolumeQuery { return q.and("lccn", lccn) }

// AndOCLC appends an OCLC predicate to the query.
func (q VolumeQuery) AndOCLC(oclc string) VolumeQuery { return q.and("oclc", oclc) }

func (q VolumeQuery) and(prefix, value string) VolumeQuery {
	// Predicates are space separated and keep insertion order, which makes
	// built URLs reproducible.
	q.term += " " + prefix + ":" + value
	return q
}

// WithMaxResults sets the maximum number of results to return. The value is
// passed through as-is; the API rejects out-of-range values itself.
func (q VolumeQuery) WithMaxResults(n int) VolumeQuery {
	q.maxResults = &n
	return q
}

// WithStartIndex sets the first result position for pagination.
func (q VolumeQuery) WithStartIndex(i int) VolumeQuery {
	q.startIndex = &i
	return q
}

// WithLangRestrict restricts results to a two-letter language code.
// The code is not validated.
func (q VolumeQuery) WithLangRestrict(lang string) VolumeQuery {
	q.langRestrict = &lang
	return q
}

// WithProjection sets the metadata projection mode.
func (q VolumeQuery) WithProjection(p Projection) VolumeQuery {
	q.projection = &p
	return q
}

// WithPrintType sets the content category filter.
func (q VolumeQuery) WithPrintType(t PrintType) VolumeQuery {
	q.printType = &t
	return q
}

// Term returns the accumulated search term.
func (q VolumeQuery) Term() string {
	return q.term
}

// BuildURL renders the query as a request URL against the given base URL.
// Parameters appear in a fixed order regardless of the order the setters
// were called in: q, maxResults, startIndex, langRestrict, projection,
// printType, then key when an API key is configured.
func (q VolumeQuery) BuildURL(baseURL, apiKey string) (string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	type param struct {
		key   string
		value string
	}

	params := make([]param, 0, 7)
	params = append(params, param{"q", q.term})
	if q.maxResults != nil {
		params = append(params, param{"maxResults", strconv.Itoa(*q.maxResults)})
	}
	if q.startIndex != nil {
		params = append(params, param{"startIndex", strconv.Itoa(*q.startIndex)})
	}
	if q.langRestrict != nil {
		params = append(params, param{"langRestrict", *q.langRestrict})
	}
	if q.projection != nil {
		params = append(params, param{"projection", q.projection.String()})
	}
	if q.printType != nil {
		// Rendered under its own printType key. Sending it as a second
		// projection value makes the API ignore the filter.
		params = append(params, param{"printType", q.printType.String()})
	}
	if apiKey != "" {
		params = append(params, param{"key", apiKey})
	}

	// url.Values.Encode sorts keys alphabetically, so the query string is
	// assembled by hand to keep the parameter order stable.
	var sb strings.Builder
	sb.WriteString(strings.TrimSuffix(baseURL, "/"))
	sb.WriteString("/books/v1/volumes?")
	for i, p := range params {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(p.key)
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.value))
	}

	return sb.String(), nil
}
