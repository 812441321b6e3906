// Package docs holds the small in-memory reference library served by the
// search_docs / get_doc tools.
package docs

import "strings"

type Doc struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
	Type  string `json:"type"`
}

// SearchResult is a match with the body capped to a snippet.
type SearchResult struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Type    string `json:"type"`
	Snippet string `json:"snippet"`
}

const snippetLen = 200

var library = []Doc{
	{
		ID:    "1",
		Title: "Sales Analytics Overview",
		Body:  "How the sales analytics tools work: each call fetches contract product lines from Salesforce, normalizes them, and computes the requested aggregation. Nothing is cached between calls.",
		Type:  "documentation",
	},
	{
		ID:    "2",
		Title: "Grouping Fields",
		Body:  "Valid grouping fields for get_top_items_summary: account_code, product_family, product_sku, stone_color. Valid trend filter fields: account_code, product_family, product_sku.",
		Type:  "examples",
	},
	{
		ID:    "3",
		Title: "Customer History Tree",
		Body:  "get_customer_history returns a year/quarter/month tree with order count, quantity sum and value sum at every level, plus per-line details at the month level.",
		Type:  "documentation",
	},
	{
		ID:    "4",
		Title: "Data Coverage",
		Body:  "Reporting covers contracts from 2015 through the current year. Rows without an account code or contract date are excluded from every result.",
		Type:  "documentation",
	},
}

// Search returns library entries whose title or body contains the query,
// case-insensitive substring match.
func Search(query string) []SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	var results []SearchResult
	for _, d := range library {
		if q == "" || strings.Contains(strings.ToLower(d.Title), q) || strings.Contains(strings.ToLower(d.Body), q) {
			snippet := d.Body
			if len(snippet) > snippetLen {
				snippet = snippet[:snippetLen] + "..."
			}
			results = append(results, SearchResult{ID: d.ID, Title: d.Title, Type: d.Type, Snippet: snippet})
		}
	}
	return results
}

// Get returns the doc with the given id, or false when it does not exist.
func Get(id string) (Doc, bool) {
	for _, d := range library {
		if d.ID == id {
			return d, true
		}
	}
	return Doc{}, false
}
