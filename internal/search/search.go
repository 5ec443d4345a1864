package search

import (
	"sort"
	"strings"

	"rughaven_back_end/internal/models"
)

// Sort keys accepted by Run. Anything else falls back to relevance.
const (
	SortRelevance  = "relevance"
	SortNewest     = "newest"
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortPopularity = "popularity"
)

// Request is one search over an already-fetched product list.
type Request struct {
	Query  string
	Facets map[string][]string // facet name -> selected values
	Sort   string
}

type Result struct {
	Products []models.Product
	Total    int
	// Facets maps facet name -> value -> count. Counts are computed over
	// the query-matched candidate set BEFORE facet filtering, so each
	// count answers "how many results would this value alone give me".
	Facets map[string]map[string]int
}

// Run filters, counts and sorts. A product is included iff it matches the
// free-text query and, for every facet with at least one selected value,
// its attribute intersects the selection (AND across facets, OR within
// one). All sorts are stable: ties keep their original relative order.
func Run(products []models.Product, req Request) Result {
	matched := make([]models.Product, 0, len(products))
	for _, p := range products {
		if matchesQuery(p, req.Query) {
			matched = append(matched, p)
		}
	}

	facets := countFacets(matched)

	results := make([]models.Product, 0, len(matched))
	for _, p := range matched {
		if passesFacets(p, req.Facets) {
			results = append(results, p)
		}
	}

	sortProducts(results, req.Sort)

	return Result{Products: results, Total: len(results), Facets: facets}
}

// matchesQuery checks a case-insensitive substring match over the
// searchable fields (name and tags). Empty query matches everything.
func matchesQuery(p models.Product, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// facetValues extracts a product's values for a named facet.
func facetValues(p models.Product, facet string) []string {
	switch facet {
	case "category":
		if p.Category == "" {
			return nil
		}
		return []string{p.Category}
	case "material":
		if p.Material == "" {
			return nil
		}
		return []string{p.Material}
	case "size":
		return p.Sizes
	case "color":
		return p.Colors
	}
	return nil
}

var facetNames = []string{"category", "material", "size", "color"}

func passesFacets(p models.Product, selections map[string][]string) bool {
	for facet, selected := range selections {
		if len(selected) == 0 {
			continue // no selection, no constraint
		}
		if !intersects(facetValues(p, facet), selected) {
			return false
		}
	}
	return true
}

func intersects(values, selected []string) bool {
	for _, v := range values {
		for _, s := range selected {
			if strings.EqualFold(v, s) {
				return true
			}
		}
	}
	return false
}

func countFacets(products []models.Product) map[string]map[string]int {
	counts := make(map[string]map[string]int, len(facetNames))
	for _, facet := range facetNames {
		counts[facet] = map[string]int{}
	}
	for _, p := range products {
		for _, facet := range facetNames {
			for _, v := range facetValues(p, facet) {
				counts[facet][v]++
			}
		}
	}
	return counts
}

func sortProducts(products []models.Product, key string) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	case SortPopularity:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Popularity > products[j].Popularity
		})
	}
	// relevance: keep the incoming order
}
