package search

import (
	"testing"
	"time"

	"rughaven_back_end/internal/models"
)

func fixtureProducts() []models.Product {
	base := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	return []models.Product{
		{Name: "Jaipur Medallion Rug", Category: "traditional", Material: "wool",
			Colors: []string{"red", "ivory"}, Sizes: []string{"5x8", "8x10"},
			Tags: []string{"handknotted", "medallion"}, Price: 18999, Popularity: 40,
			CreatedAt: base},
		{Name: "Nordic Lines Rug", Category: "modern", Material: "cotton",
			Colors: []string{"grey"}, Sizes: []string{"5x8"},
			Tags: []string{"flatweave", "minimal"}, Price: 7499, Popularity: 90,
			CreatedAt: base.Add(48 * time.Hour)},
		{Name: "Heritage Kashan Rug", Category: "traditional", Material: "silk",
			Colors: []string{"blue", "ivory"}, Sizes: []string{"8x10"},
			Tags: []string{"handknotted", "heritage"}, Price: 45999, Popularity: 25,
			CreatedAt: base.Add(24 * time.Hour)},
		{Name: "Courtyard Dhurrie", Category: "traditional", Material: "cotton",
			Colors: []string{"red"}, Sizes: []string{"4x6"},
			Tags: []string{"dhurrie"}, Price: 7499, Popularity: 60,
			CreatedAt: base.Add(72 * time.Hour)},
	}
}

func TestRun_QuerySubstringCaseInsensitive(t *testing.T) {
	res := Run(fixtureProducts(), Request{Query: "RuG"})
	if res.Total != 3 {
		t.Fatalf("want 3 matches on name, got %d", res.Total)
	}

	// query also matches tags
	res = Run(fixtureProducts(), Request{Query: "handknotted"})
	if res.Total != 2 {
		t.Fatalf("want 2 tag matches, got %d", res.Total)
	}

	// empty query matches everything
	res = Run(fixtureProducts(), Request{})
	if res.Total != 4 {
		t.Fatalf("empty query should match all, got %d", res.Total)
	}
}

func TestRun_FacetInclusionLaw(t *testing.T) {
	products := fixtureProducts()
	selections := map[string][]string{
		"category": {"traditional"},
		"color":    {"red", "blue"},
	}

	res := Run(products, Request{Facets: selections})

	included := map[string]bool{}
	for _, p := range res.Products {
		included[p.Name] = true
	}

	for _, p := range products {
		want := passesFacets(p, selections)
		if included[p.Name] != want {
			t.Fatalf("%s: included=%v, want %v", p.Name, included[p.Name], want)
		}
	}
	// AND across facets: Nordic Lines is modern, excluded despite no color clash
	if included["Nordic Lines Rug"] {
		t.Fatal("modern rug should be filtered out by category facet")
	}
	// OR within a facet: blue OR red both pass
	if !included["Heritage Kashan Rug"] || !included["Jaipur Medallion Rug"] {
		t.Fatal("blue and red rugs should both pass the color facet")
	}
}

func TestRun_EmptySelectionImposesNoConstraint(t *testing.T) {
	res := Run(fixtureProducts(), Request{Facets: map[string][]string{"color": {}}})
	if res.Total != 4 {
		t.Fatalf("empty selection list should not constrain, got %d", res.Total)
	}
}

func TestRun_PriceSortStableAndMonotonic(t *testing.T) {
	res := Run(fixtureProducts(), Request{Sort: SortPriceAsc})
	for i := 1; i < len(res.Products); i++ {
		if res.Products[i-1].Price > res.Products[i].Price {
			t.Fatalf("price_asc not monotonic at %d", i)
		}
	}
	// the two 7499 rugs keep their original relative order
	var cheap []string
	for _, p := range res.Products {
		if p.Price == 7499 {
			cheap = append(cheap, p.Name)
		}
	}
	if len(cheap) != 2 || cheap[0] != "Nordic Lines Rug" || cheap[1] != "Courtyard Dhurrie" {
		t.Fatalf("price tie not stable: %v", cheap)
	}

	res = Run(fixtureProducts(), Request{Sort: SortPriceDesc})
	for i := 1; i < len(res.Products); i++ {
		if res.Products[i-1].Price < res.Products[i].Price {
			t.Fatalf("price_desc not monotonic at %d", i)
		}
	}
}

func TestRun_NewestAndPopularity(t *testing.T) {
	res := Run(fixtureProducts(), Request{Sort: SortNewest})
	if res.Products[0].Name != "Courtyard Dhurrie" {
		t.Fatalf("newest first, got %s", res.Products[0].Name)
	}
	res = Run(fixtureProducts(), Request{Sort: SortPopularity})
	if res.Products[0].Name != "Nordic Lines Rug" {
		t.Fatalf("most popular first, got %s", res.Products[0].Name)
	}
}

func TestRun_FacetCountsPreFacetPolicy(t *testing.T) {
	// Counts come from the query-matched set before facet filtering, so
	// selecting a category does not shrink the color counts.
	res := Run(fixtureProducts(), Request{
		Query:  "rug",
		Facets: map[string][]string{"material": {"silk"}},
	})
	if res.Total != 1 {
		t.Fatalf("want 1 silk rug, got %d", res.Total)
	}
	if got := res.Facets["category"]["traditional"]; got != 2 {
		t.Fatalf("category count over pre-facet set: want 2, got %d", got)
	}
	if got := res.Facets["material"]["wool"]; got != 1 {
		t.Fatalf("material count over pre-facet set: want 1, got %d", got)
	}
}
