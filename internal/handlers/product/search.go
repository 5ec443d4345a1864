package product

import (
	"net/http"
	"strconv"

	"rughaven_back_end/internal/search"
	"rughaven_back_end/internal/services"
	"rughaven_back_end/internal/store"

	"github.com/gin-gonic/gin"
)

// GET /api/products/search
//
// Query params: q, category, color, size, material (repeatable), sort,
// page, limit. Facet counts describe the query-matched set so the filter
// sidebar can show what each value would yield.
func SearchProducts(c *gin.Context) {
	req := search.Request{
		Query: c.Query("q"),
		Facets: map[string][]string{
			"category": c.QueryArray("category"),
			"material": c.QueryArray("material"),
			"size":     c.QueryArray("size"),
			"color":    c.QueryArray("color"),
		},
		Sort: c.DefaultQuery("sort", search.SortRelevance),
	}

	result := search.Run(store.Shop.Products(), req)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "24"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 24
	}

	start := (page - 1) * limit
	end := start + limit
	if start > result.Total {
		start = result.Total
	}
	if end > result.Total {
		end = result.Total
	}

	c.JSON(http.StatusOK, gin.H{
		"products": result.Products[start:end],
		"facets":   result.Facets,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": result.Total,
			"pages": (result.Total + limit - 1) / limit,
		},
	})
}

// GET /api/products/suggest — Elasticsearch-backed suggestion box. Falls
// back to the in-memory engine when Elastic is unavailable.
func SuggestProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusOK, gin.H{"suggestions": []interface{}{}})
		return
	}

	results, err := services.SuggestProducts(query)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"suggestions": results})
		return
	}

	fallback := search.Run(store.Shop.Products(), search.Request{Query: query})
	limit := 8
	if len(fallback.Products) < limit {
		limit = len(fallback.Products)
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": fallback.Products[:limit]})
}
