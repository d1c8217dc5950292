package usecase

import (
	"sort"
	"strings"

	"github.com/yourusername/storefront/internal/domain/entity"
)

// FilterProducts filtr shartlariga mos mahsulotlar, asl tartibda
func FilterProducts(products []entity.Product, filter entity.ProductFilter) []entity.Product {
	terms := strings.Fields(strings.ToLower(filter.Query))

	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if !matchesQuery(p, terms) {
			continue
		}
		if filter.Category != "" && filter.Category != entity.CategoryAll && p.Category != filter.Category {
			continue
		}
		if filter.MinPrice != nil && p.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
			continue
		}
		out = append(out, p)
	}
	return out
}

// matchesQuery kamida bitta so'z nom, tavsif yoki kategoriyada bo'lsa true
func matchesQuery(p entity.Product, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	name := strings.ToLower(p.Name)
	desc := strings.ToLower(p.Description)
	cat := strings.ToLower(p.Category)
	for _, t := range terms {
		if strings.Contains(name, t) || strings.Contains(desc, t) || strings.Contains(cat, t) {
			return true
		}
	}
	return false
}

// distinctCategories takrorlanmas kategoriyalar, leksikografik tartibda
func distinctCategories(products []entity.Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0)
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}

// CategoryOptions "all" belgisi va haqiqiy kategoriyalar.
// Eski snapshotlarda "all" kategoriyali mahsulot bo'lsa ham belgi bir marta chiqadi.
func CategoryOptions(products []entity.Product) []string {
	out := []string{entity.CategoryAll}
	for _, c := range distinctCategories(products) {
		if c != entity.CategoryAll {
			out = append(out, c)
		}
	}
	return out
}

// ComputeStats katalog ko'rsatkichlarini hisoblash
func ComputeStats(products []entity.Product) entity.CatalogStats {
	stats := entity.CatalogStats{
		TotalProducts: len(products),
		Categories:    len(distinctCategories(products)),
	}
	for _, p := range products {
		stats.TotalValue += p.Price * float64(p.Stock)
		if p.Stock < entity.LowStockThreshold {
			stats.LowStockCount++
		}
	}
	return stats
}

// LowStock kam qolgan mahsulotlar
func LowStock(products []entity.Product) []entity.Product {
	out := make([]entity.Product, 0)
	for _, p := range products {
		if p.Stock < entity.LowStockThreshold {
			out = append(out, p)
		}
	}
	return out
}

// nextProductID 1 + eng katta ID (bo'sh katalog uchun 1)
func nextProductID(products []entity.Product) int64 {
	var maxID int64
	for _, p := range products {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	return maxID + 1
}
