package entity

// CategoryAll UI uchun "filtr yo'q" belgisi; haqiqiy kategoriya emas
const CategoryAll = "all"

// LowStockThreshold bu qiymatdan kam qoldiq "kam qolgan" hisoblanadi
const LowStockThreshold = 10

// Product katalogdagi mahsulot
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
}

// ProductDraft ID siz mahsulot (yaratish va tahrirlash uchun)
type ProductDraft struct {
	Name        string  `json:"name" validate:"required,min=3"`
	Price       float64 `json:"price" validate:"gt=0"`
	Description string  `json:"description" validate:"required,min=10"`
	Image       string  `json:"image" validate:"required,url"`
	Category    string  `json:"category" validate:"required,ne=all"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

// WithID draftni berilgan ID bilan mahsulotga aylantirish
func (d ProductDraft) WithID(id int64) Product {
	return Product{
		ID:          id,
		Name:        d.Name,
		Price:       d.Price,
		Description: d.Description,
		Image:       d.Image,
		Category:    d.Category,
		Stock:       d.Stock,
	}
}

// Draft mahsulotdan ID siz nusxa
func (p Product) Draft() ProductDraft {
	return ProductDraft{
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		Image:       p.Image,
		Category:    p.Category,
		Stock:       p.Stock,
	}
}

// InStock omborda bormi
func (p Product) InStock() bool {
	return p.Stock > 0
}

// ProductFilter ro'yxatni filtrlash shartlari. Nil chegara cheklanmagan degani.
type ProductFilter struct {
	Query    string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// CatalogStats katalog bo'yicha hisoblangan ko'rsatkichlar
type CatalogStats struct {
	TotalProducts int
	TotalValue    float64
	LowStockCount int
	Categories    int
}
