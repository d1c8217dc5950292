package entity

// TaxRate savat summasiga qo'shiladigan soliq ulushi
const TaxRate = 0.10

// CartLine savatdagi bitta qator: mahsulot maydonlari va miqdor
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal qator summasi
func (l CartLine) LineTotal() float64 {
	return l.Price * float64(l.Quantity)
}

// CartSummary buyurtma xulosasi. Yetkazib berish har doim bepul.
type CartSummary struct {
	Subtotal float64
	Tax      float64
	Shipping float64
	Total    float64
	Items    int
	Lines    int
}
