package telegram

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/yourusername/storefront/internal/domain/entity"
	"github.com/yourusername/storefront/internal/usecase"
)

const draftFormat = "name|price|category|stock|image|description"

const welcomeMessage = `👋 Welcome to the store!

Browse with /products, add items with /add <id> and check out your /cart.
Type /help for every command.`

const helpMessage = `🛍 Shopping
/products [query] - list or search products
/category <name> - products in a category (all for everything)
/price <min> [max] - products in a price range
/categories - category list
/product <id> - product details
/stats - catalog numbers

🛒 Cart
/add <id> - add a product
/cart - show cart
/qty <id> <n> - set quantity
/remove <id> - remove a product
/clear - empty the cart
/refresh - reload catalog and cart

👤 Account
/login <email> <password>
/logout
/whoami
/theme [light|dark]

🔧 Admin
/admin - dashboard
/newproduct ` + draftFormat + `
/editproduct <id> ` + draftFormat + `
/deleteproduct <id>
Send an .xlsx file to import products.

🤖 /ask <question> or just write a message.`

// parseDraft "name|price|category|stock|image|description" formatini o'qish
func parseDraft(args string) (entity.ProductDraft, error) {
	parts := strings.Split(args, "|")
	if len(parts) != 6 {
		return entity.ProductDraft{}, errors.New("Format: " + draftFormat)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	price, err := cast.ToFloat64E(parts[1])
	if err != nil {
		return entity.ProductDraft{}, errors.Errorf("Price %q is not a number.", parts[1])
	}
	stock, err := cast.ToIntE(parts[3])
	if err != nil {
		return entity.ProductDraft{}, errors.Errorf("Stock %q is not a whole number.", parts[3])
	}

	return entity.ProductDraft{
		Name:        parts[0],
		Price:       price,
		Category:    parts[2],
		Stock:       stock,
		Image:       parts[4],
		Description: parts[5],
	}, nil
}

func stockLabel(p entity.Product) string {
	switch {
	case !p.InStock():
		return "out of stock"
	case p.Stock < entity.LowStockThreshold:
		return fmt.Sprintf("only %d left", p.Stock)
	default:
		return fmt.Sprintf("%d in stock", p.Stock)
	}
}

func formatProductList(products []entity.Product) string {
	if len(products) == 0 {
		return "No products found."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📦 %d products\n\n", len(products)))
	for _, p := range products {
		sb.WriteString(fmt.Sprintf("#%d %s - $%.2f (%s)\n", p.ID, p.Name, p.Price, stockLabel(p)))
	}
	sb.WriteString("\n/product <id> for details, /add <id> to buy.")
	return sb.String()
}

func formatProduct(p entity.Product) string {
	return fmt.Sprintf("#%d %s\n💵 $%.2f\n📂 %s\n📦 %s\n\n%s\n%s",
		p.ID, p.Name, p.Price, p.Category, stockLabel(p), p.Description, p.Image)
}

func formatCart(lines []entity.CartLine, summary entity.CartSummary) string {
	if len(lines) == 0 {
		return "🛒 Your cart is empty."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🛒 Cart (%d items)\n\n", summary.Items))
	for _, l := range lines {
		sb.WriteString(fmt.Sprintf("#%d %s x%d = $%.2f\n", l.ID, l.Name, l.Quantity, l.LineTotal()))
	}
	sb.WriteString(fmt.Sprintf("\nSubtotal: $%.2f\n", summary.Subtotal))
	sb.WriteString(fmt.Sprintf("Tax (%.0f%%): $%.2f\n", entity.TaxRate*100, summary.Tax))
	sb.WriteString("Shipping: Free\n")
	sb.WriteString(fmt.Sprintf("Total: $%.2f", summary.Total))
	return sb.String()
}

func formatStats(s entity.CatalogStats) string {
	return fmt.Sprintf("📊 Products: %d\n💰 Inventory value: $%.2f\n⚠️ Low stock: %d\n📂 Categories: %d",
		s.TotalProducts, s.TotalValue, s.LowStockCount, s.Categories)
}

func formatDashboard(d usecase.Dashboard) string {
	var sb strings.Builder
	sb.WriteString("🔧 Admin dashboard\n\n")
	sb.WriteString(formatStats(d.Stats))

	if len(d.LowStock) > 0 {
		sb.WriteString("\n\nLow stock:\n")
		for _, p := range d.LowStock {
			sb.WriteString(fmt.Sprintf("#%d %s (%d left)\n", p.ID, p.Name, p.Stock))
		}
	}
	if len(d.RecentActions) > 0 {
		sb.WriteString("\n\nRecent actions:\n")
		for _, a := range d.RecentActions {
			sb.WriteString(fmt.Sprintf("%s %s %s: %s\n",
				a.Timestamp.Format("2006-01-02 15:04"), a.UserEmail, a.Action, a.Details))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
