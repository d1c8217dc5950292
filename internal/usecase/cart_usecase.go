package usecase

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/storefront/internal/domain/entity"
	"github.com/yourusername/storefront/internal/domain/repository"
)

// Cart savat qatorlarining egasi. Har bir mahsulot uchun ko'pi bilan bitta qator.
type Cart struct {
	mu     sync.Mutex
	kv     repository.KVStore
	log    logrus.FieldLogger
	lines  []entity.CartLine
	seeded bool
}

// NewCart saqlangan savatni yuklash; yo'q yoki buzilgan bo'lsa bo'sh savat
func NewCart(ctx context.Context, kv repository.KVStore, log logrus.FieldLogger) (*Cart, error) {
	c := &Cart{
		kv:  kv,
		log: log.WithField("store", repository.KeyCart),
	}
	if err := c.load(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload saqlangan savatni qayta o'qish
func (c *Cart) Reload(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.load(ctx)
}

func (c *Cart) load(ctx context.Context) error {
	lines, state, err := loadSnapshot[entity.CartLine](ctx, c.kv, repository.KeyCart)
	switch state {
	case snapshotLoaded:
		c.lines = lines
		c.seeded = true
	case snapshotCorrupt:
		c.log.WithError(err).Warn("stored cart is unreadable, starting with an empty cart")
		c.lines = nil
		c.seeded = false
	default:
		if err != nil {
			return err
		}
		c.lines = nil
		c.seeded = false
	}
	return nil
}

func (c *Cart) persist(ctx context.Context, lines []entity.CartLine) error {
	if len(lines) == 0 && !c.seeded {
		return nil
	}
	if err := saveSnapshot(ctx, c.kv, repository.KeyCart, lines); err != nil {
		return err
	}
	c.seeded = true
	return nil
}

// AddToCart mahsulot bor bo'lsa miqdorini 1 ga oshirish, aks holda yangi qator
func (c *Cart) AddToCart(ctx context.Context, product entity.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := cloneLines(c.lines)
	if idx := indexOfLine(next, product.ID); idx >= 0 {
		next[idx].Quantity++
	} else {
		next = append(next, entity.CartLine{Product: product, Quantity: 1})
	}

	if err := c.persist(ctx, next); err != nil {
		return err
	}
	c.lines = next
	return nil
}

// UpdateQuantity miqdorni o'rnatish. 1 dan kichik qiymat e'tiborsiz qoldiriladi;
// o'chirish uchun RemoveFromCart.
func (c *Cart) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity < 1 {
		return nil
	}
	idx := indexOfLine(c.lines, id)
	if idx < 0 {
		return nil
	}

	next := cloneLines(c.lines)
	next[idx].Quantity = quantity
	if err := c.persist(ctx, next); err != nil {
		return err
	}
	c.lines = next
	return nil
}

// RemoveFromCart qatorni miqdoridan qat'i nazar o'chirish
func (c *Cart) RemoveFromCart(ctx context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]entity.CartLine, 0, len(c.lines))
	for _, l := range c.lines {
		if l.ID != id {
			next = append(next, l)
		}
	}

	if err := c.persist(ctx, next); err != nil {
		return err
	}
	c.lines = next
	return nil
}

// ClearCart savatni bo'shatish va saqlangan kalitni o'chirish
func (c *Cart) ClearCart(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.kv.Remove(ctx, repository.KeyCart); err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}
	c.lines = nil
	c.seeded = false
	return nil
}

// Lines savat qatorlari nusxasi
func (c *Cart) Lines() []entity.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	return cloneLines(c.lines)
}

// Total narx * miqdor yig'indisi
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return cartTotal(c.lines)
}

// Count jami donalar soni (qatorlar soni emas)
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return cartCount(c.lines)
}

// Summary subtotal, soliq va jami
func (c *Cart) Summary() entity.CartSummary {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Summarize(c.lines)
}

// Summarize qatorlar bo'yicha buyurtma xulosasi
func Summarize(lines []entity.CartLine) entity.CartSummary {
	subtotal := cartTotal(lines)
	return entity.CartSummary{
		Subtotal: subtotal,
		Tax:      subtotal * entity.TaxRate,
		Shipping: 0,
		Total:    subtotal * (1 + entity.TaxRate),
		Items:    cartCount(lines),
		Lines:    len(lines),
	}
}

func cartTotal(lines []entity.CartLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.LineTotal()
	}
	return total
}

func cartCount(lines []entity.CartLine) int {
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}
	return count
}

func indexOfLine(lines []entity.CartLine, id int64) int {
	for i := range lines {
		if lines[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneLines(lines []entity.CartLine) []entity.CartLine {
	out := make([]entity.CartLine, len(lines))
	copy(out, lines)
	return out
}
