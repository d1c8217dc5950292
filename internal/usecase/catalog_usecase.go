package usecase

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/storefront/internal/domain/entity"
	"github.com/yourusername/storefront/internal/domain/repository"
)

// ErrProductNotFound berilgan ID li mahsulot katalogda yo'q
var ErrProductNotFound = errors.New("product not found")

// Catalog mahsulotlar ro'yxatining yagona egasi. Har bir o'zgarishdan keyin
// to'liq snapshot "products" kalitiga yoziladi.
type Catalog struct {
	mu       sync.Mutex
	kv       repository.KVStore
	log      logrus.FieldLogger
	seed     []entity.Product
	products []entity.Product
	seeded   bool
}

// NewCatalog demo katalog bilan Catalog yaratish
func NewCatalog(ctx context.Context, kv repository.KVStore, log logrus.FieldLogger) (*Catalog, error) {
	return NewCatalogWithSeed(ctx, kv, DemoProducts(), log)
}

// NewCatalogWithSeed saqlangan snapshot bo'lmasa yoki buzilgan bo'lsa seed ishlatiladi
func NewCatalogWithSeed(ctx context.Context, kv repository.KVStore, seed []entity.Product, log logrus.FieldLogger) (*Catalog, error) {
	c := &Catalog{
		kv:   kv,
		log:  log.WithField("store", repository.KeyProducts),
		seed: cloneProducts(seed),
	}
	if err := c.load(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload saqlangan snapshotni qayta o'qish (boshqa oyna yozgan bo'lishi mumkin)
func (c *Catalog) Reload(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.load(ctx)
}

func (c *Catalog) load(ctx context.Context) error {
	products, state, err := loadSnapshot[entity.Product](ctx, c.kv, repository.KeyProducts)
	switch state {
	case snapshotLoaded:
		c.products = products
		c.seeded = true
	case snapshotCorrupt:
		c.log.WithError(err).Warn("stored catalog is unreadable, using default catalog")
		c.products = cloneProducts(c.seed)
		c.seeded = len(c.seed) > 0
	default:
		if err != nil {
			return err
		}
		c.products = cloneProducts(c.seed)
		c.seeded = len(c.seed) > 0
	}
	return nil
}

// persist bo'sh va hali seed qilinmagan kolleksiya yozilmaydi
func (c *Catalog) persist(ctx context.Context, products []entity.Product) error {
	if len(products) == 0 && !c.seeded {
		return nil
	}
	if err := saveSnapshot(ctx, c.kv, repository.KeyProducts, products); err != nil {
		return err
	}
	c.seeded = true
	return nil
}

// Add yangi mahsulot qo'shish; ID = eng katta ID + 1
func (c *Catalog) Add(ctx context.Context, draft entity.ProductDraft) (entity.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	product := draft.WithID(nextProductID(c.products))
	next := append(cloneProducts(c.products), product)
	if err := c.persist(ctx, next); err != nil {
		return entity.Product{}, err
	}
	c.products = next

	c.log.WithField("product_id", product.ID).Debug("product added")
	return product, nil
}

// AddMany draftlarni ketma-ket qo'shish, bitta yozuv bilan
func (c *Catalog) AddMany(ctx context.Context, drafts []entity.ProductDraft) ([]entity.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(drafts) == 0 {
		return nil, nil
	}

	next := cloneProducts(c.products)
	created := make([]entity.Product, 0, len(drafts))
	for _, d := range drafts {
		p := d.WithID(nextProductID(next))
		next = append(next, p)
		created = append(created, p)
	}
	if err := c.persist(ctx, next); err != nil {
		return nil, err
	}
	c.products = next
	return created, nil
}

// Update ID dan tashqari barcha maydonlarni almashtirish
func (c *Catalog) Update(ctx context.Context, id int64, draft entity.ProductDraft) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := indexOfProduct(c.products, id)
	if idx < 0 {
		return errors.Wrapf(ErrProductNotFound, "update %d", id)
	}

	next := cloneProducts(c.products)
	next[idx] = draft.WithID(id)
	if err := c.persist(ctx, next); err != nil {
		return err
	}
	c.products = next
	return nil
}

// Delete mahsulotni o'chirish
func (c *Catalog) Delete(ctx context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := indexOfProduct(c.products, id)
	if idx < 0 {
		return errors.Wrapf(ErrProductNotFound, "delete %d", id)
	}

	next := make([]entity.Product, 0, len(c.products)-1)
	next = append(next, c.products[:idx]...)
	next = append(next, c.products[idx+1:]...)
	if err := c.persist(ctx, next); err != nil {
		return err
	}
	c.products = next
	return nil
}

// GetByID ID bo'yicha mahsulotni olish
func (c *Catalog) GetByID(id int64) (entity.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := indexOfProduct(c.products, id)
	if idx < 0 {
		return entity.Product{}, false
	}
	return c.products[idx], true
}

// List filtrlangan ro'yxat; holatni o'zgartirmaydi
func (c *Catalog) List(filter entity.ProductFilter) []entity.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	return FilterProducts(c.products, filter)
}

// All barcha mahsulotlar nusxasi
func (c *Catalog) All() []entity.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	return cloneProducts(c.products)
}

// Categories "all" va saralangan kategoriyalar
func (c *Catalog) Categories() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return CategoryOptions(c.products)
}

// Stats butun katalog bo'yicha ko'rsatkichlar
func (c *Catalog) Stats() entity.CatalogStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return ComputeStats(c.products)
}

func indexOfProduct(products []entity.Product, id int64) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneProducts(products []entity.Product) []entity.Product {
	out := make([]entity.Product, len(products))
	copy(out, products)
	return out
}
