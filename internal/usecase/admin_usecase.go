package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/storefront/internal/domain/entity"
	"github.com/yourusername/storefront/internal/domain/repository"
)

var (
	// ErrForbidden amal faqat admin uchun
	ErrForbidden = errors.New("admin role required")

	// ErrInvalidDraft draft forma qoidalariga mos emas
	ErrInvalidDraft = errors.New("invalid product")
)

// Authorizer admin tekshiruvi uchun sessiya
type Authorizer interface {
	Current() (entity.User, bool)
	IsAdmin() bool
}

// Dashboard admin panel ma'lumotlari
type Dashboard struct {
	Stats         entity.CatalogStats
	LowStock      []entity.Product
	RecentActions []entity.AdminAction
}

// Admin katalogni o'zgartiradigan amallar oldidagi ruxsat tekshiruvi
type Admin struct {
	catalog     *Catalog
	adminRepo   repository.AdminRepository
	excelParser repository.ExcelParser
	validate    *validator.Validate
	log         logrus.FieldLogger
}

// NewAdmin yangi Admin yaratish
func NewAdmin(
	catalog *Catalog,
	adminRepo repository.AdminRepository,
	excelParser repository.ExcelParser,
	log logrus.FieldLogger,
) *Admin {
	return &Admin{
		catalog:     catalog,
		adminRepo:   adminRepo,
		excelParser: excelParser,
		validate:    validator.New(),
		log:         log.WithField("component", "admin"),
	}
}

func (a *Admin) authorize(session Authorizer) (entity.User, error) {
	user, ok := session.Current()
	if !ok || !session.IsAdmin() {
		return entity.User{}, ErrForbidden
	}
	return user, nil
}

// ValidateDraft forma qoidalari: nom >= 3, narx > 0, tavsif >= 10, URL rasm, kategoriya, ombor >= 0
func (a *Admin) ValidateDraft(draft entity.ProductDraft) error {
	err := a.validate.Struct(draft)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(ErrInvalidDraft, err.Error())
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return errors.Wrap(ErrInvalidDraft, strings.Join(fields, ", "))
}

// CreateProduct mahsulot yaratish
func (a *Admin) CreateProduct(ctx context.Context, session Authorizer, draft entity.ProductDraft) (entity.Product, error) {
	user, err := a.authorize(session)
	if err != nil {
		return entity.Product{}, err
	}
	if err := a.ValidateDraft(draft); err != nil {
		return entity.Product{}, err
	}

	product, err := a.catalog.Add(ctx, draft)
	if err != nil {
		return entity.Product{}, errors.Wrap(err, "failed to add product")
	}

	a.logAction(ctx, user, "create_product", product.ID, product.Name)
	return product, nil
}

// UpdateProduct mahsulotni tahrirlash
func (a *Admin) UpdateProduct(ctx context.Context, session Authorizer, id int64, draft entity.ProductDraft) error {
	user, err := a.authorize(session)
	if err != nil {
		return err
	}
	if err := a.ValidateDraft(draft); err != nil {
		return err
	}

	if err := a.catalog.Update(ctx, id, draft); err != nil {
		return err
	}

	a.logAction(ctx, user, "update_product", id, draft.Name)
	return nil
}

// DeleteProduct mahsulotni o'chirish
func (a *Admin) DeleteProduct(ctx context.Context, session Authorizer, id int64) error {
	user, err := a.authorize(session)
	if err != nil {
		return err
	}

	product, _ := a.catalog.GetByID(id)
	if err := a.catalog.Delete(ctx, id); err != nil {
		return err
	}

	a.logAction(ctx, user, "delete_product", id, product.Name)
	return nil
}

// ImportCatalog Excel fayldan mahsulotlarni qo'shish. Yaroqsiz qatorlar tashlab ketiladi.
func (a *Admin) ImportCatalog(ctx context.Context, session Authorizer, fileData []byte, filename string) (int, error) {
	user, err := a.authorize(session)
	if err != nil {
		return 0, err
	}

	drafts, err := a.excelParser.ParseDraftsFromBytes(ctx, fileData, filename)
	if err != nil {
		return 0, errors.Wrap(err, "failed to parse excel")
	}

	valid := make([]entity.ProductDraft, 0, len(drafts))
	for i, d := range drafts {
		if err := a.ValidateDraft(d); err != nil {
			a.log.WithError(err).WithFields(logrus.Fields{"file": filename, "index": i}).Warn("skipping invalid product")
			continue
		}
		valid = append(valid, d)
	}
	if len(valid) == 0 {
		return 0, errors.Wrap(ErrInvalidDraft, "no valid products found in excel file")
	}

	created, err := a.catalog.AddMany(ctx, valid)
	if err != nil {
		return 0, errors.Wrap(err, "failed to import catalog")
	}

	a.logAction(ctx, user, "import_catalog", 0, fmt.Sprintf("Imported %d products from %s", len(created), filename))
	return len(created), nil
}

// Dashboard ko'rsatkichlar, kam qolganlar va oxirgi harakatlar
func (a *Admin) Dashboard(ctx context.Context, session Authorizer) (Dashboard, error) {
	if _, err := a.authorize(session); err != nil {
		return Dashboard{}, err
	}

	products := a.catalog.All()
	actions, err := a.adminRepo.ListActions(ctx, 10)
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "failed to list admin actions")
	}

	return Dashboard{
		Stats:         ComputeStats(products),
		LowStock:      LowStock(products),
		RecentActions: actions,
	}, nil
}

func (a *Admin) logAction(ctx context.Context, user entity.User, action string, productID int64, details string) {
	entry := entity.AdminAction{
		ID:        uuid.New().String(),
		UserEmail: user.Email,
		Action:    action,
		ProductID: productID,
		Details:   details,
		Timestamp: time.Now(),
	}
	if err := a.adminRepo.LogAction(ctx, entry); err != nil {
		a.log.WithError(err).WithField("action", action).Warn("failed to log admin action")
	}
}
