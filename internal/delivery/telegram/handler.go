package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/yourusername/storefront/internal/domain/entity"
	"github.com/yourusername/storefront/internal/usecase"
)

// CatalogReader katalogdan o'qish
type CatalogReader interface {
	List(filter entity.ProductFilter) []entity.Product
	GetByID(id int64) (entity.Product, bool)
	Categories() []string
	Stats() entity.CatalogStats
	Reload(ctx context.Context) error
}

// CartStore chat savati
type CartStore interface {
	AddToCart(ctx context.Context, product entity.Product) error
	UpdateQuantity(ctx context.Context, id int64, quantity int) error
	RemoveFromCart(ctx context.Context, id int64) error
	ClearCart(ctx context.Context) error
	Lines() []entity.CartLine
	Summary() entity.CartSummary
	Reload(ctx context.Context) error
}

// SessionStore chat sessiyasi
type SessionStore interface {
	usecase.Authorizer
	Login(ctx context.Context, email, password string) (bool, error)
	Logout(ctx context.Context) error
	Theme() entity.Theme
	SetTheme(ctx context.Context, theme entity.Theme) error
	ToggleTheme(ctx context.Context) (entity.Theme, error)
}

// AdminService admin amallari
type AdminService interface {
	CreateProduct(ctx context.Context, session usecase.Authorizer, draft entity.ProductDraft) (entity.Product, error)
	UpdateProduct(ctx context.Context, session usecase.Authorizer, id int64, draft entity.ProductDraft) error
	DeleteProduct(ctx context.Context, session usecase.Authorizer, id int64) error
	ImportCatalog(ctx context.Context, session usecase.Authorizer, fileData []byte, filename string) (int, error)
	Dashboard(ctx context.Context, session usecase.Authorizer) (usecase.Dashboard, error)
}

// AssistantService AI yordamchi
type AssistantService interface {
	Enabled() bool
	Ask(ctx context.Context, chatID int64, question string) (string, error)
}

// StateOpener chat uchun savat va sessiyani ochish
type StateOpener func(ctx context.Context, chatID int64) (CartStore, SessionStore, error)

type chatState struct {
	chatID  int64
	cart    CartStore
	session SessionStore
}

// BotHandler Telegram bot handler
type BotHandler struct {
	bot       *tgbotapi.BotAPI
	catalog   CatalogReader
	admin     AdminService
	assistant AssistantService
	openState StateOpener
	log       logrus.FieldLogger

	stateMu sync.Mutex
	states  map[int64]*chatState
}

// NewBotHandler yangi bot handler yaratish
func NewBotHandler(
	token string,
	catalog CatalogReader,
	admin AdminService,
	assistant AssistantService,
	openState StateOpener,
	log logrus.FieldLogger,
) (*BotHandler, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create bot")
	}
	return newBotHandler(bot, catalog, admin, assistant, openState, log), nil
}

func newBotHandler(
	bot *tgbotapi.BotAPI,
	catalog CatalogReader,
	admin AdminService,
	assistant AssistantService,
	openState StateOpener,
	log logrus.FieldLogger,
) *BotHandler {
	return &BotHandler{
		bot:       bot,
		catalog:   catalog,
		admin:     admin,
		assistant: assistant,
		openState: openState,
		log:       log.WithField("component", "telegram"),
		states:    make(map[int64]*chatState),
	}
}

// Start botni ishga tushirish
func (h *BotHandler) Start(ctx context.Context) error {
	h.log.WithField("bot", h.bot.Self.UserName).Info("bot started")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			h.bot.StopReceivingUpdates()
			h.log.Info("bot stopping")
			return ctx.Err()
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			go h.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage xabarni qayta ishlash
func (h *BotHandler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	log := h.log.WithField("chat_id", chatID)

	var reply string
	switch {
	case message.Document != nil:
		reply = h.handleDocument(ctx, chatID, message.Document)
	case message.IsCommand():
		reply = h.handleCommand(ctx, chatID, message.Command(), message.CommandArguments())
	case strings.TrimSpace(message.Text) != "" && h.assistant.Enabled():
		reply = h.handleAsk(ctx, chatID, message.Text)
	default:
		reply = "Use /help to see what I can do."
	}

	if reply == "" {
		return
	}
	if _, err := h.bot.Send(tgbotapi.NewMessage(chatID, reply)); err != nil {
		log.WithError(err).Warn("failed to send message")
	}
}

// state chat holatini olish yoki ochish. Ombordan o'qish lock tashqarisida;
// parallel ochilgan bo'lsa birinchi saqlangani qoladi.
func (h *BotHandler) state(ctx context.Context, chatID int64) (*chatState, error) {
	h.stateMu.Lock()
	st, ok := h.states[chatID]
	h.stateMu.Unlock()
	if ok {
		return st, nil
	}

	cart, session, err := h.openState(ctx, chatID)
	if err != nil {
		return nil, err
	}

	h.stateMu.Lock()
	defer h.stateMu.Unlock()

	if st, ok := h.states[chatID]; ok {
		return st, nil
	}
	st = &chatState{chatID: chatID, cart: cart, session: session}
	h.states[chatID] = st
	return st, nil
}

// handleCommand komandani bajarib javob matnini qaytaradi
func (h *BotHandler) handleCommand(ctx context.Context, chatID int64, command, args string) string {
	args = strings.TrimSpace(args)

	switch command {
	case "start":
		return welcomeMessage
	case "help":
		return helpMessage
	case "products":
		return formatProductList(h.catalog.List(entity.ProductFilter{Query: args}))
	case "category":
		return formatProductList(h.catalog.List(entity.ProductFilter{Category: args}))
	case "price":
		return h.handlePrice(args)
	case "categories":
		return "📂 Categories: " + strings.Join(h.catalog.Categories(), ", ")
	case "product":
		id, err := cast.ToInt64E(args)
		if err != nil {
			return "Usage: /product <id>"
		}
		p, ok := h.catalog.GetByID(id)
		if !ok {
			return fmt.Sprintf("Product #%d not found.", id)
		}
		return formatProduct(p)
	case "ask":
		if !h.assistant.Enabled() {
			return "The shop assistant is not available right now."
		}
		return h.handleAsk(ctx, chatID, args)
	case "stats":
		return formatStats(h.catalog.Stats())
	}

	st, err := h.state(ctx, chatID)
	if err != nil {
		h.log.WithError(err).WithField("chat_id", chatID).Error("failed to open chat state")
		return "⚠️ Something went wrong, please try again later."
	}

	switch command {
	case "add":
		return h.handleAdd(ctx, st, args)
	case "cart":
		return formatCart(st.cart.Lines(), st.cart.Summary())
	case "qty":
		return h.handleQuantity(ctx, st, args)
	case "remove":
		id, err := cast.ToInt64E(args)
		if err != nil {
			return "Usage: /remove <id>"
		}
		if err := st.cart.RemoveFromCart(ctx, id); err != nil {
			return h.fail(chatID, err)
		}
		return formatCart(st.cart.Lines(), st.cart.Summary())
	case "clear":
		if err := st.cart.ClearCart(ctx); err != nil {
			return h.fail(chatID, err)
		}
		return "🛒 Your cart is empty now."
	case "refresh":
		if err := h.catalog.Reload(ctx); err != nil {
			return h.fail(chatID, err)
		}
		if err := st.cart.Reload(ctx); err != nil {
			return h.fail(chatID, err)
		}
		return "🔄 Catalog and cart reloaded."
	case "login":
		return h.handleLogin(ctx, st, args)
	case "logout":
		if err := st.session.Logout(ctx); err != nil {
			return h.fail(chatID, err)
		}
		return "👋 Logged out."
	case "whoami":
		u, ok := st.session.Current()
		if !ok {
			return "You are not logged in. Use /login <email> <password>."
		}
		return fmt.Sprintf("👤 %s <%s> (%s)", u.Name, u.Email, u.Role)
	case "theme":
		return h.handleTheme(ctx, st, args)
	case "admin":
		return h.handleDashboard(ctx, st)
	case "newproduct":
		return h.handleNewProduct(ctx, st, args)
	case "editproduct":
		return h.handleEditProduct(ctx, st, args)
	case "deleteproduct":
		id, err := cast.ToInt64E(args)
		if err != nil {
			return "Usage: /deleteproduct <id>"
		}
		if err := h.admin.DeleteProduct(ctx, st.session, id); err != nil {
			return h.adminFail(chatID, err)
		}
		return fmt.Sprintf("🗑 Product #%d deleted.", id)
	default:
		return "Unknown command. /help for the list."
	}
}

func (h *BotHandler) handlePrice(args string) string {
	fields := strings.Fields(args)
	if len(fields) == 0 || len(fields) > 2 {
		return "Usage: /price <min> [max]  (use - to skip a bound)"
	}

	var filter entity.ProductFilter
	bounds := []**float64{&filter.MinPrice, &filter.MaxPrice}
	for i, f := range fields {
		if f == "-" {
			continue
		}
		v, err := cast.ToFloat64E(f)
		if err != nil {
			return fmt.Sprintf("%q is not a number.", f)
		}
		*bounds[i] = &v
	}
	return formatProductList(h.catalog.List(filter))
}

func (h *BotHandler) handleAdd(ctx context.Context, st *chatState, args string) string {
	id, err := cast.ToInt64E(args)
	if err != nil {
		return "Usage: /add <id>"
	}
	p, ok := h.catalog.GetByID(id)
	if !ok {
		return fmt.Sprintf("Product #%d not found.", id)
	}
	if !p.InStock() {
		return fmt.Sprintf("😔 %s is out of stock.", p.Name)
	}
	if err := st.cart.AddToCart(ctx, p); err != nil {
		return h.fail(st.chatID, err)
	}
	return fmt.Sprintf("✅ %s added to cart! (%d items in cart)", p.Name, st.cart.Summary().Items)
}

func (h *BotHandler) handleQuantity(ctx context.Context, st *chatState, args string) string {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return "Usage: /qty <id> <quantity>"
	}
	id, err := cast.ToInt64E(fields[0])
	if err != nil {
		return "Usage: /qty <id> <quantity>"
	}
	qty, err := cast.ToIntE(fields[1])
	if err != nil {
		return "Usage: /qty <id> <quantity>"
	}
	if err := st.cart.UpdateQuantity(ctx, id, qty); err != nil {
		return h.fail(st.chatID, err)
	}
	return formatCart(st.cart.Lines(), st.cart.Summary())
}

func (h *BotHandler) handleLogin(ctx context.Context, st *chatState, args string) string {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return "Usage: /login <email> <password>"
	}
	ok, err := st.session.Login(ctx, fields[0], fields[1])
	if err != nil {
		return h.fail(st.chatID, err)
	}
	if !ok {
		return "❌ Invalid email or password."
	}
	u, _ := st.session.Current()
	return fmt.Sprintf("✅ Welcome, %s!", u.Name)
}

func (h *BotHandler) handleTheme(ctx context.Context, st *chatState, args string) string {
	if args == "" {
		theme, err := st.session.ToggleTheme(ctx)
		if err != nil {
			return h.fail(st.chatID, err)
		}
		return fmt.Sprintf("🎨 Theme: %s", theme)
	}
	if err := st.session.SetTheme(ctx, entity.Theme(strings.ToLower(args))); err != nil {
		if errors.Is(err, usecase.ErrInvalidTheme) {
			return "Theme must be light or dark."
		}
		return h.fail(st.chatID, err)
	}
	return fmt.Sprintf("🎨 Theme: %s", st.session.Theme())
}

func (h *BotHandler) handleDashboard(ctx context.Context, st *chatState) string {
	d, err := h.admin.Dashboard(ctx, st.session)
	if err != nil {
		return h.adminFail(st.chatID, err)
	}
	return formatDashboard(d)
}

func (h *BotHandler) handleNewProduct(ctx context.Context, st *chatState, args string) string {
	draft, err := parseDraft(args)
	if err != nil {
		return err.Error()
	}
	p, err := h.admin.CreateProduct(ctx, st.session, draft)
	if err != nil {
		return h.adminFail(st.chatID, err)
	}
	return fmt.Sprintf("✅ Product #%d created.\n\n%s", p.ID, formatProduct(p))
}

func (h *BotHandler) handleEditProduct(ctx context.Context, st *chatState, args string) string {
	idStr, rest, _ := strings.Cut(args, " ")
	id, err := cast.ToInt64E(idStr)
	if err != nil {
		return "Usage: /editproduct <id> " + draftFormat
	}
	draft, err := parseDraft(rest)
	if err != nil {
		return err.Error()
	}
	if err := h.admin.UpdateProduct(ctx, st.session, id, draft); err != nil {
		return h.adminFail(st.chatID, err)
	}
	return fmt.Sprintf("✅ Product #%d updated.", id)
}

func (h *BotHandler) handleAsk(ctx context.Context, chatID int64, question string) string {
	if strings.TrimSpace(question) == "" {
		return "Usage: /ask <question>"
	}
	answer, err := h.assistant.Ask(ctx, chatID, question)
	if err != nil {
		return h.fail(chatID, err)
	}
	return answer
}

// handleDocument admin xlsx katalog yuklashi
func (h *BotHandler) handleDocument(ctx context.Context, chatID int64, doc *tgbotapi.Document) string {
	if !strings.HasSuffix(strings.ToLower(doc.FileName), ".xlsx") {
		return "Only .xlsx catalog files are supported."
	}
	st, err := h.state(ctx, chatID)
	if err != nil {
		return h.fail(chatID, err)
	}
	if !st.session.IsAdmin() {
		return "⛔ Only admins can import catalogs."
	}

	data, err := h.downloadFile(ctx, doc.FileID)
	if err != nil {
		return h.fail(chatID, err)
	}
	count, err := h.admin.ImportCatalog(ctx, st.session, data, doc.FileName)
	if err != nil {
		return h.adminFail(chatID, err)
	}
	return fmt.Sprintf("📦 Imported %d products from %s.", count, doc.FileName)
}

// downloadFile Telegram serveridan faylni yuklab olish
func (h *BotHandler) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	url, err := h.bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get file url")
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to download file")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("file download status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (h *BotHandler) fail(chatID int64, err error) string {
	h.log.WithError(err).WithField("chat_id", chatID).Error("command failed")
	return "⚠️ Something went wrong, please try again later."
}

func (h *BotHandler) adminFail(chatID int64, err error) string {
	switch {
	case errors.Is(err, usecase.ErrForbidden):
		return "⛔ Admin access required. Use /login first."
	case errors.Is(err, usecase.ErrInvalidDraft):
		return "❌ " + err.Error()
	case errors.Is(err, usecase.ErrProductNotFound):
		return "Product not found."
	default:
		return h.fail(chatID, err)
	}
}
