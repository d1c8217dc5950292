package telegram

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/storefront/internal/domain/entity"
	"github.com/yourusername/storefront/internal/domain/repository"
	"github.com/yourusername/storefront/internal/infrastructure/parser"
	"github.com/yourusername/storefront/internal/infrastructure/storage"
	"github.com/yourusername/storefront/internal/usecase"
)

type fakeAssistant struct {
	enabled bool
}

func (f fakeAssistant) Enabled() bool { return f.enabled }

func (f fakeAssistant) Ask(ctx context.Context, chatID int64, question string) (string, error) {
	return "echo: " + question, nil
}

func newTestHandler(t *testing.T) (*BotHandler, *storage.MemoryKVStore) {
	t.Helper()
	ctx := context.Background()
	log, _ := test.NewNullLogger()
	kv := storage.NewMemoryKVStore()

	catalog, err := usecase.NewCatalog(ctx, kv, log)
	require.NoError(t, err)
	admin := usecase.NewAdmin(catalog, storage.NewMemoryAdminRepository(50), parser.NewExcelParser(log), log)

	openState := func(ctx context.Context, chatID int64) (CartStore, SessionStore, error) {
		ns := storage.NewPrefixedKVStore(kv, fmt.Sprintf("chat:%d:", chatID))
		cart, err := usecase.NewCart(ctx, ns, log)
		if err != nil {
			return nil, nil, err
		}
		session, err := usecase.NewSession(ctx, ns, log)
		if err != nil {
			return nil, nil, err
		}
		return cart, session, nil
	}

	return newBotHandler(nil, catalog, admin, fakeAssistant{enabled: true}, openState, log), kv
}

func TestHandleCommand_Browse(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx := context.Background()

	out := h.handleCommand(ctx, 1, "products", "wireless")
	assert.Contains(t, out, "#1 Wireless Headphones - $79.99")
	assert.Contains(t, out, "#7 Wireless Mouse")
	assert.NotContains(t, out, "Leather Wallet")

	out = h.handleCommand(ctx, 1, "category", "accessories")
	assert.Contains(t, out, "Leather Wallet")
	assert.NotContains(t, out, "Smart Watch")

	out = h.handleCommand(ctx, 1, "price", "- 15")
	assert.Contains(t, out, "USB-C Fast Cable")
	assert.Contains(t, out, "1 products")

	assert.Equal(t, "📂 Categories: all, accessories, electronics", h.handleCommand(ctx, 1, "categories", ""))
	assert.Contains(t, h.handleCommand(ctx, 1, "product", "2"), "only 8 left")
	assert.Contains(t, h.handleCommand(ctx, 1, "product", "99"), "not found")
	assert.Contains(t, h.handleCommand(ctx, 1, "product", "abc"), "Usage")
	assert.Contains(t, h.handleCommand(ctx, 1, "price", "cheap"), "not a number")
	assert.Contains(t, h.handleCommand(ctx, 1, "nope", ""), "Unknown command")
}

func TestHandleCommand_CartFlow(t *testing.T) {
	h, kv := newTestHandler(t)
	ctx := context.Background()

	assert.Contains(t, h.handleCommand(ctx, 1, "add", "7"), "(1 items in cart)")
	assert.Contains(t, h.handleCommand(ctx, 1, "add", "7"), "(2 items in cart)")
	h.handleCommand(ctx, 1, "add", "4")

	out := h.handleCommand(ctx, 1, "cart", "")
	assert.Contains(t, out, "#7 Wireless Mouse x2 = $69.98")
	assert.Contains(t, out, "Subtotal: $82.97")
	assert.Contains(t, out, "Tax (10%): $8.30")
	assert.Contains(t, out, "Shipping: Free")
	assert.Contains(t, out, "Total: $91.27")

	out = h.handleCommand(ctx, 1, "qty", "4 3")
	assert.Contains(t, out, "x3")

	// Boshqa chatning savati alohida
	assert.Equal(t, "🛒 Your cart is empty.", h.handleCommand(ctx, 2, "cart", ""))

	out = h.handleCommand(ctx, 1, "remove", "7")
	assert.NotContains(t, out, "Wireless Mouse")

	assert.Equal(t, "🛒 Your cart is empty now.", h.handleCommand(ctx, 1, "clear", ""))
	_, err := kv.Read(ctx, "chat:1:"+repository.KeyCart)
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)
}

func TestHandleCommand_AddOutOfStock(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx := context.Background()

	h.handleCommand(ctx, 1, "login", "admin@ecommerce.com admin123")
	out := h.handleCommand(ctx, 1, "editproduct",
		"4 USB-C Fast Cable|12.99|accessories|0|https://example.com/c.jpg|Braided fast charging cable")
	require.Contains(t, out, "updated")

	assert.Contains(t, h.handleCommand(ctx, 1, "add", "4"), "out of stock")
	assert.Equal(t, "🛒 Your cart is empty.", h.handleCommand(ctx, 1, "cart", ""))
}

func TestHandleCommand_Session(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx := context.Background()

	assert.Contains(t, h.handleCommand(ctx, 1, "whoami", ""), "not logged in")
	assert.Contains(t, h.handleCommand(ctx, 1, "login", "admin@ecommerce.com wrong"), "Invalid")
	assert.Contains(t, h.handleCommand(ctx, 1, "login", "customer@ecommerce.com customer123"), "Welcome, Customer User")
	assert.Contains(t, h.handleCommand(ctx, 1, "whoami", ""), "(customer)")

	assert.Equal(t, "🎨 Theme: dark", h.handleCommand(ctx, 1, "theme", ""))
	assert.Equal(t, "🎨 Theme: light", h.handleCommand(ctx, 1, "theme", "LIGHT"))
	assert.Contains(t, h.handleCommand(ctx, 1, "theme", "blue"), "light or dark")

	assert.Contains(t, h.handleCommand(ctx, 1, "logout", ""), "Logged out")
	assert.Contains(t, h.handleCommand(ctx, 1, "whoami", ""), "not logged in")
}

func TestHandleCommand_AdminGate(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx := context.Background()
	draft := "Desk Lamp|24.50|home|3|https://example.com/lamp.jpg|Warm LED desk lamp"

	assert.Contains(t, h.handleCommand(ctx, 1, "newproduct", draft), "Admin access required")
	assert.Contains(t, h.handleCommand(ctx, 1, "admin", ""), "Admin access required")

	h.handleCommand(ctx, 1, "login", "admin@ecommerce.com admin123")

	out := h.handleCommand(ctx, 1, "newproduct", draft)
	assert.Contains(t, out, "Product #13 created")
	assert.Contains(t, h.handleCommand(ctx, 2, "product", "13"), "Desk Lamp")

	assert.Contains(t, h.handleCommand(ctx, 1, "newproduct", "x|1|c|1|bad|short"), "invalid product")
	assert.Contains(t, h.handleCommand(ctx, 1, "newproduct", "only|three|parts"), "Format")
	assert.Contains(t, h.handleCommand(ctx, 1, "newproduct", "Lamp|cheap|home|1|https://e.com/a.jpg|long enough text"), "not a number")

	out = h.handleCommand(ctx, 1, "admin", "")
	assert.Contains(t, out, "Products: 13")
	assert.Contains(t, out, "#13 Desk Lamp (3 left)")
	assert.Contains(t, out, "create_product")

	assert.Contains(t, h.handleCommand(ctx, 1, "deleteproduct", "13"), "deleted")
	assert.Equal(t, "Product not found.", h.handleCommand(ctx, 1, "deleteproduct", "13"))
}

func TestHandleCommand_AskAndStats(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx := context.Background()

	assert.Equal(t, "echo: any mice?", h.handleCommand(ctx, 1, "ask", "any mice?"))
	assert.Contains(t, h.handleCommand(ctx, 1, "ask", ""), "Usage")

	h.assistant = fakeAssistant{}
	assert.Contains(t, h.handleCommand(ctx, 1, "ask", "hello"), "not available")

	out := h.handleCommand(ctx, 1, "stats", "")
	assert.Contains(t, out, "Products: 12")
	assert.Contains(t, out, "Low stock: 1")
}

func TestHandleCommand_Refresh(t *testing.T) {
	h, kv := newTestHandler(t)
	ctx := context.Background()
	h.handleCommand(ctx, 1, "add", "1")

	other, err := usecase.NewCart(ctx, storage.NewPrefixedKVStore(kv, "chat:1:"), h.log)
	require.NoError(t, err)
	require.NoError(t, other.AddToCart(ctx, entity.Product{ID: 2, Name: "Smart Watch Pro", Price: 199.99}))

	assert.Contains(t, h.handleCommand(ctx, 1, "refresh", ""), "reloaded")
	assert.Contains(t, h.handleCommand(ctx, 1, "cart", ""), "Smart Watch Pro")
}

func TestParseDraft(t *testing.T) {
	d, err := parseDraft(" Lamp | 24.5 | home | 3 | https://e.com/l.jpg | Warm light ")
	require.NoError(t, err)
	assert.Equal(t, entity.ProductDraft{
		Name:        "Lamp",
		Price:       24.5,
		Category:    "home",
		Stock:       3,
		Image:       "https://e.com/l.jpg",
		Description: "Warm light",
	}, d)

	_, err = parseDraft("Lamp|24.5|home|many|https://e.com/l.jpg|Warm light")
	assert.ErrorContains(t, err, "whole number")
}

type brokenCart struct {
	CartStore
}

func (brokenCart) AddToCart(ctx context.Context, product entity.Product) error {
	return errors.New("disk full")
}

func TestHandleCommand_FailureLogsChatID(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx := context.Background()
	log, hook := test.NewNullLogger()
	h.log = log

	h.openState = func(ctx context.Context, chatID int64) (CartStore, SessionStore, error) {
		session, err := usecase.NewSession(ctx, storage.NewMemoryKVStore(), log)
		if err != nil {
			return nil, nil, err
		}
		return brokenCart{}, session, nil
	}

	assert.Contains(t, h.handleCommand(ctx, 42, "add", "1"), "Something went wrong")
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, int64(42), hook.LastEntry().Data["chat_id"])
}

func TestState_OpensOutsideLock(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx := context.Background()
	open := h.openState

	entered := make(chan struct{})
	release := make(chan struct{})
	h.openState = func(ctx context.Context, chatID int64) (CartStore, SessionStore, error) {
		if chatID == 1 {
			close(entered)
			<-release
		}
		return open(ctx, chatID)
	}

	slow := make(chan error, 1)
	go func() {
		_, err := h.state(ctx, 1)
		slow <- err
	}()
	<-entered

	fast := make(chan error, 1)
	go func() {
		_, err := h.state(ctx, 2)
		fast <- err
	}()
	select {
	case err := <-fast:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("chat 2 waited for chat 1 to open")
	}

	close(release)
	require.NoError(t, <-slow)
}

func TestState_ConcurrentFirstContactSharesState(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx := context.Background()

	const n = 8
	got := make([]*chatState, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			st, err := h.state(ctx, 7)
			assert.NoError(t, err)
			got[i] = st
		}(i)
	}
	wg.Wait()

	for _, st := range got {
		assert.Same(t, got[0], st)
	}
	assert.Equal(t, int64(7), got[0].chatID)
}
