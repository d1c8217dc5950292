package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/storefront/internal/domain/entity"
	"github.com/yourusername/storefront/internal/domain/repository"
)

// ErrAssistantDisabled AI kaliti sozlanmagan
var ErrAssistantDisabled = errors.New("assistant is not configured")

const assistantHistoryLimit = 10

// Assistant katalog bo'yicha savollarga javob beruvchi yordamchi
type Assistant struct {
	aiRepo   repository.AIRepository
	chatRepo repository.ChatRepository
	catalog  *Catalog
	log      logrus.FieldLogger
}

// NewAssistant yangi Assistant yaratish; aiRepo nil bo'lsa o'chirilgan
func NewAssistant(
	aiRepo repository.AIRepository,
	chatRepo repository.ChatRepository,
	catalog *Catalog,
	log logrus.FieldLogger,
) *Assistant {
	return &Assistant{
		aiRepo:   aiRepo,
		chatRepo: chatRepo,
		catalog:  catalog,
		log:      log.WithField("component", "assistant"),
	}
}

// Enabled AI ulanganmi
func (a *Assistant) Enabled() bool {
	return a.aiRepo != nil
}

// Ask savolga katalog asosida javob berish
func (a *Assistant) Ask(ctx context.Context, chatID int64, question string) (string, error) {
	if !a.Enabled() {
		return "", ErrAssistantDisabled
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return "", errors.New("empty question")
	}

	// AI so'rovlari osilib qolmasligi uchun timeout
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	history, err := a.chatRepo.GetHistory(ctx, chatID, assistantHistoryLimit)
	if err != nil {
		return "", errors.Wrap(err, "failed to get history")
	}

	answer, err := a.aiRepo.GenerateAnswer(ctx, question, CatalogText(a.catalog.All()), history)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate answer")
	}

	msg := entity.Message{
		ID:        uuid.New().String(),
		ChatID:    chatID,
		Question:  question,
		Answer:    answer,
		Timestamp: time.Now(),
	}
	if err := a.chatRepo.SaveMessage(ctx, msg); err != nil {
		a.log.WithError(err).WithField("chat_id", chatID).Warn("failed to save assistant message")
	}

	return answer, nil
}

// ClearHistory suhbat tarixini tozalash
func (a *Assistant) ClearHistory(ctx context.Context, chatID int64) error {
	return a.chatRepo.ClearHistory(ctx, chatID)
}

// CatalogText mahsulotlarni kategoriyalar bo'yicha matn ko'rinishida (AI uchun)
func CatalogText(products []entity.Product) string {
	if len(products) == 0 {
		return "=== AVAILABLE PRODUCTS ===\n(none)\n"
	}

	byCategory := make(map[string][]entity.Product)
	for _, p := range products {
		byCategory[p.Category] = append(byCategory[p.Category], p)
	}
	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var sb strings.Builder
	sb.WriteString("=== AVAILABLE PRODUCTS ===\n\n")
	for _, category := range categories {
		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, p := range byCategory[category] {
			sb.WriteString(fmt.Sprintf("#%d %s - $%.2f", p.ID, p.Name, p.Price))
			if p.InStock() {
				sb.WriteString(fmt.Sprintf(" (in stock: %d)", p.Stock))
			} else {
				sb.WriteString(" (out of stock)")
			}
			if p.Description != "" {
				sb.WriteString(fmt.Sprintf("\n   %s", p.Description))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
