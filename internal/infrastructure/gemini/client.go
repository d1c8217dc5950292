package gemini

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/pkg/errors"
	"github.com/yourusername/storefront/internal/domain/entity"
	"google.golang.org/api/option"
)

const systemInstruction = `You are the shop assistant of a small online store.
Answer the customer's question using ONLY the product list you are given.

Rules:
1. Never invent products, prices or stock levels. Copy names and prices exactly from the list.
2. If a product is in the list, say it is available and show its price and stock.
3. If nothing matches, say so and suggest the closest items from the same category.
4. Prices are in dollars with two decimals. Shipping is free, tax is 10%.
5. Keep answers short: a sentence or two, then a bullet list of products if relevant.`

// Client Gemini asosidagi shop assistant
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
	sem    chan struct{}
	mu     sync.Mutex
	last   time.Time
	delay  time.Duration
}

// NewClient yangi Gemini AI client yaratish
func NewClient(ctx context.Context, apiKey, modelName string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Gemini client")
	}

	model := client.GenerativeModel(modelName)

	// Aniq javoblar uchun past temperatura
	model.SetTemperature(0.3)
	model.SetTopK(20)
	model.SetTopP(0.9)
	model.SetMaxOutputTokens(1024)

	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}

	return &Client{
		client: client,
		model:  model,
		sem:    make(chan struct{}, 3), // bir vaqtda 3 ta so'rovdan oshirma
		delay:  350 * time.Millisecond,
	}, nil
}

// GenerateAnswer katalog va tarix bilan javob yaratish
func (g *Client) GenerateAnswer(ctx context.Context, question, catalog string, history []entity.Message) (string, error) {
	release, err := g.acquire(ctx)
	if err != nil {
		return "", err
	}
	defer release()

	resp, err := g.model.GenerateContent(ctx, buildParts(question, catalog, history)...)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate response")
	}

	if len(resp.Candidates) == 0 {
		return "", errors.New("no response candidates")
	}

	return extractText(resp), nil
}

// buildParts so'rov qismlarini tayyorlash: katalog, tarix, savol
func buildParts(question, catalog string, history []entity.Message) []genai.Part {
	parts := make([]genai.Part, 0, len(history)*2+2)
	parts = append(parts, genai.Text(catalog))

	for _, msg := range history {
		if msg.Question != "" {
			parts = append(parts, genai.Text(fmt.Sprintf("Customer: %s", msg.Question)))
		}
		if msg.Answer != "" {
			parts = append(parts, genai.Text(fmt.Sprintf("Assistant: %s", msg.Answer)))
		}
	}

	parts = append(parts, genai.Text(question))
	return parts
}

// extractText javobdan textni ajratib olish
func extractText(resp *genai.GenerateContentResponse) string {
	var result strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				result.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(result.String())
}

func (g *Client) acquire(ctx context.Context) (func(), error) {
	select {
	case g.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	if !g.last.IsZero() {
		if sleep := g.delay - now.Sub(g.last); sleep > 0 {
			time.Sleep(sleep)
			now = time.Now()
		}
	}
	g.last = now

	return func() {
		<-g.sem
	}, nil
}

// Close client ni yopish
func (g *Client) Close() error {
	return g.client.Close()
}
