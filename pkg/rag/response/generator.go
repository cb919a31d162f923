package response

import (
	"context"
	"fmt"
	"strings"
	"time"

	"advisor-chat-be/internal/repository/contract"
	"advisor-chat-be/pkg/llm"
	"advisor-chat-be/pkg/rag/prompt"
	"advisor-chat-be/pkg/sitefetch"

	"go.uber.org/zap"
)

// Generator produces the assistant's reply. It prefers the configured model
// and degrades to deterministic topic templates when no provider is wired or
// the provider call fails, so the chat surface never goes dark.
type Generator struct {
	provider llm.LLMProvider // nil when running without a model
	timeout  time.Duration
	logger   *zap.Logger

	model       string
	temperature float64
	maxTokens   int
}

type Config struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

func DefaultConfig() Config {
	return Config{
		Model:       "gpt-4-turbo-preview",
		Temperature: 0.7,
		MaxTokens:   1000,
		Timeout:     30 * time.Second,
	}
}

func NewGenerator(provider llm.LLMProvider, cfg Config, logger *zap.Logger) *Generator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Generator{
		provider:    provider,
		timeout:     cfg.Timeout,
		logger:      logger,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

// Result reports whether the reply came from the model or the fallback.
type Result struct {
	Text     string
	Fallback bool
}

// Generate builds the augmented prompt and asks the model for a reply.
// history must end with the current user message. pages carry live site
// content and rank ahead of the retrieved chunks in the context block.
func (g *Generator) Generate(ctx context.Context, systemPrompt string, history []llm.Message, chunks []*contract.RetrievedChunk, pages []sitefetch.Page) *Result {
	if g.provider == nil {
		return &Result{Text: g.templateResponse(history, chunks), Fallback: true}
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	messages := prompt.Build(systemPrompt, pages, chunks, history)
	text, err := g.provider.Chat(callCtx, messages,
		llm.WithModel(g.model),
		llm.WithTemperature(g.temperature),
		llm.WithMaxTokens(g.maxTokens),
	)
	if err != nil || strings.TrimSpace(text) == "" {
		g.logger.Warn("model call failed, using template response", zap.Error(err))
		return &Result{Text: g.templateResponse(history, chunks), Fallback: true}
	}
	return &Result{Text: text}
}

func (g *Generator) templateResponse(history []llm.Message, chunks []*contract.RetrievedChunk) string {
	var userMessage string
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == "user" {
			userMessage = strings.ToLower(history[i].Content)
			break
		}
	}

	// Every fallback answer follows the three-part framework and always ends
	// with the scheduling prompt, matching what the system prompt asks of the
	// model.
	var body string
	switch {
	case strings.Contains(userMessage, "roth") || strings.Contains(userMessage, "conversion"):
		body = "**Where are you today?**\n" +
			"Are you still working, or already drawing retirement income? The value of a Roth conversion depends on the tax bracket you sit in right now and the years left before required minimum distributions begin.\n\n" +
			"**What options align with your goals?**\n" +
			"A Roth conversion moves money from a traditional IRA to a Roth IRA: you pay taxes now in exchange for tax-free growth and withdrawals later. Spreading conversions across several lower-income years keeps the extra income from pushing you into a higher bracket, while holding off preserves cash today but leaves future RMDs in play.\n\n" +
			"**What's the next best step?**\n" +
			"Review how much headroom remains in your current bracket, check how added income would affect Medicare premiums, and confirm you could pay the conversion tax from money outside the IRA."
	case strings.Contains(userMessage, "social security") || strings.Contains(userMessage, "timing"):
		body = "**Where are you today?**\n" +
			"How close are you to 62, and what other income would carry you if you waited to claim? Social Security timing turns on your health, household needs, and the rest of your income picture.\n\n" +
			"**What options align with your goals?**\n" +
			"Claiming at 62 gets you reduced benefits but more years of payments; waiting until 70 maximizes your monthly Social Security check, growing roughly 8% for each year you delay past full retirement age. For couples, the higher earner delaying also protects the survivor benefit.\n\n" +
			"**What's the next best step?**\n" +
			"Map your break-even age, list the income sources that would bridge the years while you delay, and weigh how claiming interacts with taxes on your other withdrawals."
	default:
		body = "**Where are you today?**\n" +
			"What stage of planning are you in: still accumulating, approaching the transition, or already retired? That shapes which levers matter most.\n\n" +
			"**What options align with your goals?**\n" +
			"I can help with retirement planning questions like Social Security timing, Roth conversions, tax strategies, withdrawal rates, and Medicare planning, and walk through the tradeoffs each one involves.\n\n" +
			"**What's the next best step?**\n" +
			"Pick the topic weighing on you most and ask away, or bring your questions straight to an advisor."
	}

	if sources := sourceLines(chunks); sources != "" {
		body += "\n\n**Sources:**\n" + sources
	}
	return body + "\n\n" + schedulingPrompt
}

// schedulingPrompt closes every fallback answer; the gate flow depends on
// the assistant always steering toward a booked call.
const schedulingPrompt = "Ready to go deeper? Schedule a complimentary clarity call with a Fiat Wealth Management advisor to talk through your situation."

func sourceLines(chunks []*contract.RetrievedChunk) string {
	if len(chunks) == 0 {
		return ""
	}
	n := len(chunks)
	if n > 2 {
		n = 2
	}
	lines := make([]string, 0, n)
	for _, c := range chunks[:n] {
		title := c.DocumentTitle
		if title == "" {
			title = "Document"
		}
		date := "N/A"
		if c.PublishedDate != nil {
			date = c.PublishedDate.Format("2006-01-02")
		}
		lines = append(lines, fmt.Sprintf("- %s (%s)", title, date))
	}
	return strings.Join(lines, "\n")
}
