// Package generator produces structured event descriptors for the
// simulation, either from an OpenAI-compatible chat-completions
// endpoint or from a deterministic built-in fallback. The contract with
// the engine is strict: generation never mutates player state, and any
// failure (network, cancellation, malformed output) degrades to the
// fallback event rather than surfacing an error.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/fortunesim/fortune-simulator-backend/internal/model"
)

const defaultModel = "gpt-4o-mini"

// Client calls the external event generator. A nil client, or one
// without an API key, serves fallback events only.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	rng        *rand.Rand
}

// NewClient creates a generator client. An empty apiKey disables the
// external call entirely. baseURL defaults to the OpenAI endpoint.
func NewClient(apiKey, baseURL, modelName string, rng *rand.Rand) *Client {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if modelName == "" {
		modelName = defaultModel
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   modelName,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		rng: rng,
	}
}

// Enabled reports whether the external generator can be called.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Generate produces the next event for the player. The external call is
// attempted when enabled; on any error, including context cancellation,
// the deterministic fallback event is returned instead. Player state is
// never touched.
func (c *Client) Generate(ctx context.Context, p *model.Player) *model.EventDescriptor {
	if !c.Enabled() {
		return Fallback(p)
	}

	category := c.pickCategory(p)
	raw, err := c.complete(ctx, systemPrompt, userPrompt(p, category))
	if err != nil {
		return Fallback(p)
	}

	event, err := ParseEvent([]byte(raw), p)
	if err != nil {
		return Fallback(p)
	}
	return event
}

// chat-completions request/response shapes, reduced to what we use.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.9,
		MaxTokens:   800,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generator request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generator returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode generator response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("generator returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// ParseEvent validates and normalizes a raw generator payload:
// code fences are stripped, timeMonths is clamped to the player's
// remaining months, a missing category defaults to daily, and every
// choice gets a non-nil effect mapping. An event without a title or
// choices is rejected.
func ParseEvent(raw []byte, p *model.Player) (*model.EventDescriptor, error) {
	text := strings.TrimSpace(string(raw))
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}

	var event model.EventDescriptor
	if err := json.Unmarshal([]byte(text), &event); err != nil {
		return nil, fmt.Errorf("failed to parse event JSON: %w", err)
	}
	if event.Title == "" || len(event.Choices) == 0 {
		return nil, fmt.Errorf("event is missing title or choices")
	}

	if event.TimeMonths < 1 {
		event.TimeMonths = 1
	}
	if remaining := p.RemainingMonths(); event.TimeMonths > remaining {
		event.TimeMonths = remaining
	}
	if event.Category == "" {
		event.Category = model.CategoryDaily
	}

	for i := range event.Choices {
		if event.Choices[i].Text == "" {
			event.Choices[i].Text = "Continue"
		}
		if event.Choices[i].Effect == nil {
			event.Choices[i].Effect = map[string]any{}
		}
	}
	return &event, nil
}

// categoryWeight pairs an event category with its selection weight.
type categoryWeight struct {
	category string
	weight   int
}

// pickCategory selects the event category, with weights nudged by the
// player's situation: singles past 25 and childless couples see more
// life events, cash-rich renters see housing, and a strong specialty
// attracts opportunities in it.
func (c *Client) pickCategory(p *model.Player) string {
	weights := []categoryWeight{
		{model.CategoryInvestment, 30},
		{model.CategoryLearning, 15},
		{model.CategoryCareer, 20},
		{model.CategoryLifeEvent, 25},
		{model.CategoryDaily, 10},
	}

	bump := func(category string, by int) {
		for i := range weights {
			if weights[i].category == category {
				weights[i].weight += by
			}
		}
	}

	if !p.Life.Married && p.Age > 25 {
		bump(model.CategoryLifeEvent, 15)
	}
	if p.Life.Married && p.Life.Children == 0 && p.Age < 40 {
		bump(model.CategoryLifeEvent, 10)
	}
	if len(p.Life.Houses) == 0 && p.Stats.Cash > 500000 {
		bump(model.CategoryLifeEvent, 10)
	}
	if _, level := p.TopSkill(); level > 30 {
		bump(model.CategoryInvestment, 10)
	}

	total := 0
	for _, w := range weights {
		total += w.weight
	}
	roll := c.rng.Float64() * float64(total)
	for _, w := range weights {
		roll -= float64(w.weight)
		if roll <= 0 {
			return w.category
		}
	}
	return weights[0].category
}

const systemPrompt = `You are the event generator for a personal-finance life simulator. Generate one event matching the requested category.

Time consumption: investment 1-2 months, learning 2-3, career 1-2, life_event 2-6, daily 1. The event's timeMonths must not exceed the player's remaining months.

Effect keys: cash, income, monthlyExpense, insight, skill_stock, skill_fund, skill_real_estate, skill_crypto, skill_business, skill_career.

Optional choice actions: "marry", "baby", "buy_house" (pair with loan), "buy_car", "buy_investment" (pair with investment: {type: stock|fund|crypto|business, name, amount}). Loans: {type: mortgage|car_loan|consumer, amount, years}.

Respond with JSON only:
{"category": "...", "timeMonths": 1, "title": "...", "description": "...", "choices": [{"text": "...", "resultText": "...", "effect": {"cash": 0}, "action": "...", "investment": {...}, "loan": {...}}]}

Every event needs 2-3 choices: an active option that commits resources, a conservative option, and optionally a middle ground. Never a single choice.`

// userPrompt summarizes the player for the generator.
func userPrompt(p *model.Player, category string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Player state:\n")
	fmt.Fprintf(&b, "- age: %d, month: %d (%d months left this year)\n", p.Age, p.Month, p.RemainingMonths())
	fmt.Fprintf(&b, "- life stage: %s\n", model.StageForAge(p.Age).Name)
	fmt.Fprintf(&b, "- wealth: %.0f, cash: %.0f, annual income: %.0f, monthly outlay: %.0f\n",
		p.Stats.Wealth, p.Stats.Cash, p.Stats.Income, p.MonthlyOutlay())
	fmt.Fprintf(&b, "- insight: %d/100\n", p.Stats.Insight)
	fmt.Fprintf(&b, "- married: %t, children: %d, houses: %d, cars: %d\n",
		p.Life.Married, p.Life.Children, len(p.Life.Houses), len(p.Life.Cars))
	fmt.Fprintf(&b, "- total debt: %.0f\n", p.TotalDebt())
	fmt.Fprintf(&b, "- skills: stock %d, fund %d, real_estate %d, crypto %d, business %d, career %d\n",
		p.SkillLevel(model.FieldStock), p.SkillLevel(model.FieldFund), p.SkillLevel(model.FieldRealEstate),
		p.SkillLevel(model.FieldCrypto), p.SkillLevel(model.FieldBusiness), p.SkillLevel(model.FieldCareer))

	fmt.Fprintf(&b, "\nGenerate one %q event.%s\n", category, hints(p))
	fmt.Fprintf(&b, "The event must not consume more than %d months.\n", p.RemainingMonths())
	return b.String()
}

// hints gives the generator situational nudges derived from state.
func hints(p *model.Player) string {
	var out []string
	if !p.Life.Married && p.Age > 26 {
		out = append(out, "the player has been single for a while; dating or marriage events fit")
	}
	if p.Life.Married && p.Life.Children == 0 && p.Age > 28 {
		out = append(out, "the player is married without children; family events fit")
	}
	if len(p.Life.Houses) == 0 && p.Stats.Cash > 300000 {
		out = append(out, "the player has savings but no home; housing events fit")
	}
	if len(p.Life.Cars) == 0 && p.Stats.Cash > 150000 {
		out = append(out, "the player has no car")
	}
	if p.TotalDebt() > p.Stats.Income*2 {
		out = append(out, "debt is high relative to income; repayment pressure fits")
	}
	if field, level := p.TopSkill(); level > 40 {
		out = append(out, fmt.Sprintf("the player is strong in %s (%d); better opportunities there fit", field, level))
	}
	if len(out) == 0 {
		return ""
	}
	return " Hints: " + strings.Join(out, "; ") + "."
}
