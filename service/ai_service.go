package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"solvency-engine/domain"
)

const defaultAIURL = "https://api.openai.com/v1/chat/completions"

// ratioNames follows the X1..X5 order of WeightedContributions.
var ratioNames = [5]string{
	"working capital to total assets",
	"retained earnings to total assets",
	"EBIT to total assets",
	"market value of equity to total liabilities",
	"sales to total assets",
}

// AIService writes a short narrative for a score. Without an API key it
// falls back to a deterministic explanation.
type AIService struct {
	apiKey     string
	apiURL     string
	model      string
	enabled    bool
	httpClient *http.Client
}

type OpenAIRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type OpenAIResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		apiKey:  apiKey,
		apiURL:  defaultAIURL,
		model:   "gpt-4o-mini",
		enabled: apiKey != "",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ExplainScore describes which ratios drive result.
func (s *AIService) ExplainScore(
	ctx context.Context,
	company string,
	ratios domain.Ratios,
	result domain.ScoreResult,
) string {
	if !s.enabled {
		return s.generateFallbackExplanation(company, ratios, result)
	}

	c := WeightedContributions(ratios)
	prompt := fmt.Sprintf(`Explain this Altman Z-Score result for %s to a credit analyst.

RESULT:
- Z-Score: %.2f
- Status: %s
- Retained earnings / total assets: %.2f

WEIGHTED CONTRIBUTIONS:
- 1.2 x %s: %.3f
- 1.4 x %s: %.3f
- 3.3 x %s: %.3f
- 0.6 x %s: %.3f
- 1.0 x %s: %.3f

NOTES:
- Working capital is approximated by total assets minus total liabilities.
- Tiers: above 2.99 SAFE, 1.81 to 2.99 CAUTION, 1.81 or below DISTRESS.

Write 2-3 sentences naming the ratios that drive the score.`,
		company, result.ZScore, result.Tier.Label(), result.RetainedEarningsRatio,
		ratioNames[0], c[0], ratioNames[1], c[1], ratioNames[2], c[2],
		ratioNames[3], c[3], ratioNames[4], c[4])

	explanation, err := s.callLLM(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Str("company", company).Msg("AI explanation failed, using fallback")
		return s.generateFallbackExplanation(company, ratios, result)
	}

	return explanation
}

func (s *AIService) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := OpenAIRequest{
		Model: s.model,
		Messages: []Message{
			{
				Role:    "system",
				Content: "You are a credit risk analyst. You explain bankruptcy risk models precisely and briefly, citing the numbers you are given.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: 200,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var openAIResp OpenAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openAIResp); err != nil {
		return "", err
	}

	if len(openAIResp.Choices) == 0 {
		return "", fmt.Errorf("no response from AI")
	}

	return openAIResp.Choices[0].Message.Content, nil
}

// KeyDrivers returns the indexes (0..4 for X1..X5) of the largest and the
// smallest weighted contribution.
func KeyDrivers(ratios domain.Ratios) (strongest, weakest int) {
	c := WeightedContributions(ratios)
	for i := 1; i < len(c); i++ {
		if c[i] > c[strongest] {
			strongest = i
		}
		if c[i] < c[weakest] {
			weakest = i
		}
	}
	return strongest, weakest
}

func (s *AIService) generateFallbackExplanation(
	company string,
	ratios domain.Ratios,
	result domain.ScoreResult,
) string {
	c := WeightedContributions(ratios)
	strongest, weakest := KeyDrivers(ratios)

	var outlook string
	switch result.Tier {
	case domain.TierSafe:
		outlook = "The score sits in the safe zone, where default within two years is unlikely."
	case domain.TierCaution:
		outlook = "The score sits in the caution zone; the company warrants monitoring."
	default:
		outlook = "The score sits in the distress zone, signalling a high probability of default."
	}

	return fmt.Sprintf("%s scores %.2f (%s). The largest contribution comes from %s (%+.2f) and the weakest from %s (%+.2f). %s",
		company, result.ZScore, result.Tier.Label(),
		ratioNames[strongest], round2(c[strongest]),
		ratioNames[weakest], round2(c[weakest]),
		outlook)
}

// RatioName returns the human name of ratio index i (0..4).
func RatioName(i int) string {
	if i < 0 || i >= len(ratioNames) {
		return ""
	}
	return ratioNames[i]
}
