// internal/classification/classifier.go
package classification

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	apperrors "salamatbot/internal/common/errors"
	"salamatbot/internal/common/llm"
	"salamatbot/internal/common/logger"
	"salamatbot/internal/common/metrics"
	"salamatbot/internal/models"
)

const (
	// ruleConfidenceThreshold short-circuits the AI pass: a rule-based result
	// at or above it is trusted outright, so no network call is made.
	ruleConfidenceThreshold = 0.7

	maxSecondaryIntents = 2

	aiConfidenceFloor = 0.1
	confidenceCeiling = 0.95
)

// Classifier assigns one of the six medical intents to a free-text user
// message using the cheapest sufficiently-confident method: a rule-based
// keyword/pattern pass first, then an optional AI pass.
type Classifier struct {
	ai     llm.Client // nil when no API key was supplied
	logger logger.Logger
}

func NewClassifier(ai llm.Client, log logger.Logger) *Classifier {
	return &Classifier{
		ai:     ai,
		logger: log.WithFields(map[string]interface{}{"component": "intent-classifier"}),
	}
}

// ClassifyByRules scores the message against the per-intent keyword/pattern
// tables. Returns nil when nothing matched; that is not an error.
func (c *Classifier) ClassifyByRules(message string) *models.ClassificationResult {
	normalized := strings.ToLower(strings.TrimSpace(message))
	if normalized == "" {
		return nil
	}

	scores := make(map[models.Intent]int, len(intentPatterns))
	for _, p := range intentPatterns {
		score := 0
		for _, keyword := range p.keywords {
			if strings.Contains(normalized, keyword) {
				score++
			}
		}
		for _, pattern := range p.patterns {
			if pattern.MatchString(normalized) {
				score += 2
			}
		}
		scores[p.intent] = score
	}

	// Strict maximum; ties break toward the first-declared intent.
	var best models.Intent
	maxScore := 0
	for _, p := range intentPatterns {
		if scores[p.intent] > maxScore {
			maxScore = scores[p.intent]
			best = p.intent
		}
	}
	if maxScore == 0 {
		return nil
	}

	// Short keyword-dense messages score higher confidence than long diffuse ones.
	wordCount := len(strings.Fields(normalized))
	confidence := float64(maxScore)/float64(wordCount)*2 + 0.3
	if confidence > confidenceCeiling {
		confidence = confidenceCeiling
	}

	return &models.ClassificationResult{
		Intent:           best,
		Confidence:       confidence,
		Method:           models.MethodRuleBased,
		SecondaryIntents: secondaryIntents(scores, best),
		Reasoning:        fmt.Sprintf("Rule-based classification: %d matches found", maxScore),
	}
}

func secondaryIntents(scores map[models.Intent]int, primary models.Intent) []models.Intent {
	type scored struct {
		intent models.Intent
		score  int
		order  int
	}
	var candidates []scored
	for i, p := range intentPatterns {
		if p.intent == primary || scores[p.intent] == 0 {
			continue
		}
		candidates = append(candidates, scored{p.intent, scores[p.intent], i})
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		if candidates[a].score != candidates[b].score {
			return candidates[a].score > candidates[b].score
		}
		return candidates[a].order < candidates[b].order
	})
	if len(candidates) > maxSecondaryIntents {
		candidates = candidates[:maxSecondaryIntents]
	}
	out := make([]models.Intent, 0, len(candidates))
	for _, s := range candidates {
		out = append(out, s.intent)
	}
	return out
}

type aiClassification struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// ClassifyByAI asks the chat-completion endpoint for a strict JSON
// classification. Malformed responses and intents outside the closed set fail
// with a CLASSIFICATION_FAILED error; the caller falls back.
func (c *Classifier) ClassifyByAI(ctx context.Context, message string) (*models.ClassificationResult, error) {
	if c.ai == nil {
		return nil, apperrors.New(apperrors.ErrCodeClassificationFailed, "no AI client configured")
	}

	content, err := c.ai.Chat(ctx, llm.Request{
		Messages:    []llm.Message{{Role: "user", Content: classificationPrompt(message)}},
		Temperature: 0.1,
		MaxTokens:   150,
		Purpose:     "intent_classification",
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeClassificationFailed, "AI classification call failed", err)
	}

	var parsed aiClassification
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &parsed); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeClassificationFailed, "AI classification response is not valid JSON", err)
	}

	intent, ok := models.ParseIntent(parsed.Intent)
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeIntentOutOfRange,
			fmt.Sprintf("AI returned unknown intent %q", parsed.Intent))
	}

	// Never absolute certainty, never near-zero.
	confidence := parsed.Confidence
	if confidence < aiConfidenceFloor {
		confidence = aiConfidenceFloor
	}
	if confidence > confidenceCeiling {
		confidence = confidenceCeiling
	}

	return &models.ClassificationResult{
		Intent:     intent,
		Confidence: confidence,
		Method:     models.MethodAIBased,
		Reasoning:  parsed.Reasoning,
	}, nil
}

// Classify is the public hybrid entry point. It never returns an error: every
// failure path degrades to the rule-based result or the synthetic default
// (symptom reporting at 0.3, a fixed product decision).
func (c *Classifier) Classify(ctx context.Context, message string) *models.ClassificationResult {
	ruleResult := c.ClassifyByRules(message)

	if ruleResult != nil && ruleResult.Confidence >= ruleConfidenceThreshold {
		metrics.ClassificationsTotal.WithLabelValues(string(ruleResult.Method), string(ruleResult.Intent)).Inc()
		return ruleResult
	}

	if c.ai != nil {
		aiResult, err := c.ClassifyByAI(ctx, message)
		if err != nil {
			c.logger.WithError(err).Warn("AI classification failed, falling back", map[string]interface{}{
				"hasRuleResult": ruleResult != nil,
			})
		} else {
			result := c.combine(ruleResult, aiResult)
			metrics.ClassificationsTotal.WithLabelValues(string(result.Method), string(result.Intent)).Inc()
			return result
		}
	}

	if ruleResult != nil {
		metrics.ClassificationsTotal.WithLabelValues(string(ruleResult.Method), string(ruleResult.Intent)).Inc()
		return ruleResult
	}

	fallback := &models.ClassificationResult{
		Intent:     models.IntentSymptomReporting,
		Confidence: 0.3,
		Method:     models.MethodFallback,
		Reasoning:  "All classification methods failed, defaulting to symptom reporting",
	}
	metrics.ClassificationsTotal.WithLabelValues(string(fallback.Method), string(fallback.Intent)).Inc()
	return fallback
}

// combine merges agreeing rule and AI results: corroboration keeps the
// rule_based method but raises confidence to min(0.95, avg + 0.1).
func (c *Classifier) combine(ruleResult, aiResult *models.ClassificationResult) *models.ClassificationResult {
	if ruleResult == nil || aiResult.Intent != ruleResult.Intent {
		return aiResult
	}

	confidence := (ruleResult.Confidence+aiResult.Confidence)/2 + 0.1
	if confidence > confidenceCeiling {
		confidence = confidenceCeiling
	}

	return &models.ClassificationResult{
		Intent:           aiResult.Intent,
		Confidence:       confidence,
		Method:           models.MethodRuleBased,
		SecondaryIntents: ruleResult.SecondaryIntents,
		Reasoning:        fmt.Sprintf("Both rule-based and AI agreed on %s", aiResult.Intent),
	}
}

func classificationPrompt(message string) string {
	return fmt.Sprintf(`You are a medical intent classifier for Persian language queries. Classify the following Persian medical message into exactly ONE of these categories:

1. SYMPTOM_REPORTING - Patient describing physical symptoms, pain, discomfort, or health issues they're experiencing
2. MEDICATION_QUERIES - Questions about medications, drugs, dosage, side effects, interactions
3. INFORMATION_SEEKING - General medical questions, wanting to learn about conditions, treatments, procedures
4. CHRONIC_DISEASE_MANAGEMENT - Managing ongoing conditions like diabetes, hypertension, heart disease
5. DIAGNOSTIC_RESULT_INTERPRETATION - Questions about test results, lab values, medical reports
6. PREVENTIVE_CARE_WELLNESS - Prevention, lifestyle, diet, exercise, wellness, healthy habits

Message: %q

Respond with ONLY a JSON object in this exact format:
{
  "intent": "category_name",
  "confidence": 0.85,
  "reasoning": "Brief explanation in Persian"
}

Do not include any other text or explanation.`, message)
}
