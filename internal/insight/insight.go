// Package insight renders the deterministic eligibility analysis and the
// score feature breakdown of an application.
package insight

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/Veraticus/finyo-console/internal/model"
)

// Tier thresholds, compared against the score rounded to two decimals.
const (
	HighThreshold     = 0.7
	ModerateThreshold = 0.4
)

// NotAvailable stands in for missing values.
const NotAvailable = "N/A"

// NoFeaturesMessage is shown when an application carries no features.
const NoFeaturesMessage = "No feature data available for this application."

// Tier is the confidence band of a score.
type Tier int

// Tiers from most to least confident.
const (
	TierHigh Tier = iota
	TierModerate
	TierLow
)

func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierModerate:
		return "moderate"
	default:
		return "low"
	}
}

// Classify returns the tier of score and its two-decimal rendering.
// A missing score is low confidence.
func Classify(score *float64) (Tier, string) {
	if score == nil {
		return TierLow, NotAvailable
	}
	text := strconv.FormatFloat(*score, 'f', 2, 64)
	rounded, _ := strconv.ParseFloat(text, 64)
	switch {
	case rounded > HighThreshold:
		return TierHigh, text
	case rounded > ModerateThreshold:
		return TierModerate, text
	default:
		return TierLow, text
	}
}

// Summarize writes the eligibility analysis of app.
func Summarize(app model.Application) string {
	tier, score := Classify(app.Score)
	decision := string(app.Decision)
	if decision == "" {
		decision = NotAvailable
	}

	var b strings.Builder
	fmt.Fprintf(&b, "The applicant (ID: %d) has applied for a loan of %s AED. ",
		app.ApplicantID, strconv.FormatFloat(app.RequestedAmount, 'f', -1, 64))

	switch tier {
	case TierHigh:
		fmt.Fprintf(&b, "With a high confidence score of %s, eligibility is strong. "+
			"The AI's initial decision is to '%s'. The applicant shows a reliable financial history.", score, decision)
	case TierModerate:
		fmt.Fprintf(&b, "The confidence score is moderate at %s. The AI suggests a '%s', "+
			"possibly with adjusted terms, to mitigate potential risk. Further review of income stability is recommended.", score, decision)
	default:
		fmt.Fprintf(&b, "With a low confidence score of %s, this application presents a higher risk. "+
			"The AI's decision is '%s', indicating a need for significant adjustments or manual intervention.", score, decision)
	}
	return b.String()
}

// Feature is one named input of the score.
type Feature struct {
	Key   string
	Name  string
	Value string
}

// Features lists app's score features sorted by key, with readable names
// and numbers to four decimals. It returns nil when there are none.
func Features(app model.Application) []Feature {
	if len(app.Features) == 0 {
		return nil
	}

	keys := make([]string, 0, len(app.Features))
	for key := range app.Features {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	features := make([]Feature, 0, len(keys))
	for _, key := range keys {
		features = append(features, Feature{
			Key:   key,
			Name:  FeatureName(key),
			Value: FormatFeatureValue(app.Features[key]),
		})
	}
	return features
}

// FeatureName turns a snake_case key into a title-cased label.
func FeatureName(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// FormatFeatureValue renders a decoded JSON value.
func FormatFeatureValue(v any) string {
	switch value := v.(type) {
	case nil:
		return NotAvailable
	case float64:
		return strconv.FormatFloat(value, 'f', 4, 64)
	case int:
		return strconv.FormatFloat(float64(value), 'f', 4, 64)
	case int64:
		return strconv.FormatFloat(float64(value), 'f', 4, 64)
	case json.Number:
		if f, err := value.Float64(); err == nil {
			return strconv.FormatFloat(f, 'f', 4, 64)
		}
		return value.String()
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	default:
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprint(value)
		}
		return string(raw)
	}
}
