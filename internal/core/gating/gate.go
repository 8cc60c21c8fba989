package gating

import (
	"fmt"
	"strconv"
	"strings"

	"news-classifier-registry/internal/core/domain"
)

// EvaluatePerformance checks a run's metrics against the performance
// floors. The returned reason lists every failed check, or confirms the
// pass.
func EvaluatePerformance(metrics map[string]float64, c Criteria) (bool, string) {
	var reasons []string

	accuracy := metrics[domain.MetricCategoryAccuracy]
	if accuracy < c.MinAccuracy {
		reasons = append(reasons, fmt.Sprintf("accuracy %.2f%% below %.2f%% threshold", accuracy*100, c.MinAccuracy*100))
	}

	f1 := metrics[domain.MetricCategoryF1]
	if f1 < c.MinF1Score {
		reasons = append(reasons, fmt.Sprintf("F1 score %.3f below %.3f threshold", f1, c.MinF1Score))
	}

	precision := metrics[domain.MetricCategoryPrecision]
	if precision < c.MinPrecision {
		reasons = append(reasons, fmt.Sprintf("precision %.3f below %.3f threshold", precision, c.MinPrecision))
	}

	recall := metrics[domain.MetricCategoryRecall]
	if recall < c.MinRecall {
		reasons = append(reasons, fmt.Sprintf("recall %.3f below %.3f threshold", recall, c.MinRecall))
	}

	if len(reasons) > 0 {
		return false, strings.Join(reasons, "; ")
	}

	return true, "all performance criteria met"
}

// CompareToChampion decides whether a new accuracy displaces the current
// champion. The improvement must meet the configured margin.
func CompareToChampion(newAccuracy, championAccuracy float64, c Criteria) (bool, string) {
	improvement := newAccuracy - championAccuracy

	if improvement < c.MinAccuracyImprovement {
		return false, fmt.Sprintf(
			"accuracy improvement %.2f%% below %.2f%% threshold (champion: %.2f%%, new: %.2f%%)",
			improvement*100, c.MinAccuracyImprovement*100, championAccuracy*100, newAccuracy*100,
		)
	}

	return true, fmt.Sprintf("beats champion by %.2f%%", improvement*100)
}

// CostTradeoff evaluates an accuracy delta against a relative cost delta.
// Accepts: similar accuracy with significant savings, better accuracy with
// an acceptable cost increase, or better accuracy at lower cost.
func CostTradeoff(accuracyDiff, costDiff float64, c Criteria) (bool, string) {
	abs := accuracyDiff
	if abs < 0 {
		abs = -abs
	}

	if abs < 0.05 && costDiff < -c.MinCostSavings {
		return true, fmt.Sprintf("similar accuracy (%+.2f%%) with %.0f%% cost savings", accuracyDiff*100, -costDiff*100)
	}
	if accuracyDiff > 0.05 && costDiff < c.MaxCostIncrease {
		return true, fmt.Sprintf("better accuracy (%+.2f%%) with acceptable cost increase (%+.0f%%)", accuracyDiff*100, costDiff*100)
	}
	if accuracyDiff > 0 && costDiff < 0 {
		return true, fmt.Sprintf("better accuracy (%+.2f%%) and lower cost (%+.0f%%)", accuracyDiff*100, costDiff*100)
	}

	return false, fmt.Sprintf("poor cost/performance trade-off: accuracy %+.2f%%, cost %+.0f%%", accuracyDiff*100, costDiff*100)
}

// Decide picks the alias for a run that already passed the performance
// gate. championAccuracy is nil when the model has no champion yet.
func Decide(metrics map[string]float64, championAccuracy *float64, c Criteria) (domain.Alias, string) {
	if championAccuracy == nil {
		return domain.AliasChampion, "first registered model becomes champion"
	}

	beats, reason := CompareToChampion(metrics[domain.MetricCategoryAccuracy], *championAccuracy, c)
	if beats {
		return domain.AliasChallenger, reason
	}
	return domain.AliasCandidate, reason
}

// RegistrationTags builds the tag set stamped on a version at registration.
// Metric tags round to 4 decimals; the validation reason is capped at 250
// characters.
func RegistrationTags(metrics map[string]float64, provider, model string, passes bool, reason string) map[string]string {
	if len(reason) > 250 {
		reason = reason[:250]
	}

	return map[string]string{
		domain.TagProvider:          provider,
		domain.TagModel:             model,
		domain.TagCategoryAccuracy:  formatMetric(metrics[domain.MetricCategoryAccuracy]),
		domain.TagCategoryF1:        formatMetric(metrics[domain.MetricCategoryF1]),
		domain.TagSentimentAccuracy: formatMetric(metrics[domain.MetricSentimentAccuracy]),
		domain.TagProductionReady:   strconv.FormatBool(passes),
		domain.TagValidationReason:  reason,
	}
}

// formatMetric renders a metric the way registration tags store it. Two
// runs with the same formatted category accuracy count as duplicates.
func formatMetric(v float64) string {
	return strconv.FormatFloat(round4(v), 'g', -1, 64)
}

func round4(v float64) float64 {
	if v < 0 {
		return -round4(-v)
	}
	return float64(int64(v*10000+0.5)) / 10000
}
