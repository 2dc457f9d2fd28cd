// Package insight generates human readable findings from precomputed
// financial metrics. Generation is pure and deterministic: the same
// metrics always produce the same ordered list.
package insight

import "fmt"

// Metrics is the bag of precomputed values the rules are checked against.
// Deltas are percent changes against the previous period.
type Metrics struct {
	IncomeDelta              float64 `json:"incomeDelta"`
	ExpenseDelta             float64 `json:"expenseDelta"`
	SavingRate               float64 `json:"currentSavingRate"`
	TopCategoryName          string  `json:"topCategoryName"`
	TopCategoryShare         float64 `json:"topCategoryShare"`
	IncomeSourceCount        int     `json:"incomeSourceCount"`
	DaysSinceLastTransaction int     `json:"daysSinceLastTransaction"`
}

// Insight is a single generated finding.
type Insight struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// MaxInsights is the maximum number of insights returned by Generate.
const MaxInsights = 3

type rule struct {
	matches func(Metrics) bool
	build   func(Metrics) Insight
}

// The rules are ordered by relevance. Generate returns the first
// MaxInsights whose thresholds are met.
var rules = []rule{
	{
		matches: func(m Metrics) bool { return m.SavingRate < 0 },
		build: func(m Metrics) Insight {
			return Insight{
				ID:          "negative-savings",
				Title:       "You are spending more than you earn",
				Description: fmt.Sprintf("Your saving rate is %.1f%%. Review your largest expenses to get back to positive savings.", m.SavingRate),
			}
		},
	},
	{
		matches: func(m Metrics) bool { return m.ExpenseDelta > 15 },
		build: func(m Metrics) Insight {
			return Insight{
				ID:          "expense-growth",
				Title:       "Expenses are growing fast",
				Description: fmt.Sprintf("Your expenses grew by %.1f%% compared to the previous period.", m.ExpenseDelta),
			}
		},
	},
	{
		matches: func(m Metrics) bool { return m.TopCategoryShare > 40 && m.TopCategoryName != "" },
		build: func(m Metrics) Insight {
			return Insight{
				ID:          "top-category-concentration",
				Title:       "One category dominates your spending",
				Description: fmt.Sprintf("%.1f%% of your expenses go to %s.", m.TopCategoryShare, m.TopCategoryName),
			}
		},
	},
	{
		matches: func(m Metrics) bool { return m.IncomeDelta > 10 },
		build: func(m Metrics) Insight {
			return Insight{
				ID:          "income-growth",
				Title:       "Your income is growing",
				Description: fmt.Sprintf("Your income grew by %.1f%% compared to the previous period.", m.IncomeDelta),
			}
		},
	},
	{
		matches: func(m Metrics) bool { return m.SavingRate > 20 },
		build: func(m Metrics) Insight {
			return Insight{
				ID:          "excellent-savings",
				Title:       "Excellent saving rate",
				Description: fmt.Sprintf("You are saving %.1f%% of your income. Consider moving the surplus to a savings goal.", m.SavingRate),
			}
		},
	},
	{
		matches: func(m Metrics) bool { return m.SavingRate > 0 && m.SavingRate < 10 },
		build: func(m Metrics) Insight {
			return Insight{
				ID:          "low-savings",
				Title:       "Low saving rate",
				Description: fmt.Sprintf("You are only saving %.1f%% of your income.", m.SavingRate),
			}
		},
	},
	{
		matches: func(m Metrics) bool { return m.IncomeSourceCount == 1 },
		build: func(Metrics) Insight {
			return Insight{
				ID:          "single-income-source",
				Title:       "All income comes from a single source",
				Description: "Your income depends on one source. A second income stream reduces risk.",
			}
		},
	},
	{
		matches: func(m Metrics) bool { return m.DaysSinceLastTransaction > 14 },
		build: func(m Metrics) Insight {
			return Insight{
				ID:          "stale-data",
				Title:       "No recent transactions",
				Description: fmt.Sprintf("Your last transaction is %d days old. Import or record recent activity to keep insights accurate.", m.DaysSinceLastTransaction),
			}
		},
	},
}

// Generate evaluates all rules against the metrics and returns at most
// MaxInsights findings. When fewer than two rules fire, a generic
// entry is appended so that clients always have something to show.
func Generate(m Metrics) []Insight {
	insights := make([]Insight, 0, MaxInsights)

	for _, r := range rules {
		if len(insights) == MaxInsights {
			break
		}

		if r.matches(m) {
			insights = append(insights, r.build(m))
		}
	}

	if len(insights) < 2 {
		insights = append(insights, Insight{
			ID:          "more-data-needed",
			Title:       "Keep tracking",
			Description: "Record more transactions to unlock personalized insights.",
		})
	}

	return insights
}
