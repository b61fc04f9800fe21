package recommend

import (
	"sort"
	"strings"

	"github.com/arjunmehta/rechargehub-backend/pkg/db/models"
)

// Scoring weights for each preference dimension.
const (
	budgetWeight    = 30
	usageWeight     = 25
	priorityWeight  = 20
	validityWeight  = 15
	dataNeedsWeight = 10
)

const maxReasons = 2

// Query carries the user's stated preferences.
type Query struct {
	Budget    string
	Usage     string
	Priority  string
	Validity  string
	DataNeeds string
}

// ScoredPlan annotates a plan with its suitability score and justification.
type ScoredPlan struct {
	Plan   models.Plan
	Score  int
	Reason string
}

// ScorePlans scores every plan against the query, preserving catalog order.
// Plans whose data or validity fields fail to parse simply match none of
// the conditions that depend on them.
func ScorePlans(plans []models.Plan, q Query) []ScoredPlan {
	scored := make([]ScoredPlan, 0, len(plans))
	for _, plan := range plans {
		score, reasons := scorePlan(plan, q)
		scored = append(scored, ScoredPlan{
			Plan:   plan,
			Score:  score,
			Reason: strings.Join(reasons, " and "),
		})
	}
	return scored
}

// Rank sorts scored plans by descending score, keeping catalog order for
// ties, and truncates to at most topN entries.
func Rank(scored []ScoredPlan, topN int) []ScoredPlan {
	ranked := make([]ScoredPlan, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if topN >= 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

func scorePlan(plan models.Plan, q Query) (int, []string) {
	score := 0
	reasons := make([]string, 0, maxReasons)

	addReason := func(reason string) {
		if len(reasons) < maxReasons {
			reasons = append(reasons, reason)
		}
	}

	data, dataOK := ParseDataAllowance(plan.Data)
	days, daysOK := ParseValidityDays(plan.Validity)

	switch {
	case q.Budget == "low" && plan.Price < 200:
		score += budgetWeight
		addReason("fits your budget")
	case q.Budget == "medium" && plan.Price >= 200 && plan.Price <= 600:
		score += budgetWeight
		addReason("great value for money")
	case q.Budget == "high" && plan.Price > 600:
		score += budgetWeight
		addReason("premium features")
	}

	switch {
	case q.Usage == "light" && dataOK && data.Magnitude <= 1:
		score += usageWeight
		addReason("perfect for light usage")
	case q.Usage == "moderate" && dataOK && data.Magnitude > 1 && data.Magnitude <= 3:
		score += usageWeight
		addReason("ideal for regular usage")
	case q.Usage == "heavy" && dataOK && data.Magnitude > 3:
		score += usageWeight
		addReason("supports heavy usage")
	}

	switch {
	case q.Priority == "data" && dataOK && data.Magnitude > 2:
		score += priorityWeight
		addReason("high data allowance")
	case q.Priority == "validity" && daysOK && days > 56:
		score += priorityWeight
		addReason("long validity period")
	case q.Priority == "price" && plan.Price < 300:
		score += priorityWeight
		addReason("best price point")
	}

	switch {
	case q.Validity == "short" && daysOK && days <= 30:
		score += validityWeight
		addReason("short-term convenience")
	case q.Validity == "medium" && daysOK && days > 30 && days <= 90:
		score += validityWeight
		addReason("balanced validity")
	case q.Validity == "long" && daysOK && days > 90:
		score += validityWeight
		addReason("extended validity")
	}

	switch {
	case q.DataNeeds == "low" && dataOK && data.Magnitude < 1:
		score += dataNeedsWeight
		addReason("matches data needs")
	case q.DataNeeds == "medium" && dataOK && data.Magnitude >= 1 && data.Magnitude <= 3:
		score += dataNeedsWeight
		addReason("perfect data amount")
	case q.DataNeeds == "high" && dataOK && data.Magnitude > 3:
		score += dataNeedsWeight
		addReason("high-speed data")
	}

	return score, reasons
}
