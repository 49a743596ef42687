package intel

import (
	"fmt"
	"strings"
)

// Query is one small, single-intent research question. Each question
// stays narrow so a bad one never contaminates its siblings and
// per-query latency stays low.
type Query struct {
	Key      string `json:"key"`
	Subject  string `json:"subject"`
	Question string `json:"question"`
}

// maxCompetitors bounds how many named competitors get their own
// query triplet.
const maxCompetitors = 2

// BuildPlan derives the ordered query set for a subject. The plan is
// deterministic: identical subjects produce identical key sequences,
// and absent optional fields omit their queries instead of emitting
// empty ones. Insertion order is the declared priority.
func BuildPlan(s Subject) []Query {
	switch s.AdType() {
	case AdTypeEvent:
		return eventPlan(s)
	case AdTypeJob:
		return jobPlan(s)
	default:
		return productPlan(s)
	}
}

func productPlan(s Subject) []Query {
	var plan []Query
	category := s.Category()

	add := func(key, question string) {
		plan = append(plan, Query{Key: key, Subject: s.Product, Question: question})
	}

	competitors := s.Competitors
	if len(competitors) > maxCompetitors {
		competitors = competitors[:maxCompetitors]
	}

	if len(competitors) > 0 {
		for i, name := range competitors {
			n := i + 1
			add(fmt.Sprintf("competitor_%d_overview", n),
				fmt.Sprintf("What are the key features, price, and specifications of %s?", name))
			add(fmt.Sprintf("competitor_%d_weaknesses", n),
				fmt.Sprintf("What are the main customer complaints and problems with %s?", name))
			add(fmt.Sprintf("competitor_%d_vs_us", n),
				fmt.Sprintf("How does %s compare to a product with %s?", name, messageHighlights(s.KeyMessages)))
		}
	} else {
		add("identify_competitors",
			fmt.Sprintf("Who are the top %d competitors in the %s market and their prices?", maxCompetitors, category))
		add("market_pain_points",
			fmt.Sprintf("What are common customer complaints in the %s market?", category))
	}

	add("market_gaps",
		fmt.Sprintf("What unmet needs and gaps exist in the %s market for %s?", category, s.Product))

	if s.Price != "" {
		if len(competitors) > 0 {
			add("pricing_comparison",
				fmt.Sprintf("Compare the price of %s at %s with %s?", s.Product, s.Price, strings.Join(competitors, ", ")))
		} else {
			add("pricing_landscape",
				fmt.Sprintf("What are typical prices in the %s market compared to %s?", category, s.Price))
		}
	}

	if len(s.KeyMessages) > 0 {
		add("validate_claims",
			fmt.Sprintf("Do customers care about %s in %s products?", messageHighlights(s.KeyMessages), category))
	}

	return plan
}

// messageHighlights joins up to two key messages for use inside a
// question, keeping questions bounded in length.
func messageHighlights(messages []string) string {
	if len(messages) == 0 {
		return "better features"
	}
	if len(messages) > 2 {
		messages = messages[:2]
	}
	return strings.Join(messages, ", ")
}

func eventPlan(s Subject) []Query {
	name := s.Product
	return []Query{
		{Key: "event_success_history", Subject: name,
			Question: fmt.Sprintf("What are the attendance numbers and success metrics for %s?", name)},
		{Key: "attendee_testimonials", Subject: name,
			Question: fmt.Sprintf("What do attendees say about their experience at %s?", name)},
		{Key: "event_highlights", Subject: name,
			Question: fmt.Sprintf("What are the notable achievements and highlights of %s?", name)},
		{Key: "organizer_credibility", Subject: name,
			Question: fmt.Sprintf("Who organizes %s and what is their reputation?", name)},
		{Key: "networking_value", Subject: name,
			Question: fmt.Sprintf("What networking and career opportunities does %s provide?", name)},
	}
}

func jobPlan(s Subject) []Query {
	name := s.Product
	return []Query{
		{Key: "company_culture", Subject: name,
			Question: fmt.Sprintf("What is the company culture like at %s?", name)},
		{Key: "work_life_balance", Subject: name,
			Question: fmt.Sprintf("What is the work-life balance at %s?", name)},
		{Key: "compensation_benefits", Subject: name,
			Question: fmt.Sprintf("What are the salary and benefits at %s?", name)},
		{Key: "career_growth", Subject: name,
			Question: fmt.Sprintf("What career growth opportunities does %s offer?", name)},
		{Key: "employee_satisfaction", Subject: name,
			Question: fmt.Sprintf("What do employees say about working at %s?", name)},
		{Key: "company_stability", Subject: name,
			Question: fmt.Sprintf("What is the financial stability and outlook of %s?", name)},
	}
}

// CategoryPlan is the fallback plan run when the main plan produced
// too little data.
func CategoryPlan(category string) []Query {
	return []Query{
		{Key: "category_overview", Subject: category,
			Question: fmt.Sprintf("Who are the key players and trends in the %s market?", category)},
		{Key: "customer_needs", Subject: category,
			Question: fmt.Sprintf("What features and needs do customers want in %s products?", category)},
	}
}
