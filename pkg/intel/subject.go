package intel

import "strings"

// AdType is the campaign flavor a subject describes. It decides which
// query plan is built.
type AdType string

const (
	AdTypeProduct AdType = "product"
	AdTypeEvent   AdType = "event"
	AdTypeJob     AdType = "job"
)

// Subject describes what is being advertised, as collected by the UI
// layer. Optional fields simply shrink the query plan.
type Subject struct {
	Product          string   `json:"product"`
	ShortDescription string   `json:"short_description"`
	TargetAudience   string   `json:"target_audience"`
	Objective        string   `json:"objective"`
	Platforms        []string `json:"primary_platforms,omitempty"`
	Budget           string   `json:"budget,omitempty"`
	BrandVoice       string   `json:"brand_voice,omitempty"`
	KeyMessages      []string `json:"key_messages,omitempty"`
	VisualDirection  string   `json:"visual_direction,omitempty"`
	Constraints      string   `json:"constraints,omitempty"`
	SuccessMetrics   []string `json:"success_metrics,omitempty"`
	Price            string   `json:"price,omitempty"`
	IsNewProduct     bool     `json:"is_new_product,omitempty"`
	Competitors      []string `json:"competitors,omitempty"`
}

// AdType infers the campaign flavor from the description.
func (s Subject) AdType() AdType {
	desc := strings.ToLower(s.ShortDescription)

	for _, word := range []string{"hiring", "position", "role", "vacancy"} {
		if strings.Contains(desc, word) {
			return AdTypeJob
		}
	}
	for _, word := range []string{"hackathon", "conference", "event", "summit", "meetup"} {
		if strings.Contains(desc, word) {
			return AdTypeEvent
		}
	}
	return AdTypeProduct
}

// Category infers a coarse market category used in question templates
// and in the category-research fallback.
func (s Subject) Category() string {
	desc := strings.ToLower(s.ShortDescription)

	switch {
	case containsAny(desc, "smartphone", "phone"):
		return "smartphones"
	case containsAny(desc, "laptop", "computer"):
		return "laptops"
	case containsAny(desc, "software", "app", "saas"):
		return "software"
	case containsAny(desc, "hackathon", "conference"):
		return "tech events"
	}
	return "technology"
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
