package utils

import (
	"strings"

	"github.com/civic-pulse/api-go/models"
)

var criticalKeywords = []string{
	"emergency", "urgent", "dangerous", "hazard", "life threatening",
	"gas leak", "fire", "collapse", "accident", "injury", "death",
	"critical", "immediate", "asap", "now",
}

var highKeywords = []string{
	"broken", "damaged", "blocked", "overflow", "flooding",
	"no water", "no electricity", "power cut", "outage",
	"important", "serious", "severe",
}

var lowKeywords = []string{
	"minor", "small", "slight", "cosmetic", "aesthetic",
	"suggestion", "improvement", "enhancement",
}

// DetectPriority picks a report priority from keywords in the title and
// description. Used when the submitter asks for automatic priority.
func DetectPriority(title, description string) string {
	text := strings.ToLower(title + " " + description)

	for _, keyword := range criticalKeywords {
		if strings.Contains(text, keyword) {
			return models.PriorityCritical
		}
	}
	for _, keyword := range highKeywords {
		if strings.Contains(text, keyword) {
			return models.PriorityHigh
		}
	}
	for _, keyword := range lowKeywords {
		if strings.Contains(text, keyword) {
			return models.PriorityLow
		}
	}

	return models.PriorityMedium
}
