package classify

import "strings"

// Category is a question-bank category derived from a free-text position.
type Category string

const (
	CategoryAIML     Category = "AI/ML"
	CategorySoftware Category = "Software Development"
	CategoryData     Category = "Data Science"
	CategoryDefault  Category = "Default"
)

// Keyword sets are checked in priority order: AI/ML first, then general
// development, then data/analytics. The first set with any substring hit wins,
// so "Senior ML Engineer" categorizes as AI/ML even though it also matches
// "engineer".
var (
	aimlKeywords = []string{"ai", "ml", "machine learning", "artificial intelligence", "data scientist", "aiml"}
	devKeywords  = []string{"developer", "engineer", "programmer", "backend", "frontend", "fullstack", "software"}
	dataKeywords = []string{"data", "analyst", "analytics", "bi", "business intelligence"}
)

// CategorizePosition maps a free-text desired position onto a question-bank
// category.
func CategorizePosition(position string) Category {
	position = strings.ToLower(position)

	if containsAny(position, aimlKeywords) {
		return CategoryAIML
	}
	if containsAny(position, devKeywords) {
		return CategorySoftware
	}
	if containsAny(position, dataKeywords) {
		return CategoryData
	}
	return CategoryDefault
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
