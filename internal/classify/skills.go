package classify

import "strings"

// techSkills is the fixed vocabulary matched against tech-stack answers.
// Matches are reported in vocabulary order, not input order.
var techSkills = []string{
	"python", "java", "javascript", "react", "node.js", "sql", "mongodb", "postgresql",
	"tensorflow", "pytorch", "scikit-learn", "pandas", "numpy", "docker", "kubernetes",
	"aws", "azure", "gcp", "git", "linux", "machine learning", "deep learning",
	"data analysis", "statistics", "r", "scala", "spark", "hadoop", "tableau",
}

// ExtractSkills returns every vocabulary entry that appears as a substring of
// the lowercased input.
func ExtractSkills(text string) []string {
	lower := strings.ToLower(text)

	var found []string
	for _, skill := range techSkills {
		if strings.Contains(lower, skill) {
			found = append(found, skill)
		}
	}
	return found
}
