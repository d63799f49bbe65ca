package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorizePosition(t *testing.T) {
	tests := []struct {
		position string
		want     Category
	}{
		{"Machine Learning Engineer", CategoryAIML},
		// AI/ML keywords win over the developer keywords also present.
		{"Senior ML Engineer", CategoryAIML},
		{"Data Scientist", CategoryAIML},
		{"Backend Engineer", CategorySoftware},
		{"fullstack developer", CategorySoftware},
		{"Software Programmer", CategorySoftware},
		{"Data Analyst", CategoryData},
		{"Business Intelligence", CategoryData},
		{"Product Manager", CategoryDefault},
		{"", CategoryDefault},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CategorizePosition(tt.position), "position %q", tt.position)
	}
}
