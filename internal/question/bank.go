// Package question holds the fixed interview question bank and the selector
// that picks one role-appropriate question for a candidate.
package question

import "github.com/omchoksi/talentscout/internal/classify"

// bank maps category and tier to the candidate questions for that cell.
var bank = map[classify.Category]map[classify.Tier][]string{
	classify.CategoryAIML: {
		classify.TierJunior: {
			"Can you explain the difference between supervised and unsupervised learning with real-world examples?",
			"How would you handle overfitting in a machine learning model?",
			"Describe a time when you had to choose between different algorithms for a project.",
		},
		classify.TierMid: {
			"How would you design an end-to-end ML pipeline for a recommendation system?",
			"Explain how you would approach model deployment and monitoring in production.",
			"What strategies would you use to handle data drift in a live ML system?",
		},
		classify.TierSenior: {
			"How would you architect a scalable ML platform for a company with 100M+ users?",
			"Describe your approach to building responsible AI systems and handling bias.",
			"How would you lead a team through the transition from traditional analytics to ML-driven insights?",
		},
	},
	classify.CategorySoftware: {
		classify.TierJunior: {
			"Explain the difference between SQL and NoSQL databases with examples of when to use each.",
			"How do you approach debugging a piece of code that's not working as expected?",
			"Describe a challenging bug you've encountered and how you resolved it.",
		},
		classify.TierMid: {
			"How would you design a system to handle 1 million concurrent users?",
			"Explain your approach to code reviews and maintaining code quality.",
			"Describe how you would implement caching in a distributed system.",
		},
		classify.TierSenior: {
			"How would you migrate a monolithic application to microservices architecture?",
			"Describe your strategy for technical debt management across multiple teams.",
			"How do you balance technical excellence with business requirements in your decisions?",
		},
	},
	classify.CategoryData: {
		classify.TierJunior: {
			"You mentioned working with employee performance prediction - can you walk me through your approach to handling missing data in such datasets?",
			"Tell me about a time when you had to explain a complex data finding to a non-technical stakeholder. How did you make it understandable?",
			"If you had a dataset with 80% accuracy on training but only 60% on validation, what would be your first three steps to investigate?",
			"Describe your process for exploring a new dataset you've never seen before. What are the first things you look for?",
		},
		classify.TierMid: {
			"How would you approach building an employee performance prediction model if you suspected there was bias in the historical data?",
			"You have conflicting results from two different models for the same problem. How would you decide which one to trust and deploy?",
			"Walk me through how you would design an A/B test to measure the impact of a new recommendation algorithm.",
			"If stakeholders asked you to improve model accuracy from 85% to 95%, how would you approach this challenge?",
		},
		classify.TierSenior: {
			"How would you build a data science strategy for a company that's transitioning from intuition-based to data-driven decision making?",
			"You're tasked with building a real-time fraud detection system for millions of transactions. What's your architectural approach?",
			"How do you balance the trade-off between model interpretability and performance when stakeholders demand both?",
			"Describe how you would establish data governance and quality standards across multiple teams and departments.",
		},
	},
	classify.CategoryDefault: {
		classify.TierJunior: {
			"Tell me about a challenging project you've worked on and how you overcame obstacles.",
			"How do you stay updated with the latest trends in your field?",
			"Describe a time when you had to learn a new technology quickly.",
		},
		classify.TierMid: {
			"How do you approach mentoring junior team members?",
			"Describe a situation where you had to make a technical decision with incomplete information.",
			"How do you balance innovation with maintaining existing systems?",
		},
		classify.TierSenior: {
			"How do you align technical strategy with business objectives?",
			"Describe your approach to building and scaling high-performing teams.",
			"How do you handle technical disagreements within your team?",
		},
	},
}

// Candidates returns the question list for a category and tier. An unknown
// category falls back to Default; an unknown tier within a category falls
// back to Default's junior list.
func Candidates(category classify.Category, tier classify.Tier) []string {
	byTier, ok := bank[category]
	if !ok {
		byTier = bank[classify.CategoryDefault]
	}
	questions, ok := byTier[tier]
	if !ok {
		questions = bank[classify.CategoryDefault][classify.TierJunior]
	}
	return questions
}
