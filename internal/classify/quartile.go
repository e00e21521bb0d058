package classify

import (
	"strings"

	"github.com/scholarly/verification-service/internal/domain"
)

// Category is a coarse subject-area bucket used for quartile lookup.
type Category string

// Supported quartile categories. Journals outside these buckets fall
// into CategoryGeneral and get no quartile.
const (
	CategoryComputerScience Category = "Computer Science"
	CategoryEngineering     Category = "Engineering"
	CategoryMedicine        Category = "Medicine"
	CategoryGeneral         Category = "General"
)

// categoryBucket holds the per-category journal patterns for Q1 and Q2.
type categoryBucket struct {
	detect []string
	q1     []string
	q2     []string
}

// QuartileResolver assigns a quartile to top-tier journals from
// category-scoped keyword buckets. Journals that match a category but
// neither its Q1 nor its Q2 patterns default to Q3.
type QuartileResolver struct {
	buckets map[Category]categoryBucket
}

// NewQuartileResolver returns a resolver with the built-in buckets.
func NewQuartileResolver() *QuartileResolver {
	return &QuartileResolver{
		buckets: map[Category]categoryBucket{
			CategoryComputerScience: {
				detect: []string{
					"computer", "computing", "software", "hardware", "algorithm",
					"machine learning", "artificial intelligence", "data science",
					"cybersecurity", "networks",
				},
				q1: []string{
					"nature", "science", "cell", "ieee transactions", "acm computing",
					"journal of machine learning research", "neural information processing systems",
					"computer vision and pattern recognition", "international conference on machine learning",
					"journal of the acm", "communications of the acm", "ieee computer",
					"acm transactions on", "ieee transactions on pattern analysis",
					"ieee transactions on neural networks", "ieee transactions on software engineering",
				},
				q2: []string{
					"elsevier", "wiley", "springer", "plos one", "scientific reports",
					"applied physics letters", "journal of applied physics", "materials science",
					"chemistry of materials", "journal of materials chemistry", "biomaterials",
				},
			},
			CategoryEngineering: {
				detect: []string{
					"engineering", "technology", "materials", "manufacturing",
					"automation", "robotics", "electrical", "electronic",
					"mechanical", "civil", "chemical",
				},
				q1: []string{
					"nature materials", "nature nanotechnology", "advanced materials",
					"nano letters", "acs nano", "small", "advanced functional materials",
					"ieee transactions on", "acm computing", "physical review letters",
				},
				q2: []string{
					"elsevier", "wiley", "springer", "taylor", "applied physics letters",
					"journal of applied physics", "materials science", "chemistry of materials",
				},
			},
			CategoryMedicine: {
				detect: []string{
					"medicine", "medical", "health", "clinical", "biomedical",
					"pharmaceutical", "drug", "therapy", "treatment", "diagnosis",
					"cancer", "disease",
				},
				q1: []string{
					"nature medicine", "lancet", "nejm", "jama", "bmj", "cell",
					"nature", "science", "cell metabolism", "molecular cell",
					"developmental cell", "cancer cell", "immunity", "neuron",
				},
				q2: []string{
					"plos medicine", "plos biology", "scientific reports",
					"nature communications", "cell reports", "molecular therapy",
					"cancer research", "blood",
				},
			},
		},
	}
}

// Categorize maps a journal name to its subject-area bucket.
func (r *QuartileResolver) Categorize(journal string) Category {
	journal = strings.ToLower(journal)
	for _, cat := range []Category{CategoryComputerScience, CategoryEngineering, CategoryMedicine} {
		if containsAny(journal, r.buckets[cat].detect) {
			return cat
		}
	}
	return CategoryGeneral
}

// Resolve returns the quartile for a journal. The caller must have
// already established SCI or Scopus membership; journals whose category
// has no bucket get no quartile.
func (r *QuartileResolver) Resolve(journal string) (domain.Quartile, Category) {
	journal = strings.ToLower(journal)
	category := r.Categorize(journal)
	bucket, ok := r.buckets[category]
	if !ok {
		return domain.QuartileNA, category
	}
	switch {
	case containsAny(journal, bucket.q1):
		return domain.Q1, category
	case containsAny(journal, bucket.q2):
		return domain.Q2, category
	default:
		return domain.Q3, category
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
