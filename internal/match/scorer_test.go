package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "Deep Residual Learning", "Deep Residual Learning", 1},
		{"case insensitive", "DEEP residual LEARNING", "deep Residual learning", 1},
		{"disjoint", "graph neural networks", "quantum error correction", 0},
		{"partial", "deep learning networks", "deep learning", 2.0 / 3.0},
		{"stopwords ignored", "the learning of networks", "learning networks", 1},
		{"stopwords only", "the of and", "in on at", 0},
		{"empty left", "", "deep learning", 0},
		{"empty both", "", "", 0},
		{"duplicate words collapse", "learning learning learning", "learning", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TokenOverlap(tt.a, tt.b), 1e-9)
		})
	}
}

func TestAuthorContainment(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		candidates string
		want       float64
	}{
		{"exact first author", "Kaiming He, Xiangyu Zhang", "Kaiming He, Xiangyu Zhang, Shaoqing Ren", 1},
		{"case insensitive substring", "kaiming he", "Kaiming He", 1},
		{"surname only matches half", "Kaiming He, Xiangyu Zhang", "X. Zhang, S. Ren, J. He", 0.5},
		{"no overlap", "Kaiming He", "Ada Lovelace", 0},
		{"empty query", "", "Kaiming He", 0},
		{"empty candidates", "Kaiming He", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AuthorContainment(tt.query, tt.candidates), 1e-9)
		})
	}
}

func TestTitleAuthorScore(t *testing.T) {
	t.Run("both components", func(t *testing.T) {
		got := TitleAuthorScore(
			"Deep Residual Learning", "Kaiming He, Xiangyu Zhang",
			"Deep Residual Learning", "Kaiming He et al.",
		)
		assert.InDelta(t, 1.0, got, 1e-9)
	})

	t.Run("title only when candidate authors missing", func(t *testing.T) {
		got := TitleAuthorScore("Deep Residual Learning", "Kaiming He", "Deep Residual Learning", "")
		assert.InDelta(t, 0.7, got, 1e-9)
	})

	t.Run("title only when query authors missing", func(t *testing.T) {
		got := TitleAuthorScore("Deep Residual Learning", "", "Deep Residual Learning", "Kaiming He")
		assert.InDelta(t, 0.7, got, 1e-9)
	})

	t.Run("weighted mix", func(t *testing.T) {
		// Title Jaccard 0.5, author containment 1.
		got := TitleAuthorScore("alpha beta", "Grace Hopper", "alpha beta gamma delta", "Grace Hopper, Alan Kay")
		assert.InDelta(t, 0.5*0.7+0.3, got, 1e-9)
	})

	t.Run("no match", func(t *testing.T) {
		got := TitleAuthorScore("alpha", "Grace Hopper", "omega", "Alan Kay")
		assert.InDelta(t, 0, got, 1e-9)
	})
}
