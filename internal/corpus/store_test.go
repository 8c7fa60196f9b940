package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbeddingText(t *testing.T) {
	t.Run("all fields present", func(t *testing.T) {
		r := Resume{
			Summary:    "Backend engineer",
			Skills:     []string{"Go", "PostgreSQL"},
			Experience: "8 years at Acme",
			Education:  "BSc Computer Science",
		}
		text := r.EmbeddingText()
		assert.Equal(t, "Backend engineer\n\nSkills: Go, PostgreSQL\n\n8 years at Acme\n\nBSc Computer Science", text)
	})

	t.Run("empty fields skipped", func(t *testing.T) {
		r := Resume{Summary: "Backend engineer"}
		assert.Equal(t, "Backend engineer", r.EmbeddingText())
	})

	t.Run("empty resume", func(t *testing.T) {
		r := Resume{}
		assert.Equal(t, "", r.EmbeddingText())
	})
}

func TestDisplayName(t *testing.T) {
	name := "Ada Park"
	empty := ""

	assert.Equal(t, "Ada Park", (&Resume{Name: &name}).DisplayName())
	assert.Equal(t, "Unknown Candidate", (&Resume{Name: &empty}).DisplayName())
	assert.Equal(t, "Unknown Candidate", (&Resume{}).DisplayName())
}
