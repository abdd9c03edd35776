package textutil_test

import (
	"testing"

	"go-agency-backoffice/pkg/textutil"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	assert.Equal(t, "rania-haddad", textutil.Slug("Rania Haddad"))
	assert.Equal(t, "omar-al-said", textutil.Slug("  Omar  Al-Said  "))
	assert.Equal(t, "oconnor", textutil.Slug("O'Connor"))
	assert.Equal(t, "", textutil.Slug(""))
}

func TestCandidateDirectory(t *testing.T) {
	assert.Equal(t, "candidates/rania-haddad_10", textutil.CandidateDirectory("Rania Haddad", 10))
	assert.Equal(t, "candidates/_7", textutil.CandidateDirectory("", 7))
}

func TestSafeASCIIFilename(t *testing.T) {
	assert.Equal(t, "Rania_Haddad_CV.pdf", textutil.SafeASCIIFilename("Rania Haddad_CV.pdf"))
	// Diacritics fold to their base letters.
	assert.Equal(t, "Rene_Francois.vcf", textutil.SafeASCIIFilename("René François.vcf"))
	// Non-Latin runes drop out entirely.
	assert.Equal(t, "_CV.pdf", textutil.SafeASCIIFilename("رانية_CV.pdf"))
}

func TestContentDisposition(t *testing.T) {
	header := textutil.ContentDisposition("René_CV.pdf")
	assert.Contains(t, header, `attachment; filename="Rene_CV.pdf"`)
	assert.Contains(t, header, "filename*=UTF-8''Ren%C3%A9_CV.pdf")
}
