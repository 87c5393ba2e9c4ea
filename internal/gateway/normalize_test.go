package gateway

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAssetURL(t *testing.T) {
	base := "https://api.example.com"

	assert.Equal(t, "https://api.example.com/uploads/doc1.pdf", NormalizeAssetURL(base, "uploads/doc1.pdf"))
	assert.Equal(t, "https://api.example.com/uploads/doc1.pdf", NormalizeAssetURL(base, "/uploads/doc1.pdf"))
	assert.Equal(t, "#", NormalizeAssetURL(base, "#"))
	assert.Equal(t, "", NormalizeAssetURL(base, ""))
	assert.Equal(t, "https://cdn.example.com/x.pdf", NormalizeAssetURL(base, "https://cdn.example.com/x.pdf"))
}

func TestParseSubjectsEncodedString(t *testing.T) {
	raw := json.RawMessage(`"[\"Math\",\"Physics\"]"`)
	assert.Equal(t, []string{"Math", "Physics"}, ParseSubjects(raw))
}

func TestParseSubjectsMalformed(t *testing.T) {
	raw := json.RawMessage(`"[Math"`)
	assert.Equal(t, []string{}, ParseSubjects(raw))
}

func TestParseSubjectsPlainArray(t *testing.T) {
	raw := json.RawMessage(`["Math","Physics"]`)
	assert.Equal(t, []string{"Math", "Physics"}, ParseSubjects(raw))
}

func TestParseSubjectsNestedEncodedArray(t *testing.T) {
	raw := json.RawMessage(`["[\"Math\",\"Physics\"]","Chemistry"]`)
	assert.Equal(t, []string{"Math", "Physics", "Chemistry"}, ParseSubjects(raw))
}

func TestParseSubjectsNullAndEmpty(t *testing.T) {
	assert.Equal(t, []string{}, ParseSubjects(nil))
	assert.Equal(t, []string{}, ParseSubjects(json.RawMessage(`null`)))
	assert.NotNil(t, ParseSubjects(json.RawMessage(`null`)))
}

func TestParseStringList(t *testing.T) {
	assert.Equal(t, []string{"GCSE", "A-Level"}, parseStringList(json.RawMessage(`["GCSE","A-Level"]`)))
	assert.Equal(t, []string{"GCSE"}, parseStringList(json.RawMessage(`"[\"GCSE\"]"`)))
	assert.Equal(t, []string{}, parseStringList(nil))
	assert.Equal(t, []string{}, parseStringList(json.RawMessage(`"broken`)))
}

func TestApplicationPayloadUnifiesPreferredSlots(t *testing.T) {
	p := applicationPayload{PreferredTimes: []string{"2026-09-01T09:00:00Z"}}
	app := p.toModel("https://api.example.com")
	assert.Equal(t, []string{"2026-09-01T09:00:00Z"}, app.PreferredSlots)

	p = applicationPayload{
		PreferredTimes: []string{"2026-09-01T09:00:00Z"},
		PreferredSlots: []string{"2026-09-02T10:00:00Z"},
	}
	app = p.toModel("https://api.example.com")
	assert.Equal(t, []string{"2026-09-02T10:00:00Z"}, app.PreferredSlots)

	app = applicationPayload{}.toModel("https://api.example.com")
	assert.NotNil(t, app.PreferredSlots)
	assert.NotNil(t, app.InterviewSlots)
}
