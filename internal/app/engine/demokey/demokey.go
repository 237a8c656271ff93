// Package demokey derives the canonical grouping key a stratified run buckets
// participants by.
//
// The key is the participant's answers to the configured stratification
// questions, in question order, joined with a separator that never appears in
// answer text. Participants with identical answers across the selected
// questions get identical keys; a participant missing any required answer is
// incomplete and is placed separately rather than grouped.
package demokey

import (
	"strings"

	"github.com/convohub/convohub/internal/domain/models"
)

// Unknown is the sentinel substituted for a missing answer when the key is
// still built for display purposes.
const Unknown = "unknown"

// separator joins answers in the key. Chosen to be outside normal answer
// text; answers are plain survey option values, not markup.
const separator = "||"

// Build returns the grouping key over the ordered question set and whether
// the participant answered every question in it.
func Build(answers map[string]string, questionIDs []string) (key string, complete bool) {
	parts := make([]string, 0, len(questionIDs))
	complete = true
	for _, qid := range questionIDs {
		answer, ok := answers[qid]
		if !ok || answer == "" {
			answer = Unknown
			complete = false
		}
		parts = append(parts, answer)
	}
	return strings.Join(parts, separator), complete
}

// TagsFor assembles display tags for a participant's answers: question text
// and the answer option's color looked up from question metadata. Questions
// the participant did not answer produce no tag.
func TagsFor(answers map[string]string, questionIDs []string, questions map[string]models.DemographicQuestion) []models.DemographicTag {
	tags := make([]models.DemographicTag, 0, len(questionIDs))
	for _, qid := range questionIDs {
		answer, ok := answers[qid]
		if !ok || answer == "" {
			continue
		}
		tag := models.DemographicTag{
			QuestionID: qid,
			Answer:     answer,
		}
		if q, ok := questions[qid]; ok {
			tag.QuestionText = q.Text
			tag.Color = q.ColorFor(answer)
		}
		tags = append(tags, tag)
	}
	return tags
}
