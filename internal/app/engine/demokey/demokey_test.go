package demokey

import (
	"testing"

	"github.com/convohub/convohub/internal/domain/models"
)

func TestBuild_CompleteProfile(t *testing.T) {
	answers := map[string]string{
		"age":    "18-29",
		"region": "north",
	}

	key, complete := Build(answers, []string{"age", "region"})
	if !complete {
		t.Error("expected complete profile")
	}
	if key != "18-29||north" {
		t.Errorf("key = %q, want %q", key, "18-29||north")
	}
}

func TestBuild_QuestionOrderDeterminesKey(t *testing.T) {
	answers := map[string]string{"a": "1", "b": "2"}

	k1, _ := Build(answers, []string{"a", "b"})
	k2, _ := Build(answers, []string{"b", "a"})

	if k1 == k2 {
		t.Error("expected different keys for different question orders")
	}
}

func TestBuild_MissingAnswerIsIncomplete(t *testing.T) {
	answers := map[string]string{"age": "30-44"}

	key, complete := Build(answers, []string{"age", "region"})
	if complete {
		t.Error("expected incomplete profile")
	}
	if key != "30-44||"+Unknown {
		t.Errorf("key = %q, want unknown sentinel for missing answer", key)
	}
}

func TestBuild_EmptyAnswerCountsAsMissing(t *testing.T) {
	answers := map[string]string{"age": ""}

	_, complete := Build(answers, []string{"age"})
	if complete {
		t.Error("empty answer should mark the profile incomplete")
	}
}

func TestBuild_IdenticalAnswersIdenticalKeys(t *testing.T) {
	qids := []string{"age", "region", "income"}
	a := map[string]string{"age": "18-29", "region": "north", "income": "mid"}
	b := map[string]string{"income": "mid", "age": "18-29", "region": "north"}

	ka, ca := Build(a, qids)
	kb, cb := Build(b, qids)

	if ka != kb || ca != cb {
		t.Errorf("expected identical keys, got %q/%v and %q/%v", ka, ca, kb, cb)
	}
}

func TestBuild_NoQuestions(t *testing.T) {
	key, complete := Build(map[string]string{"age": "18-29"}, nil)
	if key != "" {
		t.Errorf("key = %q, want empty for empty question set", key)
	}
	if !complete {
		t.Error("empty question set is trivially complete")
	}
}

func TestTagsFor(t *testing.T) {
	questions := map[string]models.DemographicQuestion{
		"age": {
			ID:   "age",
			Text: "What is your age bracket?",
			Options: []models.QuestionOption{
				{Value: "18-29", Color: "#4caf50"},
				{Value: "30-44", Color: "#2196f3"},
			},
		},
	}
	answers := map[string]string{"age": "18-29"}

	tags := TagsFor(answers, []string{"age", "region"}, questions)
	if len(tags) != 1 {
		t.Fatalf("expected 1 tag, got %d", len(tags))
	}
	tag := tags[0]
	if tag.QuestionText != "What is your age bracket?" {
		t.Errorf("QuestionText = %q", tag.QuestionText)
	}
	if tag.Answer != "18-29" {
		t.Errorf("Answer = %q", tag.Answer)
	}
	if tag.Color != "#4caf50" {
		t.Errorf("Color = %q", tag.Color)
	}
}

func TestTagsFor_UnknownQuestionMetadata(t *testing.T) {
	tags := TagsFor(map[string]string{"x": "yes"}, []string{"x"}, nil)
	if len(tags) != 1 {
		t.Fatalf("expected 1 tag, got %d", len(tags))
	}
	if tags[0].QuestionText != "" || tags[0].Color != "" {
		t.Error("expected bare tag when question metadata is missing")
	}
}
