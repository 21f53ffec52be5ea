package analytics

import (
	"reflect"
	"testing"

	"studymate/internal/models"
)

func TestComputeEmptyHistory(t *testing.T) {
	report := Compute(nil, nil)
	if report.Mastery != 0 || report.TotalSessions != 0 {
		t.Fatalf("expected zeroed report, got %+v", report)
	}
	if report.WeakTopics == nil || len(report.WeakTopics) != 0 {
		t.Fatalf("weak_topics must be empty non-nil, got %v", report.WeakTopics)
	}
	if report.TopicBreakdown == nil || len(report.TopicBreakdown) != 0 {
		t.Fatalf("topic_breakdown must be empty non-nil, got %v", report.TopicBreakdown)
	}
}

func TestComputeSingleSessionTwoAttempts(t *testing.T) {
	sessions := []models.StudySession{{ID: 1, Topic: "Algebra"}}
	results := []models.QuizResult{
		{SessionID: 1, Score: 8, Total: 10, WeakTopics: []string{"X"}},
		{SessionID: 1, Score: 6, Total: 10, WeakTopics: []string{"X", "Y"}},
	}
	report := Compute(sessions, results)
	if report.Mastery != 70.0 {
		t.Fatalf("mastery: got %f want 70.0", report.Mastery)
	}
	if !reflect.DeepEqual(report.WeakTopics, []string{"X", "Y"}) {
		t.Fatalf("weak topics: got %v", report.WeakTopics)
	}
	if report.TotalSessions != 1 {
		t.Fatalf("total sessions: got %d want 1", report.TotalSessions)
	}
	want := []TopicMastery{{Topic: "Algebra", Mastery: 70.0}}
	if !reflect.DeepEqual(report.TopicBreakdown, want) {
		t.Fatalf("topic breakdown: got %+v", report.TopicBreakdown)
	}
}

func TestComputeSkipsOrphanResults(t *testing.T) {
	sessions := []models.StudySession{{ID: 1, Topic: "Chemistry"}}
	results := []models.QuizResult{
		{SessionID: 1, Score: 5, Total: 10},
		{SessionID: 99, Score: 10, Total: 10},
	}
	report := Compute(sessions, results)
	if report.Mastery != 50.0 {
		t.Fatalf("orphan result should be excluded, mastery %f", report.Mastery)
	}
	if report.TotalSessions != 1 {
		t.Fatalf("total sessions: got %d", report.TotalSessions)
	}
}

func TestComputeZeroTotalGuard(t *testing.T) {
	sessions := []models.StudySession{{ID: 1, Topic: "Physics"}}
	results := []models.QuizResult{
		{SessionID: 1, Score: 3, Total: 0},
		{SessionID: 1, Score: 10, Total: 10},
	}
	report := Compute(sessions, results)
	if report.Mastery != 50.0 {
		t.Fatalf("zero total should contribute 0%%, mastery %f", report.Mastery)
	}
}

func TestComputeWeakTopicRankingAndCap(t *testing.T) {
	sessions := []models.StudySession{{ID: 1, Topic: "Biology"}}
	results := []models.QuizResult{
		{SessionID: 1, Score: 1, Total: 10, WeakTopics: []string{"a", "b", "c"}},
		{SessionID: 1, Score: 2, Total: 10, WeakTopics: []string{"b", "c", "d"}},
		{SessionID: 1, Score: 3, Total: 10, WeakTopics: []string{"c", "e", "f", "g"}},
	}
	report := Compute(sessions, results)
	if len(report.WeakTopics) != 5 {
		t.Fatalf("expected top 5, got %v", report.WeakTopics)
	}
	// c=3, b=2, then a/d/e first-seen order for the single-count tail.
	want := []string{"c", "b", "a", "d", "e"}
	if !reflect.DeepEqual(report.WeakTopics, want) {
		t.Fatalf("ranking: got %v want %v", report.WeakTopics, want)
	}
}

func TestComputeTopicBreakdownRoundingAndOrder(t *testing.T) {
	sessions := []models.StudySession{
		{ID: 1, Topic: "Stats"},
		{ID: 2, Topic: "Logic"},
	}
	results := []models.QuizResult{
		{SessionID: 1, Score: 1, Total: 3},
		{SessionID: 2, Score: 2, Total: 3},
		{SessionID: 1, Score: 2, Total: 3},
	}
	report := Compute(sessions, results)
	want := []TopicMastery{
		{Topic: "Stats", Mastery: 50.0},
		{Topic: "Logic", Mastery: 66.7},
	}
	if !reflect.DeepEqual(report.TopicBreakdown, want) {
		t.Fatalf("breakdown: got %+v want %+v", report.TopicBreakdown, want)
	}
	if report.TotalSessions != 2 {
		t.Fatalf("total sessions: got %d", report.TotalSessions)
	}
}

func TestComputeIdempotent(t *testing.T) {
	sessions := []models.StudySession{{ID: 1, Topic: "History"}}
	results := []models.QuizResult{{SessionID: 1, Score: 7, Total: 10, WeakTopics: []string{"dates"}}}
	first := Compute(sessions, results)
	second := Compute(sessions, results)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reports differ: %+v vs %+v", first, second)
	}
}
