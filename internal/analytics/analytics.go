package analytics

import (
	"math"

	"studymate/internal/models"
)

const maxWeakTopics = 5

type Report struct {
	Mastery        float64        `json:"mastery"`
	WeakTopics     []string       `json:"weak_topics"`
	TotalSessions  int            `json:"total_sessions"`
	TopicBreakdown []TopicMastery `json:"topic_breakdown"`
}

type TopicMastery struct {
	Topic   string  `json:"topic"`
	Mastery float64 `json:"mastery"`
}

// Compute joins quiz results to their owning sessions and reduces the
// snapshot into mastery metrics. It is a pure function of its inputs: results
// whose session is gone are skipped, and a zero question total counts as 0%
// rather than faulting.
func Compute(sessions []models.StudySession, results []models.QuizResult) Report {
	report := Report{
		WeakTopics:     []string{},
		TopicBreakdown: []TopicMastery{},
	}
	if len(results) == 0 {
		return report
	}

	topicByID := make(map[int64]string, len(sessions))
	for _, s := range sessions {
		topic := s.Topic
		if topic == "" {
			topic = "Unknown Topic"
		}
		topicByID[s.ID] = topic
	}

	type topicAgg struct {
		sum   float64
		count int
	}
	var percentSum float64
	joined := 0
	sessionSeen := map[int64]struct{}{}
	weakCounts := map[string]int{}
	weakOrder := []string{}
	topicAggs := map[string]*topicAgg{}
	topicOrder := []string{}

	for _, r := range results {
		topic, ok := topicByID[r.SessionID]
		if !ok {
			continue
		}
		percentage := 0.0
		if r.Total > 0 {
			percentage = 100 * float64(r.Score) / float64(r.Total)
		}
		percentSum += percentage
		joined++
		sessionSeen[r.SessionID] = struct{}{}

		for _, weak := range r.WeakTopics {
			if weak == "" {
				continue
			}
			if _, ok := weakCounts[weak]; !ok {
				weakOrder = append(weakOrder, weak)
			}
			weakCounts[weak]++
		}

		agg, ok := topicAggs[topic]
		if !ok {
			agg = &topicAgg{}
			topicAggs[topic] = agg
			topicOrder = append(topicOrder, topic)
		}
		agg.sum += percentage
		agg.count++
	}

	if joined == 0 {
		return report
	}

	report.Mastery = round(percentSum/float64(joined), 2)
	report.TotalSessions = len(sessionSeen)
	report.WeakTopics = rankWeakTopics(weakOrder, weakCounts)
	for _, topic := range topicOrder {
		agg := topicAggs[topic]
		report.TopicBreakdown = append(report.TopicBreakdown, TopicMastery{
			Topic:   topic,
			Mastery: round(agg.sum/float64(agg.count), 1),
		})
	}
	return report
}

// rankWeakTopics sorts by descending count; ties keep first-seen order.
// Insertion sort keeps the tie-break stable without a secondary key.
func rankWeakTopics(order []string, counts map[string]int) []string {
	ranked := make([]string, 0, len(order))
	for _, topic := range order {
		pos := len(ranked)
		for pos > 0 && counts[ranked[pos-1]] < counts[topic] {
			pos--
		}
		ranked = append(ranked, "")
		copy(ranked[pos+1:], ranked[pos:])
		ranked[pos] = topic
	}
	if len(ranked) > maxWeakTopics {
		ranked = ranked[:maxWeakTopics]
	}
	return ranked
}

func round(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
