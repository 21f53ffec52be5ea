package storage

import (
	"reflect"
	"testing"
)

func TestJoinWeakTopicsReplacesCommas(t *testing.T) {
	got := joinWeakTopics([]string{"Algebra", "Sets, Relations", "  ", ""})
	if got != "Algebra,Sets  Relations" {
		t.Fatalf("unexpected joined topics: %q", got)
	}
}

func TestSplitWeakTopicsRoundTrip(t *testing.T) {
	topics := []string{"Algebra", "Geometry"}
	got := splitWeakTopics(joinWeakTopics(topics))
	if !reflect.DeepEqual(got, topics) {
		t.Fatalf("round trip mismatch: %v", got)
	}
}

func TestSplitWeakTopicsEmpty(t *testing.T) {
	if got := splitWeakTopics(""); len(got) != 0 {
		t.Fatalf("expected empty slice, got %v", got)
	}
}
