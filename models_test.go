package main

import (
	"reflect"
	"testing"
)

func TestTopicsJoinSplitRoundTrip(t *testing.T) {
	tags := []Topic{TopicProduct, TopicBestPractices, TopicAPISDK}
	joined := joinTopics(tags)
	if joined != "Product, Best practices, API/SDK" {
		t.Fatalf("unexpected joined form: %q", joined)
	}
	if got := splitTopics(joined); !reflect.DeepEqual(got, tags) {
		t.Fatalf("round trip failed: %v", got)
	}
}

func TestSplitTopicsSkipsEmptyParts(t *testing.T) {
	if got := splitTopics(" , Product ,, "); !reflect.DeepEqual(got, []Topic{TopicProduct}) {
		t.Fatalf("expected [Product], got %v", got)
	}
	if got := splitTopics(""); got != nil {
		t.Fatalf("expected nil for empty string, got %v", got)
	}
}
