package main

import "testing"

func classificationWith(topics ...Topic) ClassificationResult {
	return ClassificationResult{
		TopicTags:  topics,
		Sentiment:  SentimentNeutral,
		Priority:   PriorityP2,
		Confidence: 0.9,
	}
}

func TestRouteEscalatesDisallowedTopics(t *testing.T) {
	decision := Route(classificationWith(TopicConnector))
	if decision.UseAutomatedAnswer {
		t.Fatalf("expected Connector-only ticket to escalate")
	}
	want := "This ticket has been classified as a 'Connector' issue and routed to the appropriate team."
	if decision.EscalationMessage != want {
		t.Fatalf("unexpected escalation message: %q", decision.EscalationMessage)
	}
	if decision.SearchScope != "" {
		t.Fatalf("escalated ticket should carry no search scope, got %q", decision.SearchScope)
	}
}

func TestRouteEscalationKeyedByFirstTopic(t *testing.T) {
	decision := Route(classificationWith(TopicGlossary, TopicLineage))
	want := "This ticket has been classified as a 'Glossary' issue and routed to the appropriate team."
	if decision.EscalationMessage != want {
		t.Fatalf("expected message keyed by first topic, got %q", decision.EscalationMessage)
	}

	// Template must be stable per topic.
	again := Route(classificationWith(TopicGlossary, TopicLineage))
	if again.EscalationMessage != decision.EscalationMessage {
		t.Fatalf("escalation message not reproducible")
	}
}

func TestRouteDevHubScopeForAPISDK(t *testing.T) {
	decision := Route(classificationWith(TopicAPISDK))
	if !decision.UseAutomatedAnswer {
		t.Fatalf("expected API/SDK ticket to use automated answer")
	}
	if decision.SearchScope != ScopeDevHub {
		t.Fatalf("expected devhub scope, got %s", decision.SearchScope)
	}
}

func TestRouteAnyMatchAllowsAutomation(t *testing.T) {
	// Mixed tags with one allowed topic take the automated path.
	decision := Route(classificationWith(TopicProduct, TopicConnector))
	if !decision.UseAutomatedAnswer {
		t.Fatalf("expected any-match rule to allow automation")
	}
	if decision.SearchScope != ScopeDocs {
		t.Fatalf("expected docs scope, got %s", decision.SearchScope)
	}
	if decision.EscalationMessage != "" {
		t.Fatalf("automated ticket should carry no escalation message")
	}
}

func TestRouteDocsScopeTopics(t *testing.T) {
	for _, topic := range []Topic{TopicHowTo, TopicProduct, TopicBestPractices, TopicSSO} {
		decision := Route(classificationWith(topic))
		if !decision.UseAutomatedAnswer {
			t.Fatalf("expected %s to use automated answer", topic)
		}
		if decision.SearchScope != ScopeDocs {
			t.Fatalf("expected docs scope for %s, got %s", topic, decision.SearchScope)
		}
	}
}

func TestRouteAPISDKWinsOverDocsTopics(t *testing.T) {
	decision := Route(classificationWith(TopicProduct, TopicAPISDK))
	if decision.SearchScope != ScopeDevHub {
		t.Fatalf("expected API/SDK presence to select devhub, got %s", decision.SearchScope)
	}
}

func TestRouteNeverRelaxedByConfidence(t *testing.T) {
	result := classificationWith(TopicSensitiveData)
	result.Confidence = 0.99
	result.Priority = PriorityP0

	decision := Route(result)
	if decision.UseAutomatedAnswer {
		t.Fatalf("high confidence must not relax the topic allow-set")
	}
}
