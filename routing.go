package main

import "fmt"

// Topics eligible for an automated documentation-search answer. Any ticket
// whose topics fall entirely outside this set is escalated to a human team;
// confidence and sentiment never relax this boundary.
var automatedAnswerTopics = map[Topic]bool{
	TopicHowTo:         true,
	TopicProduct:       true,
	TopicBestPractices: true,
	TopicAPISDK:        true,
	TopicSSO:           true,
}

// Topics answered from the main product documentation when API/SDK is not
// in play.
var docsScopeTopics = map[Topic]bool{
	TopicProduct:       true,
	TopicBestPractices: true,
	TopicSSO:           true,
	TopicHowTo:         true,
}

// Route decides whether a classified ticket gets an automated answer or an
// escalation. One allowed topic anywhere in the tag list is enough for the
// automated path.
func Route(result ClassificationResult) RoutingDecision {
	allowed := false
	for _, t := range result.TopicTags {
		if automatedAnswerTopics[t] {
			allowed = true
			break
		}
	}

	if !allowed {
		topic := TopicOther
		if len(result.TopicTags) > 0 {
			topic = result.TopicTags[0]
		}
		return RoutingDecision{EscalationMessage: escalationMessage(topic)}
	}

	return RoutingDecision{
		UseAutomatedAnswer: true,
		SearchScope:        selectSearchScope(result.TopicTags),
	}
}

func selectSearchScope(tags []Topic) SearchScope {
	for _, t := range tags {
		if t == TopicAPISDK {
			return ScopeDevHub
		}
	}
	for _, t := range tags {
		if docsScopeTopics[t] {
			return ScopeDocs
		}
	}
	return ScopeBoth
}

// escalationMessage is the deterministic template keyed by the first topic
// tag; it must stay stable per topic.
func escalationMessage(topic Topic) string {
	return fmt.Sprintf("This ticket has been classified as a '%s' issue and routed to the appropriate team.", topic)
}
