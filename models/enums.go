// ABOUTME: Enumerated CRM values and their fallback normalization
// ABOUTME: Covers deal stages, task priorities, activity types and quote statuses
package models

import "strings"

// Stage is a deal pipeline stage. Stages are ordered.
type Stage string

const (
	StageLead        Stage = "Lead"
	StageQualified   Stage = "Qualified"
	StageProposal    Stage = "Proposal"
	StageNegotiation Stage = "Negotiation"
	StageWon         Stage = "Won"
	StageLost        Stage = "Lost"
)

// Stages lists the pipeline in display order.
var Stages = []Stage{
	StageLead,
	StageQualified,
	StageProposal,
	StageNegotiation,
	StageWon,
	StageLost,
}

// Closed reports whether the stage ends the deal.
func (s Stage) Closed() bool {
	return s == StageWon || s == StageLost
}

// NormalizeStage canonicalises case and maps unknown values to the Lead bucket.
func NormalizeStage(s Stage) Stage {
	return pick(s, Stages, StageLead)
}

// Priority is a task priority.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// NormalizePriority canonicalises case and maps unknown values to medium.
func NormalizePriority(p Priority) Priority {
	return pick(p, Priorities, PriorityMedium)
}

// ActivityType is the kind of customer interaction.
type ActivityType string

const (
	ActivityCall    ActivityType = "call"
	ActivityEmail   ActivityType = "email"
	ActivityMeeting ActivityType = "meeting"
	ActivityNote    ActivityType = "note"
)

var ActivityTypes = []ActivityType{ActivityCall, ActivityEmail, ActivityMeeting, ActivityNote}

// NormalizeActivityType canonicalises case and maps unknown values to note.
func NormalizeActivityType(t ActivityType) ActivityType {
	return pick(t, ActivityTypes, ActivityNote)
}

// Timed reports whether a duration is meaningful for the activity type.
func (t ActivityType) Timed() bool {
	return t == ActivityCall || t == ActivityMeeting
}

// QuoteStatus is the lifecycle status of a quote.
type QuoteStatus string

const (
	QuoteDraft    QuoteStatus = "Draft"
	QuoteSent     QuoteStatus = "Sent"
	QuoteAccepted QuoteStatus = "Accepted"
	QuoteRejected QuoteStatus = "Rejected"
)

var QuoteStatuses = []QuoteStatus{QuoteDraft, QuoteSent, QuoteAccepted, QuoteRejected}

// NormalizeQuoteStatus canonicalises case and maps unknown values to Draft.
func NormalizeQuoteStatus(s QuoteStatus) QuoteStatus {
	return pick(s, QuoteStatuses, QuoteDraft)
}

func pick[E ~string](v E, allowed []E, fallback E) E {
	for _, a := range allowed {
		if strings.EqualFold(string(v), string(a)) {
			return a
		}
	}
	return fallback
}

// canonical returns the matching enum value, or v unchanged when unrecognised.
func canonical[E ~string](v E, allowed []E) E {
	for _, a := range allowed {
		if strings.EqualFold(string(v), string(a)) {
			return a
		}
	}
	return v
}
