// Package session implements the 24-hour session window classifier.
// A user's conversation opens a new billable window when at least 24.0
// wall-clock hours have passed since that user's previous conversation.
package session

import (
	"sort"

	"quina-billing/core/types"
)

// WindowHours is the billing window length
const WindowHours = 24.0

// Reason explains a window classification
type Reason string

const (
	// ReasonFirstContact marks the first conversation of a user in the period
	ReasonFirstContact Reason = "first_contact"

	// ReasonNewWindow marks a conversation at least 24h after the previous one
	ReasonNewWindow Reason = "new_window"

	// ReasonSameWindow marks a conversation inside the previous window
	ReasonSameWindow Reason = "same_window"
)

// Classified is a conversation record with its window result attached
type Classified struct {
	types.ConversationRecord

	// Billable is true when the record opens a new 24h window
	Billable bool

	// GapHours is the exact distance to the user's previous conversation.
	// Zero and meaningless for first contacts.
	GapHours float64

	// Reason explains the classification
	Reason Reason
}

// Result is the outcome of one classification pass
type Result struct {
	// Records holds every surviving record, ordered by (userID, startTime)
	// with original row order preserved on exact ties
	Records []Classified

	// Dropped counts rows excluded for missing required fields
	Dropped types.DropReport
}

// Classify flags each conversation record as billable or not. It is a
// pure function over the full record set: the per-user lag comparison
// needs the whole sorted group before any row is final, so records
// cannot be streamed one at a time.
//
// Records missing a user ID, start time, or conversation ID are
// excluded and counted in the drop report. A row without a conversation
// ID can never reach the billing state, so letting it participate in the
// window comparison would let a phantom row shrink its neighbor's gap.
func Classify(records []types.ConversationRecord) Result {
	var res Result

	kept := make([]Classified, 0, len(records))
	for _, rec := range records {
		if rec.UserID == "" {
			res.Dropped.ConversationsMissingUser++
			continue
		}
		if rec.StartTime.IsZero() {
			res.Dropped.ConversationsMissingStart++
			continue
		}
		if rec.ConversationID == "" {
			res.Dropped.ConversationsMissingID++
			continue
		}
		kept = append(kept, Classified{ConversationRecord: rec})
	}

	// Stable sort keeps original row order on exact (userID, startTime) ties.
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].UserID != kept[j].UserID {
			return kept[i].UserID < kept[j].UserID
		}
		return kept[i].StartTime.Before(kept[j].StartTime)
	})

	for i := range kept {
		if i == 0 || kept[i].UserID != kept[i-1].UserID {
			kept[i].Billable = true
			kept[i].Reason = ReasonFirstContact
			continue
		}

		gap := kept[i].StartTime.Sub(kept[i-1].StartTime).Seconds() / 3600.0
		kept[i].GapHours = gap
		if gap >= WindowHours {
			kept[i].Billable = true
			kept[i].Reason = ReasonNewWindow
		} else {
			kept[i].Reason = ReasonSameWindow
		}
	}

	res.Records = kept
	return res
}
