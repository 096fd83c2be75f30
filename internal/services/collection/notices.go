package collection

import (
	"fmt"

	"github.com/bharatshaala/wishsync/internal/events"
)

// outcome enumerates every user-visible result of a collection operation.
type outcome int

const (
	outcomeAdded outcome = iota
	outcomeRemoved
	outcomeDuplicate
	outcomeAbsent
	outcomeCleared
	outcomeAddFailed
	outcomeRemoveFailed
	outcomeClearFailed
	outcomeFetchFailed
	outcomeMerged
	outcomeMergePartial
	outcomeMoved
	outcomeMovePartial
)

type notice struct {
	format string // one %s, filled with the collection kind
	kind   events.NoticeKind
}

// notices maps every outcome to exactly one notification. Failure
// messages stay generic; raw error text goes to the log, never to the
// user.
var notices = map[outcome]notice{
	outcomeAdded:        {"Added to your %s!", events.NoticeSuccess},
	outcomeRemoved:      {"Removed from your %s", events.NoticeSuccess},
	outcomeDuplicate:    {"This item is already in your %s", events.NoticeInfo},
	outcomeAbsent:       {"This item is not in your %s", events.NoticeInfo},
	outcomeCleared:      {"Your %s was cleared", events.NoticeSuccess},
	outcomeAddFailed:    {"Could not update your %s. Please try again.", events.NoticeError},
	outcomeRemoveFailed: {"Could not update your %s. Please try again.", events.NoticeError},
	outcomeClearFailed:  {"Could not update your %s. Please try again.", events.NoticeError},
	outcomeFetchFailed:  {"Could not load your %s. Please try again.", events.NoticeError},
	outcomeMerged:       {"Your %s is synced!", events.NoticeSuccess},
	outcomeMergePartial: {"Some items in your %s could not be synced", events.NoticeInfo},
	outcomeMoved:        {"All %s items moved to your cart", events.NoticeSuccess},
	outcomeMovePartial:  {"Some %s items could not be moved to your cart", events.NoticeInfo},
}

// emit sends the single notification mapped to an outcome.
func (s *Service) emit(o outcome) {
	n, ok := notices[o]
	if !ok {
		return
	}
	s.notifier.Notify(fmt.Sprintf(n.format, s.kind), n.kind)
}
