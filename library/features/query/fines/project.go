package fines

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/borrowdesk/eventstore"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

// Project folds the fine events into the current state of each fine.
//
// Query Logic:
//
//	GIVEN: All fine events (of one user, if the query has a UserID)
//	WHEN: Fines query is executed
//	THEN: Fines struct is returned, oldest fine first
//	OUTSTANDING: The sum of the amounts of all unpaid fines
func Project(history core.DomainEvents, query Query, maxSequence uint) Fines {
	fines := make(map[core.FineIDString]*FineInfo)

	for _, event := range history {
		switch e := event.(type) {
		case core.FineIssued:
			fines[e.FineID] = &FineInfo{
				FineID:      e.FineID,
				UserID:      e.UserID,
				RequestID:   e.RequestID,
				Amount:      e.Amount,
				DaysOverdue: e.DaysOverdue,
				IssuedAt:    e.OccurredAt,
				UpdatedAt:   e.OccurredAt,
			}

		case core.FineAmountUpdated:
			if f, ok := fines[e.FineID]; ok {
				f.Amount = e.Amount
				f.DaysOverdue = e.DaysOverdue
				f.UpdatedAt = e.OccurredAt
			}

		case core.FinePaid:
			if f, ok := fines[e.FineID]; ok {
				paidDate := e.OccurredAt
				f.IsPaid = true
				f.PaidDate = &paidDate
				f.UpdatedAt = e.OccurredAt
			}
		}
	}

	outstanding := decimal.Zero
	list := make([]FineInfo, 0, len(fines))

	for _, f := range fines {
		if query.UserID != "" && f.UserID != query.UserID {
			continue
		}

		if !f.IsPaid {
			outstanding = outstanding.Add(f.Amount)
		}

		list = append(list, *f)
	}

	slices.SortFunc(list, func(a, b FineInfo) int {
		if c := a.IssuedAt.Compare(b.IssuedAt); c != 0 {
			return c
		}

		return strings.Compare(a.FineID, b.FineID)
	})

	return Fines{
		Fines:            list,
		Count:            len(list),
		OutstandingTotal: outstanding,
		SequenceNumber:   maxSequence,
	}
}

// BuildEventFilter creates the filter for querying the fine events, restricted to one user if the query has a UserID.
func BuildEventFilter(query Query) eventstore.Filter {
	builder := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.FineIssuedEventType,
			core.FineAmountUpdatedEventType,
			core.FinePaidEventType,
		)

	if query.UserID == "" {
		return builder.Finalize()
	}

	return builder.
		AndAnyPredicateOf(eventstore.P("UserID", query.UserID)).
		Finalize()
}
