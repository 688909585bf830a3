package payfine

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/borrowdesk/eventstore"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

const (
	failureReasonFineNotFound = "fine not found"
	failureReasonAlreadyPaid  = "fine is already paid"
)

type state struct {
	fineExists bool
	userID     core.UserIDString
	requestID  core.RequestIDString
	amount     decimal.Decimal
	paid       bool
}

// Decide implements the business logic for paying a fine.
//
// Business Rules:
//
//	GIVEN: A fine with FineID
//	WHEN: PayFine command is received from UserID
//	THEN: FinePaid event is generated with the fine's current amount
//	ERROR: "fine not found" if there is no such fine, or it belongs to another member
//	ERROR: "fine is already paid" if it was paid before
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := project(history, command.FineID.String())

	if !s.fineExists || s.userID != command.UserID {
		return failure(command, failureReasonFineNotFound, core.ErrNotFound)
	}

	if s.paid {
		return failure(command, failureReasonAlreadyPaid, core.ErrRuleViolation)
	}

	return core.SuccessDecision(
		core.BuildFinePaid(
			command.FineID,
			s.userID,
			s.requestID,
			s.amount,
			command.OccurredAt,
		),
	)
}

func failure(command Command, reason string, kind error) core.DecisionResult {
	event := core.BuildPayingFineFailed(command.FineID, command.UserID, reason, command.OccurredAt)

	return core.ErrorDecision(event, core.Failure(event.IsEventType(), reason, kind))
}

func project(history core.DomainEvents, fineID core.FineIDString) state {
	s := state{}

	for _, event := range history {
		switch e := event.(type) {
		case core.FineIssued:
			if e.FineID == fineID {
				s.fineExists = true
				s.userID = e.UserID
				s.requestID = e.RequestID
				s.amount = e.Amount
			}

		case core.FineAmountUpdated:
			if e.FineID == fineID {
				s.amount = e.Amount
			}

		case core.FinePaid:
			if e.FineID == fineID {
				s.paid = true
			}
		}
	}

	return s
}

// BuildEventFilter creates the filter for querying all events of one fine.
func BuildEventFilter(fineID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.FineIssuedEventType,
			core.FineAmountUpdatedEventType,
			core.FinePaidEventType,
		).
		AndAnyPredicateOf(
			eventstore.P("FineID", fineID.String()),
		).
		Finalize()
}
