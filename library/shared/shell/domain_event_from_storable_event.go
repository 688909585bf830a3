package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/borrowdesk/eventstore"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents eventstore.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent eventstore.StorableEvent) (core.DomainEvent, error) {
	payload := storableEvent.PayloadJSON

	switch storableEvent.EventType {
	case core.BookAddedToCatalogEventType:
		return unmarshal[core.BookAddedToCatalog](payload)
	case core.BookDeactivatedEventType:
		return unmarshal[core.BookDeactivated](payload)
	case core.BookReactivatedEventType:
		return unmarshal[core.BookReactivated](payload)
	case core.ChangingCatalogFailedEventType:
		return unmarshal[core.ChangingCatalogFailed](payload)

	case core.BorrowRequestSubmittedEventType:
		return unmarshal[core.BorrowRequestSubmitted](payload)
	case core.SubmittingBorrowRequestFailedEventType:
		return unmarshal[core.SubmittingBorrowRequestFailed](payload)
	case core.BorrowRequestApprovedEventType:
		return unmarshal[core.BorrowRequestApproved](payload)
	case core.BorrowRequestRejectedEventType:
		return unmarshal[core.BorrowRequestRejected](payload)
	case core.DecidingBorrowRequestFailedEventType:
		return unmarshal[core.DecidingBorrowRequestFailed](payload)
	case core.BorrowedBookReturnedEventType:
		return unmarshal[core.BorrowedBookReturned](payload)
	case core.ReturningBorrowedBookFailedEventType:
		return unmarshal[core.ReturningBorrowedBookFailed](payload)
	case core.BorrowRequestMarkedOverdueEventType:
		return unmarshal[core.BorrowRequestMarkedOverdue](payload)

	case core.FineIssuedEventType:
		return unmarshal[core.FineIssued](payload)
	case core.FineAmountUpdatedEventType:
		return unmarshal[core.FineAmountUpdated](payload)
	case core.FinePaidEventType:
		return unmarshal[core.FinePaid](payload)
	case core.PayingFineFailedEventType:
		return unmarshal[core.PayingFineFailed](payload)

	case core.NotificationCreatedEventType:
		return unmarshal[core.NotificationCreated](payload)
	case core.NotificationMarkedReadEventType:
		return unmarshal[core.NotificationMarkedRead](payload)
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

func unmarshal[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	var event E

	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &event); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return event, nil
}
