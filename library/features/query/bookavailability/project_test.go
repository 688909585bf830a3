package bookavailability_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/borrowdesk/library/features/query/bookavailability"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
	. "github.com/AntonStoeckl/borrowdesk/testutil/helper" //nolint:revive
)

func Test_Project_CountsCopiesHeldByBorrowers(t *testing.T) {
	// arrange
	bookID := uuid.New()
	lent, returned, overdue := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()

	history := core.DomainEvents{FixtureBookAdded(bookID, 3, now.Add(-30*core.Day))}
	history = append(history, FixtureApprovedLoan(lent, "member-1", bookID, now.Add(core.Day))...)
	history = append(history, FixtureApprovedLoan(returned, "member-2", bookID, now.Add(core.Day))...)
	history = append(history, core.BuildBorrowedBookReturned(returned, "member-2", bookID.String(), "GOOD", "", now))
	history = append(history, FixtureApprovedLoan(overdue, "member-3", bookID, now.Add(-core.Day))...)
	history = append(history, core.BuildBorrowRequestMarkedOverdue(overdue, "member-3", bookID.String(), now.Add(-core.Day), now))

	// act
	result := bookavailability.Project(history, bookavailability.BuildQuery(bookID), 9)

	// assert
	book, found := result.Book(bookID.String())
	require.True(t, found)
	assert.Equal(t, 3, book.TotalCopies)
	assert.Equal(t, 2, book.BorrowedCopies, "approved and overdue requests hold a copy")
	assert.Equal(t, 1, book.AvailableCopies)
	assert.Equal(t, book.TotalCopies, book.BorrowedCopies+book.AvailableCopies)
	assert.True(t, book.IsActive)
}

func Test_Project_TracksActiveFlag(t *testing.T) {
	// arrange
	bookID := uuid.New()
	now := time.Now()

	testCases := []struct {
		description string
		history     core.DomainEvents
		active      bool
	}{
		{
			description: "new book is active",
			history:     core.DomainEvents{FixtureBookAdded(bookID, 1, now)},
			active:      true,
		},
		{
			description: "deactivated book",
			history: core.DomainEvents{
				FixtureBookAdded(bookID, 1, now),
				core.BuildBookDeactivated(bookID, now.Add(time.Minute)),
			},
			active: false,
		},
		{
			description: "reactivated book",
			history: core.DomainEvents{
				FixtureBookAdded(bookID, 1, now),
				core.BuildBookDeactivated(bookID, now.Add(time.Minute)),
				core.BuildBookReactivated(bookID, now.Add(2*time.Minute)),
			},
			active: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			result := bookavailability.Project(tc.history, bookavailability.BuildQuery(bookID), uint(len(tc.history)))

			// assert
			book, found := result.Book(bookID.String())
			require.True(t, found)
			assert.Equal(t, tc.active, book.IsActive)
		})
	}
}
