package desk

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/borrowdesk/library/features/command/addbooktocatalog"
	"github.com/AntonStoeckl/borrowdesk/library/features/command/deactivatebook"
	"github.com/AntonStoeckl/borrowdesk/library/features/query/bookavailability"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

// AddBookInput describes a new catalog entry, a zero BookID gets a new ID.
type AddBookInput struct {
	BookID      uuid.UUID
	ISBN        string
	Title       string
	Authors     string
	TotalCopies int
	IsFeatured  bool
}

// AddBook adds a book to the catalog and returns its ID.
func (d *Desk) AddBook(ctx context.Context, input AddBookInput) (core.BookIDString, error) {
	bookID := input.BookID
	if bookID == uuid.Nil {
		bookID = uuid.Must(uuid.NewV7())
	}

	command := addbooktocatalog.BuildCommand(
		bookID,
		input.ISBN,
		input.Title,
		input.Authors,
		input.TotalCopies,
		input.IsFeatured,
		d.now(),
	)

	if _, err := d.addBook.Handle(ctx, command); err != nil {
		return "", err
	}

	return bookID.String(), nil
}

// DeactivateBook stops new borrow requests for the book, running loans are not affected.
func (d *Desk) DeactivateBook(ctx context.Context, bookID uuid.UUID) error {
	_, err := d.changeActivation.Handle(ctx, deactivatebook.BuildDeactivateCommand(bookID, d.now()))

	return err
}

func (d *Desk) ReactivateBook(ctx context.Context, bookID uuid.UUID) error {
	_, err := d.changeActivation.Handle(ctx, deactivatebook.BuildReactivateCommand(bookID, d.now()))

	return err
}

// BookAvailability returns the copies of one book, core.ErrNotFound if it is not in the catalog.
func (d *Desk) BookAvailability(ctx context.Context, bookID uuid.UUID) (bookavailability.BookInfo, error) {
	result, err := d.bookAvailability.Handle(ctx, bookavailability.BuildQuery(bookID))
	if err != nil {
		return bookavailability.BookInfo{}, err
	}

	book, found := result.Book(bookID.String())
	if !found {
		return bookavailability.BookInfo{}, fmt.Errorf("book %s: %w", bookID, core.ErrNotFound)
	}

	return book, nil
}

// Books returns the whole catalog with availability.
func (d *Desk) Books(ctx context.Context) (bookavailability.BookAvailability, error) {
	return d.bookAvailability.Handle(ctx, bookavailability.BuildQueryForAllBooks())
}

// bookTitle falls back to the ID, notifications must not fail because of a lookup.
func (d *Desk) bookTitle(ctx context.Context, bookID core.BookIDString) string {
	id, err := uuid.Parse(bookID)
	if err != nil {
		return bookID
	}

	result, err := d.bookAvailability.Handle(ctx, bookavailability.BuildQuery(id))
	if err != nil {
		d.logger.WarnContext(ctx, "looking up book title failed", "book_id", bookID, "error", err)

		return bookID
	}

	if book, found := result.Book(bookID); found && book.Title != "" {
		return book.Title
	}

	return bookID
}
