package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/borrowdesk/library/automation"
	"github.com/AntonStoeckl/borrowdesk/library/desk"
	"github.com/AntonStoeckl/borrowdesk/library/features/query/borrowrequests"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

func pathID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: id must be a UUID", ErrInvalidRequest)
	}

	return id, nil
}

// POST /books (ADMIN/LIBRARIAN)
func (s *Server) addBook(c *gin.Context) {
	var in struct {
		ISBN        string `json:"isbn"        validate:"required,max=32"`
		Title       string `json:"title"       validate:"required,max=300"`
		Authors     string `json:"authors"     validate:"max=300"`
		TotalCopies int    `json:"totalCopies" validate:"min=1"`
		IsFeatured  bool   `json:"isFeatured"`
	}
	if err := s.bindJSON(c, &in); err != nil {
		writeError(c, s.logger, err)
		return
	}

	bookID, err := s.desk.AddBook(c.Request.Context(), desk.AddBookInput{
		ISBN:        in.ISBN,
		Title:       in.Title,
		Authors:     in.Authors,
		TotalCopies: in.TotalCopies,
		IsFeatured:  in.IsFeatured,
	})
	if err != nil {
		writeError(c, s.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"bookId": bookID})
}

// POST /books/:id/deactivate (ADMIN/LIBRARIAN)
func (s *Server) deactivateBook(c *gin.Context) {
	s.changeActivation(c, false)
}

// POST /books/:id/reactivate (ADMIN/LIBRARIAN)
func (s *Server) reactivateBook(c *gin.Context) {
	s.changeActivation(c, true)
}

func (s *Server) changeActivation(c *gin.Context, active bool) {
	bookID, err := pathID(c)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}

	if active {
		err = s.desk.ReactivateBook(c.Request.Context(), bookID)
	} else {
		err = s.desk.DeactivateBook(c.Request.Context(), bookID)
	}

	if err != nil {
		writeError(c, s.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookId": bookID.String(), "isActive": active})
}

// GET /books
func (s *Server) listBooks(c *gin.Context) {
	books, err := s.desk.Books(c.Request.Context())
	if err != nil {
		writeError(c, s.logger, err)
		return
	}

	out := make([]bookResponse, 0, len(books.Books))
	for _, b := range books.Books {
		out = append(out, toBookResponse(b))
	}

	c.JSON(http.StatusOK, gin.H{"books": out, "count": books.Count})
}

// GET /books/:id/availability
func (s *Server) bookAvailability(c *gin.Context) {
	bookID, err := pathID(c)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}

	book, err := s.desk.BookAvailability(c.Request.Context(), bookID)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}

	c.JSON(http.StatusOK, toBookResponse(book))
}

// POST /borrow-requests
func (s *Server) submitBorrowRequest(c *gin.Context) {
	var in struct {
		RequestID     string `json:"requestId"     validate:"omitempty,uuid"`
		BookID        string `json:"bookId"        validate:"required,uuid"`
		Reason        string `json:"reason"        validate:"max=500"`
		RequestedDays int    `json:"requestedDays" validate:"gte=0"`
	}
	if err := s.bindJSON(c, &in); err != nil {
		writeError(c, s.logger, err)
		return
	}

	input := desk.SubmitInput{
		BookID:        uuid.MustParse(in.BookID),
		Reason:        in.Reason,
		RequestedDays: in.RequestedDays,
	}
	if in.RequestID != "" {
		input.RequestID = uuid.MustParse(in.RequestID)
	}

	outcome, err := s.desk.SubmitBorrowRequest(c.Request.Context(), subjectOf(c), input)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}

	status := http.StatusCreated
	if outcome.Idempotent {
		status = http.StatusOK
	}

	c.JSON(status, toBorrowRequestOutcomeResponse(outcome))
}

// GET /borrow-requests?status=&userId=
// Members only see their own requests, staff can filter by userId or see all.
func (s *Server) listBorrowRequests(c *gin.Context) {
	status := core.BorrowStatus(c.Query("status"))
	if status != "" && !status.IsValid() {
		writeError(c, s.logger, fmt.Errorf("%w: unknown status %q", ErrInvalidRequest, status))
		return
	}

	userID := subjectOf(c)
	if roleOf(c).IsStaff() {
		userID = c.Query("userId")
	}

	requests, err := s.desk.BorrowRequests(c.Request.Context(), borrowrequests.BuildQuery(userID, status))
	if err != nil {
		writeError(c, s.logger, err)
		return
	}

	c.JSON(http.StatusOK, toBorrowRequestsResponse(requests))
}

// PATCH /borrow-requests/:id (ADMIN/LIBRARIAN)
func (s *Server) decideBorrowRequest(c *gin.Context) {
	requestID, err := pathID(c)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}

	var in struct {
		Action        string `json:"action"        validate:"required,oneof=APPROVE REJECT"`
		AdminResponse string `json:"adminResponse" validate:"max=500"`
	}
	if err = s.bindJSON(c, &in); err != nil {
		writeError(c, s.logger, err)
		return
	}

	outcome, err := s.desk.DecideBorrowRequest(
		c.Request.Context(),
		subjectOf(c),
		requestID,
		core.DecideAction(in.Action),
		in.AdminResponse,
	)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}

	c.JSON(http.StatusOK, toBorrowRequestOutcomeResponse(outcome))
}

// POST /books/return
func (s *Server) returnBook(c *gin.Context) {
	var in struct {
		RequestID string `json:"requestId" validate:"required,uuid"`
		Condition string `json:"condition" validate:"required,max=100"`
		Notes     string `json:"notes"     validate:"max=1000"`
	}
	if err := s.bindJSON(c, &in); err != nil {
		writeError(c, s.logger, err)
		return
	}

	outcome, err := s.desk.ReturnBorrowedBook(
		c.Request.Context(),
		subjectOf(c),
		uuid.MustParse(in.RequestID),
		in.Condition,
		in.Notes,
	)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}

	c.JSON(http.StatusOK, toBorrowRequestOutcomeResponse(outcome))
}

// GET /fines
// Members see their own fines, staff can filter by userId or see all.
func (s *Server) listFines(c *gin.Context) {
	userID := subjectOf(c)
	if roleOf(c).IsStaff() {
		userID = c.Query("userId")
	}

	fines, err := s.desk.Fines(c.Request.Context(), userID)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}

	c.JSON(http.StatusOK, toFinesResponse(fines))
}

// POST /fines/:id/pay
func (s *Server) payFine(c *gin.Context) {
	fineID, err := pathID(c)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}

	outcome, err := s.desk.PayFine(c.Request.Context(), subjectOf(c), fineID)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}

	c.JSON(http.StatusOK, fineOutcomeResponse{
		FineID:    outcome.FineID,
		RequestID: outcome.RequestID,
		Amount:    outcome.Amount,
		Paid:      outcome.Paid,
	})
}

// GET /notifications?unreadOnly=true
func (s *Server) listNotifications(c *gin.Context) {
	unreadOnly := c.Query("unreadOnly") == "true"

	notifications, err := s.desk.Notifications(c.Request.Context(), subjectOf(c), unreadOnly)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}

	c.JSON(http.StatusOK, toNotificationsResponse(notifications))
}

// POST /notifications/:id/read
func (s *Server) markNotificationRead(c *gin.Context) {
	notificationID, err := pathID(c)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}

	if err = s.desk.MarkNotificationRead(c.Request.Context(), subjectOf(c), notificationID); err != nil {
		writeError(c, s.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// POST /notifications/automated (cron secret or ADMIN)
func (s *Server) runAutomation(c *gin.Context) {
	var in struct {
		Action string `json:"action" validate:"required"`
	}
	if err := s.bindJSON(c, &in); err != nil {
		writeError(c, s.logger, err)
		return
	}

	action, err := automation.ParseAction(in.Action)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}

	report, err := s.runner.Run(c.Request.Context(), action)
	if err != nil {
		s.logger.ErrorContext(c.Request.Context(), "automation run had failures", "action", in.Action, "error", err)
	}

	c.JSON(http.StatusOK, report)
}
