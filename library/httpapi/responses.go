package httpapi

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/borrowdesk/library/desk"
	"github.com/AntonStoeckl/borrowdesk/library/features/query/bookavailability"
	"github.com/AntonStoeckl/borrowdesk/library/features/query/borrowrequests"
	"github.com/AntonStoeckl/borrowdesk/library/features/query/fines"
	"github.com/AntonStoeckl/borrowdesk/library/features/query/notifications"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

type bookResponse struct {
	BookID          string `json:"bookId"`
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	Authors         string `json:"authors"`
	IsActive        bool   `json:"isActive"`
	IsFeatured      bool   `json:"isFeatured"`
	TotalCopies     int    `json:"totalCopies"`
	AvailableCopies int    `json:"availableCopies"`
	BorrowedCopies  int    `json:"borrowedCopies"`
}

func toBookResponse(b bookavailability.BookInfo) bookResponse {
	return bookResponse{
		BookID:          b.BookID,
		ISBN:            b.ISBN,
		Title:           b.Title,
		Authors:         b.Authors,
		IsActive:        b.IsActive,
		IsFeatured:      b.IsFeatured,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
		BorrowedCopies:  b.BorrowedCopies,
	}
}

type borrowRequestOutcomeResponse struct {
	RequestID  string            `json:"requestId"`
	Status     core.BorrowStatus `json:"status,omitempty"`
	DueDate    *time.Time        `json:"dueDate,omitempty"`
	ReturnDate *time.Time        `json:"returnDate,omitempty"`
	Idempotent bool              `json:"idempotent"`
}

func toBorrowRequestOutcomeResponse(o desk.BorrowRequestOutcome) borrowRequestOutcomeResponse {
	return borrowRequestOutcomeResponse{
		RequestID:  o.RequestID,
		Status:     o.Status,
		DueDate:    o.DueDate,
		ReturnDate: o.ReturnDate,
		Idempotent: o.Idempotent,
	}
}

type borrowRequestResponse struct {
	RequestID     string            `json:"requestId"`
	UserID        string            `json:"userId"`
	BookID        string            `json:"bookId"`
	Status        core.BorrowStatus `json:"status"`
	Reason        string            `json:"reason,omitempty"`
	RequestedDays int               `json:"requestedDays"`
	RequestDate   time.Time         `json:"requestDate"`
	ApprovedDate  *time.Time        `json:"approvedDate"`
	DueDate       *time.Time        `json:"dueDate"`
	ReturnDate    *time.Time        `json:"returnDate"`
	AdminID       string            `json:"adminId,omitempty"`
	AdminResponse string            `json:"adminResponse,omitempty"`
	Condition     string            `json:"condition,omitempty"`
	Notes         string            `json:"notes,omitempty"`
}

type borrowRequestsResponse struct {
	Requests []borrowRequestResponse `json:"requests"`
	Count    int                     `json:"count"`
}

func toBorrowRequestsResponse(r borrowrequests.BorrowRequests) borrowRequestsResponse {
	out := borrowRequestsResponse{Requests: make([]borrowRequestResponse, 0, len(r.Requests)), Count: r.Count}

	for _, b := range r.Requests {
		out.Requests = append(out.Requests, borrowRequestResponse{
			RequestID:     b.RequestID,
			UserID:        b.UserID,
			BookID:        b.BookID,
			Status:        b.Status,
			Reason:        b.Reason,
			RequestedDays: b.RequestedDays,
			RequestDate:   b.RequestDate,
			ApprovedDate:  b.ApprovedDate,
			DueDate:       b.DueDate,
			ReturnDate:    b.ReturnDate,
			AdminID:       b.AdminID,
			AdminResponse: b.AdminResponse,
			Condition:     b.Condition,
			Notes:         b.Notes,
		})
	}

	return out
}

type fineOutcomeResponse struct {
	FineID    string          `json:"fineId"`
	RequestID string          `json:"requestId,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Paid      bool            `json:"paid"`
}

type fineResponse struct {
	FineID      string          `json:"fineId"`
	UserID      string          `json:"userId"`
	RequestID   string          `json:"requestId"`
	Amount      decimal.Decimal `json:"amount"`
	DaysOverdue int             `json:"daysOverdue"`
	IssuedAt    time.Time       `json:"issuedAt"`
	IsPaid      bool            `json:"isPaid"`
	PaidDate    *time.Time      `json:"paidDate"`
}

type finesResponse struct {
	Fines            []fineResponse  `json:"fines"`
	Count            int             `json:"count"`
	OutstandingTotal decimal.Decimal `json:"outstandingTotal"`
}

func toFinesResponse(f fines.Fines) finesResponse {
	out := finesResponse{
		Fines:            make([]fineResponse, 0, len(f.Fines)),
		Count:            f.Count,
		OutstandingTotal: f.OutstandingTotal,
	}

	for _, fine := range f.Fines {
		out.Fines = append(out.Fines, fineResponse{
			FineID:      fine.FineID,
			UserID:      fine.UserID,
			RequestID:   fine.RequestID,
			Amount:      fine.Amount,
			DaysOverdue: fine.DaysOverdue,
			IssuedAt:    fine.IssuedAt,
			IsPaid:      fine.IsPaid,
			PaidDate:    fine.PaidDate,
		})
	}

	return out
}

type notificationResponse struct {
	NotificationID string                `json:"notificationId"`
	Title          string                `json:"title"`
	Message        string                `json:"message"`
	Kind           core.NotificationKind `json:"kind"`
	CreatedAt      time.Time             `json:"createdAt"`
	IsRead         bool                  `json:"isRead"`
}

type notificationsResponse struct {
	Notifications []notificationResponse `json:"notifications"`
	Count         int                    `json:"count"`
	UnreadCount   int                    `json:"unreadCount"`
}

func toNotificationsResponse(n notifications.Notifications) notificationsResponse {
	out := notificationsResponse{
		Notifications: make([]notificationResponse, 0, len(n.Notifications)),
		Count:         n.Count,
		UnreadCount:   n.UnreadCount,
	}

	for _, info := range n.Notifications {
		out.Notifications = append(out.Notifications, notificationResponse{
			NotificationID: info.NotificationID,
			Title:          info.Title,
			Message:        info.Message,
			Kind:           info.Kind,
			CreatedAt:      info.CreatedAt,
			IsRead:         info.IsRead,
		})
	}

	return out
}
