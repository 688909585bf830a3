package httpapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/borrowdesk/eventstore/memoryengine"
	"github.com/AntonStoeckl/borrowdesk/library/automation"
	"github.com/AntonStoeckl/borrowdesk/library/desk"
	"github.com/AntonStoeckl/borrowdesk/library/httpapi"
)

const (
	jwtSecret  = "test-jwt-secret"
	cronSecret = "test-cron-secret"
)

type fixture struct {
	handler  http.Handler
	verifier httpapi.TokenVerifier
	now      time.Time
}

func setupServer(t *testing.T) *fixture {
	t.Helper()

	gin.SetMode(gin.TestMode)

	f := &fixture{
		verifier: httpapi.NewTokenVerifier(jwtSecret),
		now:      time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	d, err := desk.New(
		memoryengine.NewEventStore(),
		desk.WithLogger(logger),
		desk.WithAdminUserIDs("admin-1"),
		desk.WithClock(func() time.Time { return f.now }),
	)
	require.NoError(t, err)

	runner := automation.NewRunner(d, automation.WithLogger(logger))
	f.handler = httpapi.NewServer(d, runner, jwtSecret,
		httpapi.WithCronSecret(cronSecret),
		httpapi.WithLogger(logger),
	).Handler()

	return f
}

func (f *fixture) token(t *testing.T, subject string, role httpapi.Role) string {
	t.Helper()

	token, err := f.verifier.Sign(subject, role, time.Hour)
	require.NoError(t, err)

	return token
}

func (f *fixture) do(t *testing.T, method string, path string, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader = http.NoBody
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	out := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())

	return out
}

func (f *fixture) givenBook(t *testing.T, copies int) string {
	t.Helper()

	rec := f.do(t, http.MethodPost, "/books", f.token(t, "admin-1", httpapi.RoleAdmin), map[string]any{
		"isbn":        "978-0441013593",
		"title":       "Dune",
		"authors":     "Frank Herbert",
		"totalCopies": copies,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	return decode(t, rec)["bookId"].(string)
}

func (f *fixture) givenSubmitted(t *testing.T, userID string, bookID string) string {
	t.Helper()

	rec := f.do(t, http.MethodPost, "/borrow-requests", f.token(t, userID, httpapi.RoleMember), map[string]any{
		"bookId": bookID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	return decode(t, rec)["requestId"].(string)
}

func Test_Server_Healthz(t *testing.T) {
	// arrange
	f := setupServer(t)

	// act
	rec := f.do(t, http.MethodGet, "/healthz", "", nil)

	// assert
	assert.Equal(t, http.StatusOK, rec.Code)
}

func Test_Server_Authentication(t *testing.T) {
	f := setupServer(t)
	foreign, err := httpapi.NewTokenVerifier("another-secret").Sign("member-1", httpapi.RoleMember, time.Hour)
	require.NoError(t, err)
	expired, err := f.verifier.Sign("member-1", httpapi.RoleMember, -time.Minute)
	require.NoError(t, err)

	testCases := []struct {
		name     string
		token    string
		expected int
	}{
		{name: "missing token", token: "", expected: http.StatusUnauthorized},
		{name: "garbage token", token: "not-a-jwt", expected: http.StatusUnauthorized},
		{name: "foreign signature", token: foreign, expected: http.StatusUnauthorized},
		{name: "expired token", token: expired, expected: http.StatusUnauthorized},
		{name: "valid token", token: f.token(t, "member-1", httpapi.RoleMember), expected: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			rec := f.do(t, http.MethodGet, "/notifications", tc.token, nil)

			// assert
			assert.Equal(t, tc.expected, rec.Code)
		})
	}
}

func Test_Server_MemberCannotManageCatalog(t *testing.T) {
	// arrange
	f := setupServer(t)

	// act
	rec := f.do(t, http.MethodPost, "/books", f.token(t, "member-1", httpapi.RoleMember), map[string]any{
		"isbn":        "isbn",
		"title":       "Dune",
		"totalCopies": 1,
	})

	// assert
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func Test_Server_InvalidBodyIsBadRequest(t *testing.T) {
	// arrange
	f := setupServer(t)

	// act
	rec := f.do(t, http.MethodPost, "/borrow-requests", f.token(t, "member-1", httpapi.RoleMember), map[string]any{
		"bookId": "not-a-uuid",
	})

	// assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "bookId")
}

func Test_Server_LastCopyRace(t *testing.T) {
	// arrange
	f := setupServer(t)
	bookID := f.givenBook(t, 1)
	first := f.givenSubmitted(t, "member-1", bookID)
	second := f.givenSubmitted(t, "member-2", bookID)
	admin := f.token(t, "admin-1", httpapi.RoleAdmin)

	// act
	approveFirst := f.do(t, http.MethodPatch, "/borrow-requests/"+first, admin, map[string]any{"action": "APPROVE"})
	approveSecond := f.do(t, http.MethodPatch, "/borrow-requests/"+second, admin, map[string]any{"action": "APPROVE"})

	// assert
	require.Equal(t, http.StatusOK, approveFirst.Code, approveFirst.Body.String())
	assert.Equal(t, "APPROVED", decode(t, approveFirst)["status"])
	assert.NotNil(t, decode(t, approveFirst)["dueDate"])

	assert.Equal(t, http.StatusBadRequest, approveSecond.Code)
	assert.Equal(t, "book is no longer available", decode(t, approveSecond)["error"])

	availability := f.do(t, http.MethodGet, "/books/"+bookID+"/availability", admin, nil)
	require.Equal(t, http.StatusOK, availability.Code)
	assert.InDelta(t, 0, decode(t, availability)["availableCopies"], 0)
}

func Test_Server_ReturnByAnotherMemberIsForbidden(t *testing.T) {
	// arrange
	f := setupServer(t)
	bookID := f.givenBook(t, 1)
	requestID := f.givenSubmitted(t, "member-1", bookID)
	admin := f.token(t, "admin-1", httpapi.RoleAdmin)
	rec := f.do(t, http.MethodPatch, "/borrow-requests/"+requestID, admin, map[string]any{"action": "APPROVE"})
	require.Equal(t, http.StatusOK, rec.Code)

	// act
	rec = f.do(t, http.MethodPost, "/books/return", f.token(t, "member-2", httpapi.RoleMember), map[string]any{
		"requestId": requestID,
		"condition": "GOOD",
	})

	// assert
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func Test_Server_PayUnknownFineIsNotFound(t *testing.T) {
	// arrange
	f := setupServer(t)

	// act
	rec := f.do(t, http.MethodPost, "/fines/0190a5d4-1c3e-7a8b-9c0d-1e2f3a4b5c6d/pay", f.token(t, "member-1", httpapi.RoleMember), nil)

	// assert
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "fine not found", decode(t, rec)["error"])
}

func Test_Server_MembersOnlySeeTheirOwnRequests(t *testing.T) {
	// arrange
	f := setupServer(t)
	bookID := f.givenBook(t, 2)
	f.givenSubmitted(t, "member-1", bookID)
	f.givenSubmitted(t, "member-2", bookID)

	// act
	own := f.do(t, http.MethodGet, "/borrow-requests?userId=member-2", f.token(t, "member-1", httpapi.RoleMember), nil)
	all := f.do(t, http.MethodGet, "/borrow-requests", f.token(t, "admin-1", httpapi.RoleAdmin), nil)

	// assert
	require.Equal(t, http.StatusOK, own.Code)
	assert.InDelta(t, 1, decode(t, own)["count"], 0)

	require.Equal(t, http.StatusOK, all.Code)
	assert.InDelta(t, 2, decode(t, all)["count"], 0)
}

func Test_Server_NotificationsCanBeMarkedRead(t *testing.T) {
	// arrange
	f := setupServer(t)
	bookID := f.givenBook(t, 1)
	f.givenSubmitted(t, "member-1", bookID)
	member := f.token(t, "member-1", httpapi.RoleMember)

	inbox := decode(t, f.do(t, http.MethodGet, "/notifications", member, nil))
	require.InDelta(t, 1, inbox["unreadCount"], 0)
	notificationID := inbox["notifications"].([]any)[0].(map[string]any)["notificationId"].(string)

	// act
	markRead := f.do(t, http.MethodPost, "/notifications/"+notificationID+"/read", member, nil)
	markForeign := f.do(t, http.MethodPost, "/notifications/"+notificationID+"/read", f.token(t, "member-2", httpapi.RoleMember), nil)

	// assert
	assert.Equal(t, http.StatusNoContent, markRead.Code)
	assert.Equal(t, http.StatusNotFound, markForeign.Code)

	inbox = decode(t, f.do(t, http.MethodGet, "/notifications?unreadOnly=true", member, nil))
	assert.InDelta(t, 0, inbox["count"], 0)
}

func Test_Server_AutomatedNotificationsAuthorization(t *testing.T) {
	f := setupServer(t)
	body := map[string]any{"action": "daily-notifications"}

	withCronHeader := func(t *testing.T) *httptest.ResponseRecorder {
		payload, err := json.Marshal(body)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/notifications/automated", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Cron-Secret", cronSecret)

		rec := httptest.NewRecorder()
		f.handler.ServeHTTP(rec, req)

		return rec
	}

	testCases := []struct {
		name     string
		send     func(t *testing.T) *httptest.ResponseRecorder
		expected int
	}{
		{
			name:     "no credentials",
			send:     func(t *testing.T) *httptest.ResponseRecorder { return f.do(t, http.MethodPost, "/notifications/automated", "", body) },
			expected: http.StatusUnauthorized,
		},
		{
			name:     "cron secret header",
			send:     withCronHeader,
			expected: http.StatusOK,
		},
		{
			name: "cron secret as bearer token",
			send: func(t *testing.T) *httptest.ResponseRecorder {
				return f.do(t, http.MethodPost, "/notifications/automated", cronSecret, body)
			},
			expected: http.StatusOK,
		},
		{
			name: "admin token",
			send: func(t *testing.T) *httptest.ResponseRecorder {
				return f.do(t, http.MethodPost, "/notifications/automated", f.token(t, "admin-1", httpapi.RoleAdmin), body)
			},
			expected: http.StatusOK,
		},
		{
			name: "member token",
			send: func(t *testing.T) *httptest.ResponseRecorder {
				return f.do(t, http.MethodPost, "/notifications/automated", f.token(t, "member-1", httpapi.RoleMember), body)
			},
			expected: http.StatusForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			rec := tc.send(t)

			// assert
			assert.Equal(t, tc.expected, rec.Code, rec.Body.String())
		})
	}
}

func Test_Server_AutomatedNotificationsRejectsUnknownAction(t *testing.T) {
	// arrange
	f := setupServer(t)

	// act
	rec := f.do(t, http.MethodPost, "/notifications/automated", cronSecret, map[string]any{"action": "weekly"})

	// assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_Server_AutomatedOverdueRunFinesTheLoan(t *testing.T) {
	// arrange
	f := setupServer(t)
	bookID := f.givenBook(t, 1)
	requestID := f.givenSubmitted(t, "member-1", bookID)
	admin := f.token(t, "admin-1", httpapi.RoleAdmin)
	rec := f.do(t, http.MethodPatch, "/borrow-requests/"+requestID, admin, map[string]any{"action": "APPROVE"})
	require.Equal(t, http.StatusOK, rec.Code)
	f.now = f.now.Add(19 * 24 * time.Hour)

	// act
	rec = f.do(t, http.MethodPost, "/notifications/automated", cronSecret, map[string]any{"action": "overdue-notifications"})

	// assert
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	report := decode(t, rec)
	assert.InDelta(t, 1, report["markedOverdue"], 0)
	assert.InDelta(t, 1, report["finesIssued"], 0)

	fines := decode(t, f.do(t, http.MethodGet, "/fines", f.token(t, "member-1", httpapi.RoleMember), nil))
	assert.Equal(t, "500", fines["outstandingTotal"])
}

func Test_Server_EchoesRequestID(t *testing.T) {
	// arrange
	f := setupServer(t)
	requestID := "0190a5d4-1c3e-7a8b-9c0d-1e2f3a4b5c6d"

	req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	req.Header.Set("X-Request-ID", requestID)
	rec := httptest.NewRecorder()

	// act
	f.handler.ServeHTTP(rec, req)

	// assert
	assert.Equal(t, requestID, rec.Header().Get("X-Request-ID"))
	assert.NotEmpty(t, f.do(t, http.MethodGet, "/healthz", "", nil).Header().Get("X-Request-ID"))
}
