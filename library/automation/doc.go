// Package automation runs the externally triggered batch actions of the borrow desk:
// due-date reminders, overdue processing with fines, and the daily combination of both.
//
// There is no scheduler in this package. A cron job calls the HTTP endpoint or the overduecheck binary.
package automation
