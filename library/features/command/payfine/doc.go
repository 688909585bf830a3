// Package payfine implements a member paying one of their fines.
//
// Payment is a status transition, the amount paid is the fine's current amount.
// Fines of other members are reported as not found.
package payfine
