// Package fines implements the fine listing with the outstanding total of unpaid fines.
package fines
