// Package borrowrequests implements the borrow request listing.
//
// It projects the lifecycle events of borrow requests into their current state,
// including the derived status and the request, approval, due and return dates.
// Members see their own requests, admins can filter by user and status.
package borrowrequests
