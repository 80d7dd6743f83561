package utils

const (
	// Split types
	SplitTypeEqual      = "EQUAL"
	SplitTypePercentage = "PERCENTAGE"
	SplitTypeExact      = "EXACT"
	SplitTypeShares     = "SHARES"

	// Spend statuses
	SpendStatusOpen   = "OPEN"
	SpendStatusClosed = "CLOSED"

	// Member roles
	RoleOwner  = "OWNER"
	RoleMember = "MEMBER"
	RoleViewer = "VIEWER"

	// RSVP statuses
	RSVPPending  = "PENDING"
	RSVPAccepted = "ACCEPTED"
	RSVPDeclined = "DECLINED"

	// Trip join code generation
	CodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	CodeLength  = 6

	// HTTP status messages
	ErrInvalidRequest   = "Invalid request"
	ErrTripNotFound     = "Trip not found"
	ErrSpendNotFound    = "Spend not found"
	ErrFailedToStore    = "Failed to store data"
	ErrFailedToRetrieve = "Failed to retrieve data"
)
