package services

import "errors"

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrEventNotFound  = errors.New("event not found")
	ErrOrderNotFound  = errors.New("order not found")
	ErrTicketNotFound = errors.New("ticket not found")

	ErrInvalidInput = errors.New("invalid input")

	ErrNoParticipants      = errors.New("at least one participant is required")
	ErrParticipantMismatch = errors.New("participant names and emails must have the same length")

	ErrEventCancelled        = errors.New("event has been cancelled")
	ErrEventAlreadyCancelled = errors.New("event is already cancelled")
	ErrOrderNotCancellable   = errors.New("order can no longer be cancelled")
	ErrNotEventOrganizer     = errors.New("only the event organizer can perform this action")
	ErrNotOrganizer          = errors.New("user is not an organizer")
	ErrTicketAlreadyUsed     = errors.New("ticket has already been checked in")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPastEvent          = errors.New("event start time cannot be in the past")
	ErrCouponTooLarge     = errors.New("coupon discount cannot exceed half the ticket price")
)
