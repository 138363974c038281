package domain

import "errors"

// Sentinel errors so handlers can map failures to status codes.
var (
	ErrRequestNotFound      = errors.New("request not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrApproverNotFound     = errors.New("approver not found")
	ErrOnlyRejectedEditable = errors.New("only rejected requests may be modified")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidRole          = errors.New("invalid role")
)
