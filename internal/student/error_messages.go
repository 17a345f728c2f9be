package student

// error_messages.go maps technical errors to short console messages.
//
// Codes are grouped by category so a user can quote them when reporting a
// problem:
//
//	REC001 - Duplicate ID: a student with this ID already exists
//	REC002 - Invalid age: age is not a whole number
//	REC003 - Not found: no student with this ID
//
//	FILE001 - File not found
//	FILE002 - Permission denied
//	FILE003 - Path is a directory
//	FILE004 - Disk full
//
//	DB001 - Connection refused
//	DB002 - Authentication failed
//	DB003 - Missing table
//	DB004 - Timeout
//
//	ERR000 - Unknown error (fallback)
//
// Patterns are matched case-insensitively with strings.Contains against the
// full error chain text. The first match wins, so specific patterns come
// before general ones.

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned (wrapped) by Store and ParseAge.
var (
	ErrDuplicateID = errors.New("duplicate id")
	ErrInvalidAge  = errors.New("invalid age")
	ErrNotFound    = errors.New("student not found")
)

// UserMessage is a console-friendly description of an error.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// Record errors
	{
		pattern: "duplicate id",
		msg: UserMessage{
			Message: "A student with this ID already exists",
			Action:  "Choose a different ID",
			Code:    "REC001",
		},
	},
	{
		pattern: "invalid age",
		msg: UserMessage{
			Message: "Age must be a whole number",
			Action:  "Enter the age using digits only, for example 20",
			Code:    "REC002",
		},
	},
	{
		pattern: "student not found",
		msg: UserMessage{
			Message: "No student with this ID",
			Action:  "Check the ID and try again",
			Code:    "REC003",
		},
	},

	// File errors
	{
		pattern: "file does not exist",
		msg: UserMessage{
			Message: "File not found",
			Action:  "Check the configured file path",
			Code:    "FILE001",
		},
	},
	{
		pattern: "no such file",
		msg: UserMessage{
			Message: "File not found",
			Action:  "Check the configured file path",
			Code:    "FILE001",
		},
	},
	{
		pattern: "permission denied",
		msg: UserMessage{
			Message: "Permission denied",
			Action:  "Check the file permissions",
			Code:    "FILE002",
		},
	},
	{
		pattern: "is a directory",
		msg: UserMessage{
			Message: "The path points to a directory",
			Action:  "Configure a file path instead",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no space left",
		msg: UserMessage{
			Message: "The disk is full",
			Action:  "Free some space and save again",
			Code:    "FILE004",
		},
	},

	// Database mirror errors
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "The file was saved; the database copy will catch up on the next save",
			Code:    "DB001",
		},
	},
	{
		pattern: "password authentication failed",
		msg: UserMessage{
			Message: "Database rejected the credentials",
			Action:  "Check DATABASE_URL",
			Code:    "DB002",
		},
	},
	{
		pattern: "relation",
		msg: UserMessage{
			Message: "Database table is missing",
			Action:  "Restart the program to recreate the table",
			Code:    "DB003",
		},
	},
	{
		pattern: "deadline exceeded",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Try again or raise DB_TIMEOUT",
			Code:    "DB004",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Try again or raise DB_TIMEOUT",
			Code:    "DB004",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Check the log output for details",
	Code:    "ERR000",
}

// MapError converts an error to a UserMessage. Unknown errors map to ERR000;
// a nil error maps to the zero UserMessage.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError renders err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
