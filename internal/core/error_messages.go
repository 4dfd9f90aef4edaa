package core

// error_messages.go maps technical errors to user-facing messages with codes
// for support reference.
//
//	DIR001  - Directory not found
//	DIR002  - Directory unreadable
//	FILE001 - File too large
//	FILE002 - Invalid CSV structure
//	FILE003 - File is not UTF-8
//	FILE004 - Empty file
//	FILE005 - File unreadable
//	VAL001  - Missing required column
//	VAL002  - Invalid number
//	VAL003  - Required value empty
//	VAL004  - Row too short
//	EXP001  - Report destination unwritable
//	EXP002  - Report export not configured
//	ERR000  - Unknown error
//
// Matchers are tried in order; the first match wins, so specific causes are
// listed before the wrappers that carry them.

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorMatcher struct {
	match func(error) bool
	msg   UserMessage
}

func is(target error) func(error) bool {
	return func(err error) bool { return errors.Is(err, target) }
}

func as[T error]() func(error) bool {
	return func(err error) bool {
		var target T
		return errors.As(err, &target)
	}
}

func both(a, b func(error) bool) func(error) bool {
	return func(err error) bool { return a(err) && b(err) }
}

var errorMatchers = []errorMatcher{
	{
		match: both(as[*DiscoveryError](), is(fs.ErrNotExist)),
		msg: UserMessage{
			Message: "Price-list directory not found",
			Action:  "Check the directory path",
			Code:    "DIR001",
		},
	},
	{
		match: as[*DiscoveryError](),
		msg: UserMessage{
			Message: "Price-list directory cannot be read",
			Action:  "Check that the path is a directory and its permissions",
			Code:    "DIR002",
		},
	},
	{
		match: is(ErrFileTooLarge),
		msg: UserMessage{
			Message: "File exceeds the maximum size limit",
			Action:  "Split the file or raise PRICE_MAX_FILE_SIZE",
			Code:    "FILE001",
		},
	},
	{
		match: as[*csv.ParseError](),
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Ensure the file is comma-separated with balanced quotes",
			Code:    "FILE002",
		},
	},
	{
		match: is(ErrEncoding),
		msg: UserMessage{
			Message: "File contains invalid characters",
			Action:  "Save the file with UTF-8 encoding",
			Code:    "FILE003",
		},
	},
	{
		match: is(ErrEmptyFile),
		msg: UserMessage{
			Message: "The file is empty",
			Action:  "Add a header row and data rows",
			Code:    "FILE004",
		},
	},
	{
		match: as[*MissingColumnError](),
		msg: UserMessage{
			Message: "Required column is missing",
			Action:  "Name the columns with a supported header (e.g. Товар, Цена, Фасовка)",
			Code:    "VAL001",
		},
	},
	{
		match: is(ErrEmptyValue),
		msg: UserMessage{
			Message: "Required value is empty",
			Action:  "Fill in name, price and weight for every row",
			Code:    "VAL003",
		},
	},
	{
		match: is(ErrShortRow),
		msg: UserMessage{
			Message: "Row has fewer columns than the header",
			Action:  "Check the row for missing separators",
			Code:    "VAL004",
		},
	},
	{
		match: as[*RowError](),
		msg: UserMessage{
			Message: "Invalid number format detected",
			Action:  "Use plain decimal numbers without currency symbols",
			Code:    "VAL002",
		},
	},
	{
		match: as[*FileError](),
		msg: UserMessage{
			Message: "File could not be read",
			Action:  "Check that the file exists and is readable",
			Code:    "FILE005",
		},
	},
	{
		match: is(ErrNoExporter),
		msg: UserMessage{
			Message: "Report export is not configured",
			Action:  "Contact support",
			Code:    "EXP002",
		},
	},
	{
		match: as[*ExportError](),
		msg: UserMessage{
			Message: "Report could not be written",
			Action:  "Check REPORT_PATH and directory permissions",
			Code:    "EXP001",
		},
	},
}

// defaultMessage is returned when no matcher applies.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Returns an empty UserMessage for a nil error.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, m := range errorMatchers {
		if m.match(err) {
			return m.msg
		}
	}

	return defaultMessage
}

// FormatUserError returns a single-line message suitable for display.
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
