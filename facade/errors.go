/***** BEGIN LICENSE BLOCK *****
# This Source Code Form is subject to the terms of the Mozilla Public
# License, v. 2.0. If a copy of the MPL was not distributed with this file,
# You can obtain one at http://mozilla.org/MPL/2.0/.
#
# The Initial Developer of the Original Code is the Mozilla Foundation.
# Portions created by the Initial Developer are Copyright (C) 2012
# the Initial Developer. All Rights Reserved.
#
# ***** END LICENSE BLOCK *****/

package facade

import "fmt"

// Kind distinguishes the three error categories a JMS caller needs to
// tell apart (§7 ERROR HANDLING DESIGN).
type Kind int

const (
	// FormatError: a setter received a value outside its legal range.
	FormatError Kind = iota
	// IllegalArgument: a null key to setProperty, or an unsupported body conversion.
	IllegalArgument
	// Internal: a programming-bug invariant breach; never silently healed.
	Internal
)

func (k Kind) String() string {
	switch k {
	case FormatError:
		return "MessageFormat"
	case IllegalArgument:
		return "IllegalArgument"
	case Internal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// Error is the single error type every facade operation returns on
// failure. Callers type-switch on Kind() rather than comparing against
// sentinel values, matching the three-kind taxonomy of §7.
type Error struct {
	kind    Kind
	message string
	cause   error
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...), cause: cause}
}

func (e *Error) Kind() Kind { return e.kind }

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.kind, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.message)
}

func (e *Error) Unwrap() error { return e.cause }
