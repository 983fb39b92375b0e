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

// Package idcodec losslessly round-trips any of the four AMQP 1.0
// message-id/correlation-id union variants through an opaque JMS string,
// per spec §4.A.
package idcodec

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/pborman/uuid"

	"github.com/chirino/qpid-jms-go/internal/wire"
)

const (
	prefix    = "ID:"
	uuidTag   = "AMQP_UUID:"
	ulongTag  = "AMQP_ULONG:"
	binaryTag = "AMQP_BINARY:"
)

// Error reports a malformed encoded id string or an id value that can't
// be represented textually. It is never coerced away silently; the
// facade package wraps it as a FormatError.
type Error struct {
	msg string
}

func (e *Error) Error() string { return e.msg }

func errorf(format string, args ...interface{}) *Error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

// Encode renders id in its canonical "ID:..." textual form. Calling it on
// wire.NoID returns the empty string.
func Encode(id wire.MessageID) (string, error) {
	switch id.Kind {
	case wire.IDNone:
		return "", nil
	case wire.IDString:
		return prefix + id.Str, nil
	case wire.IDUlong:
		return prefix + ulongTag + strconv.FormatUint(id.Ulong, 10), nil
	case wire.IDUuid:
		return prefix + uuidTag + uuid.UUID(id.Uuid[:]).String(), nil
	case wire.IDBinary:
		return prefix + binaryTag + strings.ToUpper(hex.EncodeToString(id.Binary)), nil
	default:
		return "", errorf("unknown message-id kind %d", id.Kind)
	}
}

// Decode parses an encoded id string back into its AMQP-native value.
// A string lacking the "ID:" prefix is treated as a plain application
// string id (used by callers that accept bare ids, e.g. a correlation-id
// the application chose itself). A recognized type tag with no payload
// after it is a parse error; a bare "ID:" with nothing following it
// decodes to the empty string, since it carries no tag at all.
func Decode(s string) (wire.MessageID, error) {
	if !strings.HasPrefix(s, prefix) {
		return wire.StringID(s), nil
	}
	rest := s[len(prefix):]

	switch {
	case strings.HasPrefix(rest, uuidTag):
		payload := rest[len(uuidTag):]
		if payload == "" {
			return wire.NoID, errorf("empty payload after %s%s tag", prefix, uuidTag)
		}
		parsed := uuid.Parse(payload)
		if parsed == nil {
			return wire.NoID, errorf("invalid uuid %q", payload)
		}
		var buf [16]byte
		copy(buf[:], parsed)
		return wire.UuidID(buf), nil

	case strings.HasPrefix(rest, ulongTag):
		payload := rest[len(ulongTag):]
		if payload == "" {
			return wire.NoID, errorf("empty payload after %s%s tag", prefix, ulongTag)
		}
		n, err := strconv.ParseUint(payload, 10, 64)
		if err != nil {
			return wire.NoID, errorf("invalid ulong %q: %s", payload, err)
		}
		return wire.UlongID(n), nil

	case strings.HasPrefix(rest, binaryTag):
		payload := rest[len(binaryTag):]
		if payload == "" {
			return wire.NoID, errorf("empty payload after %s%s tag", prefix, binaryTag)
		}
		if len(payload)%2 != 0 {
			return wire.NoID, errorf("odd-length hex string %q", payload)
		}
		b, err := hex.DecodeString(payload)
		if err != nil {
			return wire.NoID, errorf("invalid hex %q: %s", payload, err)
		}
		return wire.BinaryID(b), nil

	default:
		// No recognized tag: the remainder (possibly empty) is a plain
		// string id, per the spec-full supplemental decision for "ID:"
		// with nothing following it.
		return wire.StringID(rest), nil
	}
}

// DecodeCorrelation applies the correlation-id-specific decoding rule: if
// the application-correlation-id annotation was present on the message and
// the wire value is a plain string, the application chose this value
// itself and it is returned verbatim with no "ID:" prefix added. Otherwise
// the standard encoding applies.
func DecodeCorrelation(id wire.MessageID, isAppCorrelation bool) (string, error) {
	if isAppCorrelation && id.Kind == wire.IDString {
		return id.Str, nil
	}
	return Encode(id)
}
