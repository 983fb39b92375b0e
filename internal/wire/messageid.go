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

// Package wire models the in-memory AMQP 1.0 message that the facade
// package owns and mutates. It is the "codec boundary" type described in
// the facade's external interfaces: a real transport/codec layer produces
// and consumes values of this shape, but never performs wire encoding
// itself.
package wire

// IDKind identifies which of the four AMQP 1.0 message-id/correlation-id
// union variants a MessageID holds.
type IDKind int

const (
	IDNone IDKind = iota
	IDString
	IDUlong
	IDUuid
	IDBinary
)

// MessageID is the four-variant AMQP message-id/correlation-id union:
// string | ulong | uuid | binary. The zero value is IDNone (field absent).
type MessageID struct {
	Kind   IDKind
	Str    string
	Ulong  uint64
	Uuid   [16]byte
	Binary []byte
}

// NoID is the absent message-id value.
var NoID = MessageID{Kind: IDNone}

func StringID(s string) MessageID {
	return MessageID{Kind: IDString, Str: s}
}

func UlongID(u uint64) MessageID {
	return MessageID{Kind: IDUlong, Ulong: u}
}

func UuidID(b [16]byte) MessageID {
	return MessageID{Kind: IDUuid, Uuid: b}
}

func BinaryID(b []byte) MessageID {
	return MessageID{Kind: IDBinary, Binary: b}
}

func (id MessageID) IsNone() bool {
	return id.Kind == IDNone
}

// Equal reports whether two message-ids carry the same value.
func (id MessageID) Equal(other MessageID) bool {
	if id.Kind != other.Kind {
		return false
	}
	switch id.Kind {
	case IDNone:
		return true
	case IDString:
		return id.Str == other.Str
	case IDUlong:
		return id.Ulong == other.Ulong
	case IDUuid:
		return id.Uuid == other.Uuid
	case IDBinary:
		if len(id.Binary) != len(other.Binary) {
			return false
		}
		for i := range id.Binary {
			if id.Binary[i] != other.Binary[i] {
				return false
			}
		}
		return true
	}
	return false
}

// Clone returns a deep copy of id, used by Message.Clone.
func (id MessageID) Clone() MessageID {
	out := id
	if id.Binary != nil {
		out.Binary = append([]byte(nil), id.Binary...)
	}
	return out
}
