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

import (
	"github.com/chirino/qpid-jms-go/internal/wire"
)

// The object-body content type, recorded so a receiving peer knows which
// serializer produced the bytes (§4.D "object"). The facade never invokes
// a serializer itself; the bytes it stores and returns are opaque to it.
const objectContentType = "application/x-java-serialized-object"

// TextFacade is the text body variant: body is an AmqpValue(string),
// or a Data section accepted for interoperability on read (§4.D "text").
type TextFacade struct {
	*Facade
}

// NewTextForSend creates an outgoing text-message facade.
func NewTextForSend(conn Connection) *TextFacade {
	return &TextFacade{Facade: NewForSend(conn, BodyText)}
}

// GetText returns the message's text body, or nil if the body is absent.
// Both an AmqpValue(string) and a Data section (treated as UTF-8) are
// accepted, for interoperability with peers that sent a Data body.
func (t *TextFacade) GetText() *string {
	b := t.msg.Body
	if b == nil {
		return nil
	}
	switch b.Kind {
	case wire.BodyAmqpValue:
		if s, ok := b.Value.(string); ok {
			return &s
		}
		return nil
	case wire.BodyData:
		s := string(b.Data)
		return &s
	default:
		return nil
	}
}

// SetText replaces the body with an AmqpValue(string). A nil value clears
// the body entirely rather than storing an empty string.
func (t *TextFacade) SetText(value *string) {
	if value == nil {
		t.msg.Body = nil
		return
	}
	t.msg.Body = &wire.Body{Kind: wire.BodyAmqpValue, Value: *value}
}

// MapFacade is the map body variant: body is AmqpValue(map[string]primitive)
// with unique keys and no significance to insertion order (§4.D "map").
type MapFacade struct {
	*Facade
}

// NewMapForSend creates an outgoing map-message facade with an empty map
// body, matching a freshly constructed JMS MapMessage.
func NewMapForSend(conn Connection) *MapFacade {
	f := &MapFacade{Facade: NewForSend(conn, BodyMap)}
	f.msg.Body = &wire.Body{Kind: wire.BodyAmqpValue, Value: map[string]interface{}{}}
	return f
}

func (m *MapFacade) valueMap() map[string]interface{} {
	b := m.msg.Body
	if b == nil || b.Kind != wire.BodyAmqpValue {
		return nil
	}
	v, _ := b.Value.(map[string]interface{})
	return v
}

// GetMapNames returns the set of keys currently stored in the map body.
func (m *MapFacade) GetMapNames() []string {
	vm := m.valueMap()
	if vm == nil {
		return nil
	}
	names := make([]string, 0, len(vm))
	for k := range vm {
		names = append(names, k)
	}
	return names
}

// GetMapEntry returns the value stored under name, and whether it was present.
func (m *MapFacade) GetMapEntry(name string) (interface{}, bool) {
	vm := m.valueMap()
	if vm == nil {
		return nil, false
	}
	v, ok := vm[name]
	return v, ok
}

// SetMapEntry stores value under name, creating the map body if the
// facade somehow lost it (e.g. after clearBody). An empty name is rejected.
func (m *MapFacade) SetMapEntry(name string, value interface{}) error {
	if name == "" {
		return newError(IllegalArgument, "map entry name must not be empty")
	}
	vm := m.valueMap()
	if vm == nil {
		vm = map[string]interface{}{}
		m.msg.Body = &wire.Body{Kind: wire.BodyAmqpValue, Value: vm}
	}
	vm[name] = value
	return nil
}

// ItemExists reports whether name is present in the map body.
func (m *MapFacade) ItemExists(name string) bool {
	_, ok := m.GetMapEntry(name)
	return ok
}

// BytesFacade is the bytes body variant: body is a Data section, with a
// cursor-based read API that resets to the start whenever the body is
// reassigned (§4.D "bytes", §4.E "Bytes/Stream body read cursor").
type BytesFacade struct {
	*Facade
	cursor int
}

// NewBytesForSend creates an outgoing bytes-message facade with an empty
// byte body, writable until the caller begins reading it back.
func NewBytesForSend(conn Connection) *BytesFacade {
	f := &BytesFacade{Facade: NewForSend(conn, BodyBytes)}
	f.msg.Body = &wire.Body{Kind: wire.BodyData, Data: []byte{}}
	return f
}

func (b *BytesFacade) data() []byte {
	if b.msg.Body == nil || b.msg.Body.Kind != wire.BodyData {
		return nil
	}
	return b.msg.Body.Data
}

// GetBodyLength returns the total number of bytes in the body.
func (b *BytesFacade) GetBodyLength() int {
	return len(b.data())
}

// WriteBytes appends p to the body. Writing after a Reset has not been
// called is the write-then-read lifecycle the JMS BytesMessage contract
// expects; this facade does not itself enforce the writable/readable mode
// switch, leaving that to the API shell.
func (b *BytesFacade) WriteBytes(p []byte) {
	body := b.msg.Body
	if body == nil || body.Kind != wire.BodyData {
		body = &wire.Body{Kind: wire.BodyData}
		b.msg.Body = body
	}
	body.Data = append(body.Data, p...)
}

// SetBytes replaces the body outright with a copy of p and resets the
// read cursor to the start.
func (b *BytesFacade) SetBytes(p []byte) {
	b.msg.Body = &wire.Body{Kind: wire.BodyData, Data: append([]byte(nil), p...)}
	b.cursor = 0
}

// Reset rewinds the read cursor to the start of the body, the transition
// from Writable to Readable (§4.E).
func (b *BytesFacade) Reset() {
	b.cursor = 0
}

// ReadBytes copies up to len(p) unread bytes into p from the current
// cursor position, advancing the cursor, and returns the number of bytes
// copied. It returns 0 once the cursor reaches the end of the body.
func (b *BytesFacade) ReadBytes(p []byte) int {
	data := b.data()
	if b.cursor >= len(data) {
		return 0
	}
	n := copy(p, data[b.cursor:])
	b.cursor += n
	return n
}

// StreamFacade is the stream body variant: body is an ordered,
// heterogeneous AmqpSequence, read back element by element with a cursor
// that resets on reassignment (§4.D "stream", §4.E).
type StreamFacade struct {
	*Facade
	cursor int
}

// NewStreamForSend creates an outgoing stream-message facade with an
// empty sequence body.
func NewStreamForSend(conn Connection) *StreamFacade {
	f := &StreamFacade{Facade: NewForSend(conn, BodyStream)}
	f.msg.Body = &wire.Body{Kind: wire.BodyAmqpSequence, Sequence: []interface{}{}}
	return f
}

func (s *StreamFacade) sequence() []interface{} {
	if s.msg.Body == nil || s.msg.Body.Kind != wire.BodyAmqpSequence {
		return nil
	}
	return s.msg.Body.Sequence
}

// WriteObject appends value as the next element of the stream body.
func (s *StreamFacade) WriteObject(value interface{}) {
	body := s.msg.Body
	if body == nil || body.Kind != wire.BodyAmqpSequence {
		body = &wire.Body{Kind: wire.BodyAmqpSequence}
		s.msg.Body = body
	}
	body.Sequence = append(body.Sequence, value)
}

// Reset rewinds the read cursor to the first element (§4.E).
func (s *StreamFacade) Reset() {
	s.cursor = 0
}

// ReadObject returns the next unread element and advances the cursor. The
// second result is false once the cursor has exhausted the sequence.
func (s *StreamFacade) ReadObject() (interface{}, bool) {
	seq := s.sequence()
	if s.cursor >= len(seq) {
		return nil, false
	}
	v := seq[s.cursor]
	s.cursor++
	return v, true
}

// ObjectFacade is the object body variant: body is a Data section holding
// an externally serialized object graph. The facade only stores and
// retrieves the bytes; it never serializes or deserializes them itself
// (§4.D "object").
type ObjectFacade struct {
	*Facade
}

// NewObjectForSend creates an outgoing object-message facade and records
// the object content type, delegating to the connection's preferred
// serializer identifier when one is available.
func NewObjectForSend(conn Connection) *ObjectFacade {
	f := &ObjectFacade{Facade: NewForSend(conn, BodyObject)}
	ct := objectContentType
	if conn != nil {
		if preferred := conn.PreferredObjectContentType(); preferred != "" {
			ct = preferred
		}
	}
	f.msg.EnsureProperties().ContentType = &ct
	return f
}

// GetObjectBytes returns the serialized object bytes, or nil if the body
// is absent.
func (o *ObjectFacade) GetObjectBytes() []byte {
	if o.msg.Body == nil || o.msg.Body.Kind != wire.BodyData {
		return nil
	}
	return o.msg.Body.Data
}

// SetObjectBytes stores p as the serialized object body, making a copy so
// later caller mutation of p cannot reach back into the message.
func (o *ObjectFacade) SetObjectBytes(p []byte) {
	if p == nil {
		o.msg.Body = nil
		return
	}
	o.msg.Body = &wire.Body{Kind: wire.BodyData, Data: append([]byte(nil), p...)}
}
