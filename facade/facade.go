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

// Package facade is the semantic bridge between the JMS programming model
// and the AMQP 1.0 wire model described in spec.md. It owns a single
// in-memory AMQP message exclusively and exposes JMS-shaped getters and
// setters over it, enforcing value-range clamping, default-elision and
// lazy section creation as it goes.
package facade

import (
	"time"

	"github.com/chirino/qpid-jms-go/destination"
	"github.com/chirino/qpid-jms-go/idcodec"
	"github.com/chirino/qpid-jms-go/internal/wire"
)

// BodyKind identifies which of the five JMS body variants a message
// carries, matching the Message-Annotation encoding of §3.2-9.
type BodyKind int64

const (
	BodyMessage BodyKind = 0 // opaque/none: no body accessor
	BodyObject  BodyKind = 1
	BodyMap     BodyKind = 2
	BodyBytes   BodyKind = 3
	BodyStream  BodyKind = 4
	BodyText    BodyKind = 5
)

const (
	annotationMsgType          = "x-opt-jms-msg-type"
	annotationDestination      = "x-opt-jms-dest"
	annotationReplyTo          = "x-opt-jms-reply-to"
	annotationAppCorrelationID = "x-opt-app-correlation-id"

	// ttlOverridePropertyKey is the Application-Property key an explicit
	// setTtl override round-trips through, per §3.2-7.
	ttlOverridePropertyKey = "JMS_AMQP_TTL"
)

const defaultPriority = 4

// Facade is the base message facade: the JMS-header surface shared by all
// five typed body variants (§4.C, §9 "Shape over inheritance"). The body
// variants in this package embed *Facade and add body-shape-specific
// accessors; none of them override base behavior, so there is no virtual
// dispatch to model.
type Facade struct {
	msg      *wire.Message
	conn     Connection
	consumer Consumer
	bodyKind BodyKind

	// receiveTime and cachedExpiration implement the synthesized-expiration
	// memoization of §3.2-8. Both are nil on an outgoing facade.
	receiveTime      *time.Time
	cachedExpiration *int64
}

// NewForSend constructs an empty outgoing facade: Header.durable=true
// (JMS default, §3.2-3), the type annotation set, and no Properties
// section (P1).
func NewForSend(conn Connection, kind BodyKind) *Facade {
	msg := wire.NewMessage()
	h := msg.EnsureHeader()
	durable := true
	h.Durable = &durable

	f := &Facade{msg: msg, conn: conn, bodyKind: kind}
	f.ensureTypeAnnotation()
	return f
}

// WrapIncoming wraps a decoded AMQP message for the JMS API to read,
// recording the receive time used by expiration synthesis (§3.2-8) and
// deriving the body kind from the message's own type annotation when
// present, falling back to BodyMessage (opaque) otherwise.
func WrapIncoming(consumer Consumer, msg *wire.Message) *Facade {
	now := time.Now()
	f := &Facade{msg: msg, consumer: consumer, receiveTime: &now}
	if v, ok := msg.MessageAnnotations[annotationMsgType]; ok {
		if code, ok2 := asInt64(v); ok2 {
			f.bodyKind = BodyKind(code)
		}
	}
	return f
}

// Message returns the in-memory AMQP message this facade owns. Transport
// code uses this to encode the message; it must not retain a second
// owner of it (§3.3 "Ownership").
func (f *Facade) Message() *wire.Message { return f.msg }

// BodyKind reports which of the five JMS body variants this facade carries.
func (f *Facade) BodyKind() BodyKind { return f.bodyKind }

func (f *Facade) ensureTypeAnnotation() {
	f.msg.EnsureMessageAnnotations()[annotationMsgType] = int64(f.bodyKind)
}

func asInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	default:
		return 0, false
	}
}

// --- Header: durable ---------------------------------------------------

func (f *Facade) GetDurable() bool {
	h := f.msg.Header
	if h != nil && h.Durable != nil {
		return *h.Durable
	}
	return false
}

// SetDurable clears Header.durable when set to the AMQP default (false)
// rather than writing it explicitly, per §3.2-2; it never creates the
// Header section just to record the default.
func (f *Facade) SetDurable(durable bool) {
	if !durable {
		if f.msg.Header != nil {
			f.msg.Header.Durable = nil
		}
		return
	}
	h := f.msg.EnsureHeader()
	v := true
	h.Durable = &v
}

// --- Header: priority ---------------------------------------------------

func (f *Facade) GetPriority() int {
	h := f.msg.Header
	if h == nil || h.Priority == nil {
		return defaultPriority
	}
	v := int(*h.Priority)
	if v >= 9 {
		return 9
	}
	return v
}

// SetPriority clamps v into [0,9] before storing it. Setting exactly the
// default (4) clears the field instead of writing it, and never creates
// the Header section (§3.2-4).
func (f *Facade) SetPriority(v int) {
	if v == defaultPriority {
		if f.msg.Header != nil {
			f.msg.Header.Priority = nil
		}
		return
	}
	clamped := v
	if clamped < 0 {
		clamped = 0
	}
	if clamped > 9 {
		clamped = 9
	}
	h := f.msg.EnsureHeader()
	p := uint8(clamped)
	h.Priority = &p
}

// --- TTL override ---------------------------------------------------

// GetTtl returns the explicit ttl-override previously set with SetTtl, or
// the wire Header.ttl on a received message that carries one but was
// never given an override, or 0 if neither is present.
func (f *Facade) GetTtl() int64 {
	if v, ok := f.ttlOverride(); ok {
		return int64(v)
	}
	if f.msg.Header != nil && f.msg.Header.Ttl != nil {
		return int64(*f.msg.Header.Ttl)
	}
	return 0
}

// SetTtl records an explicit ttl override in Application-Properties under
// JMS_AMQP_TTL (§3.2-7); it is not written to Header.ttl until onSend.
// Setting 0 clears any override without creating the Application-Properties
// section. Values outside the unsigned 32-bit range are rejected.
func (f *Facade) SetTtl(v int64) error {
	if v < 0 || v > 0xFFFFFFFF {
		return newError(FormatError, "ttl %d out of range [0, 2^32-1]", v)
	}
	if v == 0 {
		if f.msg.ApplicationProperties != nil {
			delete(f.msg.ApplicationProperties, ttlOverridePropertyKey)
		}
		return nil
	}
	f.msg.EnsureApplicationProperties()[ttlOverridePropertyKey] = uint32(v)
	return nil
}

func (f *Facade) ttlOverride() (uint32, bool) {
	if f.msg.ApplicationProperties == nil {
		return 0, false
	}
	v, ok := f.msg.ApplicationProperties[ttlOverridePropertyKey]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case uint32:
		return n, true
	case int64:
		return uint32(n), true
	default:
		return 0, false
	}
}

// --- Expiration ---------------------------------------------------

// GetExpiration returns Properties.absolute-expiry-time when present, a
// cached synthesized value on a second call, or synthesizes and memoizes
// receiveTime+ttl on a received message that has neither (§3.2-8).
func (f *Facade) GetExpiration() int64 {
	if f.msg.Properties != nil && f.msg.Properties.AbsoluteExpiryTime != nil {
		return *f.msg.Properties.AbsoluteExpiryTime
	}
	if f.cachedExpiration != nil {
		return *f.cachedExpiration
	}
	if f.receiveTime != nil && f.msg.Header != nil && f.msg.Header.Ttl != nil && *f.msg.Header.Ttl > 0 {
		v := f.receiveTime.UnixNano()/int64(time.Millisecond) + int64(*f.msg.Header.Ttl)
		f.cachedExpiration = &v
		return v
	}
	return 0
}

// SetExpiration backs Properties.absolute-expiry-time. Setting 0 on a
// message without Properties leaves it absent; on one with Properties it
// clears the field. Either way it drops any synthesized cache, since an
// explicit value supersedes synthesis.
func (f *Facade) SetExpiration(v int64) {
	f.cachedExpiration = nil
	if v == 0 {
		if f.msg.Properties != nil {
			f.msg.Properties.AbsoluteExpiryTime = nil
		}
		return
	}
	p := f.msg.EnsureProperties()
	t := v
	p.AbsoluteExpiryTime = &t
}

// --- Delivery count / redelivery ---------------------------------------------------

func (f *Facade) deliveryCount() uint32 {
	if f.msg.Header != nil && f.msg.Header.DeliveryCount != nil {
		return *f.msg.Header.DeliveryCount
	}
	return 0
}

// GetDeliveryCount returns the AMQP delivery-count plus one (§3.2-5).
func (f *Facade) GetDeliveryCount() int {
	return int(f.deliveryCount()) + 1
}

// GetRedelivered reports whether delivery-count is greater than zero.
func (f *Facade) GetRedelivered() bool {
	return f.deliveryCount() > 0
}

// GetRedeliveryCount returns the raw AMQP delivery-count.
func (f *Facade) GetRedeliveryCount() int {
	return int(f.deliveryCount())
}

// SetRedelivered(false) resets delivery-count to 0 (clearing the field,
// per the default-elision rule); SetRedelivered(true) on an already
// redelivered message leaves its count unchanged.
func (f *Facade) SetRedelivered(redelivered bool) {
	if !redelivered {
		if f.msg.Header != nil {
			f.msg.Header.DeliveryCount = nil
		}
		return
	}
	if f.deliveryCount() > 0 {
		return
	}
	h := f.msg.EnsureHeader()
	one := uint32(1)
	h.DeliveryCount = &one
}

// SetRedeliveryCount writes the raw AMQP delivery-count directly; 0
// clears the field rather than creating the Header section.
func (f *Facade) SetRedeliveryCount(v int) {
	if v == 0 {
		if f.msg.Header != nil {
			f.msg.Header.DeliveryCount = nil
		}
		return
	}
	h := f.msg.EnsureHeader()
	u := uint32(v)
	h.DeliveryCount = &u
}

// --- Message-id ---------------------------------------------------

// GetMessageId returns the encoded message-id, or nil if none is set.
func (f *Facade) GetMessageId() (*string, error) {
	if f.msg.Properties == nil || f.msg.Properties.MessageID.IsNone() {
		return nil, nil
	}
	s, err := idcodec.Encode(f.msg.Properties.MessageID)
	if err != nil {
		return nil, wrapError(Internal, err, "encoding stored message-id")
	}
	return &s, nil
}

// SetMessageId parses value (which may omit its "ID:" prefix and/or carry
// a type tag) and stores the bare AMQP-native id on Properties.message-id.
// A nil value clears the field without creating Properties.
func (f *Facade) SetMessageId(value *string) error {
	if value == nil {
		if f.msg.Properties != nil {
			f.msg.Properties.MessageID = wire.NoID
		}
		return nil
	}
	id, err := idcodec.Decode(*value)
	if err != nil {
		return wrapError(FormatError, err, "invalid message-id %q", *value)
	}
	f.msg.EnsureProperties().MessageID = id
	return nil
}

// --- Correlation-id ---------------------------------------------------

func (f *Facade) isAppCorrelation() bool {
	v, ok := f.msg.MessageAnnotations[annotationAppCorrelationID]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// GetCorrelationId returns the correlation-id in its textual form. If the
// application-correlation-id annotation marks this id as an
// application-chosen string, it is returned verbatim; otherwise standard
// id encoding applies (§4.A "Application-correlation-id").
func (f *Facade) GetCorrelationId() (*string, error) {
	if f.msg.Properties == nil || f.msg.Properties.CorrelationID.IsNone() {
		return nil, nil
	}
	s, err := idcodec.DecodeCorrelation(f.msg.Properties.CorrelationID, f.isAppCorrelation())
	if err != nil {
		return nil, wrapError(Internal, err, "decoding stored correlation-id")
	}
	return &s, nil
}

// SetCorrelationId stores value as the correlation-id. A value without an
// "ID:" prefix is an application-chosen string: it is stored verbatim and
// flagged with the application-correlation-id annotation. A value with an
// "ID:" prefix is parsed with the standard tag-aware id decoding and the
// annotation is cleared.
func (f *Facade) SetCorrelationId(value *string) error {
	if value == nil {
		if f.msg.Properties != nil {
			f.msg.Properties.CorrelationID = wire.NoID
		}
		if f.msg.MessageAnnotations != nil {
			delete(f.msg.MessageAnnotations, annotationAppCorrelationID)
		}
		return nil
	}
	if hasIDPrefix(*value) {
		id, err := idcodec.Decode(*value)
		if err != nil {
			return wrapError(FormatError, err, "invalid correlation-id %q", *value)
		}
		f.msg.EnsureProperties().CorrelationID = id
		if f.msg.MessageAnnotations != nil {
			delete(f.msg.MessageAnnotations, annotationAppCorrelationID)
		}
		return nil
	}
	f.msg.EnsureProperties().CorrelationID = wire.StringID(*value)
	f.msg.EnsureMessageAnnotations()[annotationAppCorrelationID] = true
	return nil
}

func hasIDPrefix(s string) bool {
	return len(s) >= 3 && s[:3] == "ID:"
}

// GetCorrelationIdBytes returns the correlation-id's binary form, or nil
// if the correlation-id is unset or not of binary kind.
func (f *Facade) GetCorrelationIdBytes() []byte {
	if f.msg.Properties == nil || f.msg.Properties.CorrelationID.Kind != wire.IDBinary {
		return nil
	}
	return append([]byte(nil), f.msg.Properties.CorrelationID.Binary...)
}

// SetCorrelationIdBytes writes value directly as a binary correlation-id
// and clears the application-correlation-id annotation, since a binary id
// can never be an application-chosen string.
func (f *Facade) SetCorrelationIdBytes(value []byte) {
	if value == nil {
		if f.msg.Properties != nil {
			f.msg.Properties.CorrelationID = wire.NoID
		}
		if f.msg.MessageAnnotations != nil {
			delete(f.msg.MessageAnnotations, annotationAppCorrelationID)
		}
		return
	}
	f.msg.EnsureProperties().CorrelationID = wire.BinaryID(append([]byte(nil), value...))
	if f.msg.MessageAnnotations != nil {
		delete(f.msg.MessageAnnotations, annotationAppCorrelationID)
	}
}

// --- Group id / reply-to-group-id ---------------------------------------------------

func (f *Facade) GetGroupId() *string {
	if f.msg.Properties == nil || f.msg.Properties.GroupID == nil {
		return nil
	}
	v := *f.msg.Properties.GroupID
	return &v
}

func (f *Facade) SetGroupId(value *string) {
	if value == nil {
		if f.msg.Properties != nil {
			f.msg.Properties.GroupID = nil
		}
		return
	}
	v := *value
	f.msg.EnsureProperties().GroupID = &v
}

func (f *Facade) GetReplyToGroupId() *string {
	if f.msg.Properties == nil || f.msg.Properties.ReplyToGroupID == nil {
		return nil
	}
	v := *f.msg.Properties.ReplyToGroupID
	return &v
}

func (f *Facade) SetReplyToGroupId(value *string) {
	if value == nil {
		if f.msg.Properties != nil {
			f.msg.Properties.ReplyToGroupID = nil
		}
		return
	}
	v := *value
	f.msg.EnsureProperties().ReplyToGroupID = &v
}

// --- Group sequence ---------------------------------------------------

// GetGroupSequence reinterprets the unsigned 32-bit wire value as a signed
// 32-bit int via two's-complement, per §3.2-6.
func (f *Facade) GetGroupSequence() int32 {
	if f.msg.Properties == nil || f.msg.Properties.GroupSequence == nil {
		return 0
	}
	return int32(*f.msg.Properties.GroupSequence)
}

// SetGroupSequence stores v's bit pattern as the unsigned wire value.
// Setting 0 clears the field rather than writing a literal zero, resolving
// the Open Question in §9 in favor of the general default-elision rule.
func (f *Facade) SetGroupSequence(v int32) {
	if v == 0 {
		if f.msg.Properties != nil {
			f.msg.Properties.GroupSequence = nil
		}
		return
	}
	u := uint32(v)
	f.msg.EnsureProperties().GroupSequence = &u
}

// --- Type (Properties.subject) ---------------------------------------------------

func (f *Facade) GetType() *string {
	if f.msg.Properties == nil || f.msg.Properties.Subject == nil {
		return nil
	}
	v := *f.msg.Properties.Subject
	return &v
}

func (f *Facade) SetType(value *string) {
	if value == nil {
		if f.msg.Properties != nil {
			f.msg.Properties.Subject = nil
		}
		return
	}
	v := *value
	f.msg.EnsureProperties().Subject = &v
}

// --- User-id ---------------------------------------------------

func (f *Facade) GetUserId() *string {
	if f.msg.Properties == nil || f.msg.Properties.UserID == nil {
		return nil
	}
	v := string(f.msg.Properties.UserID)
	return &v
}

func (f *Facade) SetUserId(value *string) {
	if value == nil {
		if f.msg.Properties != nil {
			f.msg.Properties.UserID = nil
		}
		return
	}
	f.msg.EnsureProperties().UserID = []byte(*value)
}

// --- Timestamp (Properties.creation-time) ---------------------------------------------------

func (f *Facade) GetTimestamp() int64 {
	if f.msg.Properties == nil || f.msg.Properties.CreationTime == nil {
		return 0
	}
	return *f.msg.Properties.CreationTime
}

func (f *Facade) SetTimestamp(v int64) {
	if v == 0 {
		if f.msg.Properties != nil {
			f.msg.Properties.CreationTime = nil
		}
		return
	}
	t := v
	f.msg.EnsureProperties().CreationTime = &t
}

// --- Destination / reply-to ---------------------------------------------------

func (f *Facade) consumerDefaultKind() (destination.Kind, bool) {
	if f.consumer != nil {
		return f.consumer.DestinationKind(), true
	}
	return destination.Queue, false
}

func (f *Facade) GetDestination() *destination.Destination {
	if f.msg.Properties == nil || f.msg.Properties.To == nil {
		return nil
	}
	ann, hasAnn := f.annotationInt64(annotationDestination)
	defKind, hasDef := f.consumerDefaultKind()
	d := destination.Decode(*f.msg.Properties.To, ann, hasAnn, defKind, hasDef)
	return &d
}

func (f *Facade) SetDestination(dest *destination.Destination) {
	if dest == nil {
		if f.msg.Properties != nil {
			f.msg.Properties.To = nil
		}
		if f.msg.MessageAnnotations != nil {
			delete(f.msg.MessageAnnotations, annotationDestination)
		}
		return
	}
	addr, ann := destination.Encode(*dest)
	f.msg.EnsureProperties().To = &addr
	f.msg.EnsureMessageAnnotations()[annotationDestination] = ann
}

func (f *Facade) GetReplyTo() *destination.Destination {
	if f.msg.Properties == nil || f.msg.Properties.ReplyTo == nil {
		return nil
	}
	ann, hasAnn := f.annotationInt64(annotationReplyTo)
	defKind, hasDef := f.consumerDefaultKind()
	d := destination.Decode(*f.msg.Properties.ReplyTo, ann, hasAnn, defKind, hasDef)
	return &d
}

func (f *Facade) SetReplyTo(dest *destination.Destination) {
	if dest == nil {
		if f.msg.Properties != nil {
			f.msg.Properties.ReplyTo = nil
		}
		if f.msg.MessageAnnotations != nil {
			delete(f.msg.MessageAnnotations, annotationReplyTo)
		}
		return
	}
	addr, ann := destination.Encode(*dest)
	f.msg.EnsureProperties().ReplyTo = &addr
	f.msg.EnsureMessageAnnotations()[annotationReplyTo] = ann
}

func (f *Facade) annotationInt64(key string) (int64, bool) {
	v, ok := f.msg.MessageAnnotations[key]
	if !ok {
		return 0, false
	}
	return asInt64(v)
}

// --- Message-Annotations ---------------------------------------------------

func (f *Facade) MessageAnnotationExists(name string) bool {
	if f.msg.MessageAnnotations == nil {
		return false
	}
	_, ok := f.msg.MessageAnnotations[name]
	return ok
}

func (f *Facade) GetMessageAnnotation(name string) (interface{}, bool) {
	if f.msg.MessageAnnotations == nil {
		return nil, false
	}
	v, ok := f.msg.MessageAnnotations[name]
	return v, ok
}

func (f *Facade) SetMessageAnnotation(name string, value interface{}) {
	f.msg.EnsureMessageAnnotations()[name] = value
}

func (f *Facade) RemoveMessageAnnotation(name string) {
	if f.msg.MessageAnnotations != nil {
		delete(f.msg.MessageAnnotations, name)
	}
}

func (f *Facade) ClearMessageAnnotations() {
	f.msg.MessageAnnotations = nil
}

// --- Application-Properties ---------------------------------------------------

// GetPropertyNames returns every application-property name set on this
// message, or nil if none are set.
func (f *Facade) GetPropertyNames() []string {
	if f.msg.ApplicationProperties == nil {
		return nil
	}
	names := make([]string, 0, len(f.msg.ApplicationProperties))
	for k := range f.msg.ApplicationProperties {
		names = append(names, k)
	}
	return names
}

// HasProperty reports whether key is set. A nil key returns false.
func (f *Facade) HasProperty(key *string) bool {
	if key == nil || f.msg.ApplicationProperties == nil {
		return false
	}
	_, ok := f.msg.ApplicationProperties[*key]
	return ok
}

// GetProperty returns key's value, or nil if unset. A nil key returns nil.
func (f *Facade) GetProperty(key *string) interface{} {
	if key == nil || f.msg.ApplicationProperties == nil {
		return nil
	}
	return f.msg.ApplicationProperties[*key]
}

// SetProperty sets key to value. A nil key is an IllegalArgument error,
// distinct in kind from the MessageFormat errors the header setters
// return (§7). A nil value removes the property instead of storing it.
func (f *Facade) SetProperty(key *string, value interface{}) error {
	if key == nil {
		return newError(IllegalArgument, "property key must not be nil")
	}
	if value == nil {
		if f.msg.ApplicationProperties != nil {
			delete(f.msg.ApplicationProperties, *key)
		}
		return nil
	}
	f.msg.EnsureApplicationProperties()[*key] = value
	return nil
}

// ClearProperties removes the Application-Properties section entirely.
func (f *Facade) ClearProperties() {
	f.msg.ApplicationProperties = nil
}

// --- Lifecycle: onSend / copy / clearBody ---------------------------------------------------

// OnSend finalizes Header fields before the transport encodes the
// message, called once per outbound delivery (§4.C, §8 P5):
//  1. an explicit ttl override wins; else producerTtl if positive; else
//     Header.ttl is cleared.
//  2. the JMS-message-type annotation is guaranteed present.
//  3. durable is re-asserted against its own current value.
//
// Step 3 is a deliberate no-op in this model: Header.durable is the only
// persistence state the facade tracks, so re-reading and re-writing it
// through SetDurable can never change it. It stays here because it is
// the one step of the three that would need to do real work if a future
// persistence-related field were added alongside durable.
func (f *Facade) OnSend(producerTtl int64) {
	if override, ok := f.ttlOverride(); ok {
		h := f.msg.EnsureHeader()
		v := override
		h.Ttl = &v
	} else if producerTtl > 0 {
		h := f.msg.EnsureHeader()
		v := uint32(producerTtl)
		h.Ttl = &v
	} else if f.msg.Header != nil {
		f.msg.Header.Ttl = nil
	}

	f.ensureTypeAnnotation()
	f.SetDurable(f.GetDurable())
}

// Copy produces a deep clone of the facade. The connection and consumer
// references are shared, not cloned; application properties, annotations,
// the receive-time cache and any synthesized expiration are copied by
// value (§4.C "copy()").
func (f *Facade) Copy() *Facade {
	clone := &Facade{
		msg:      f.msg.Clone(),
		conn:     f.conn,
		consumer: f.consumer,
		bodyKind: f.bodyKind,
	}
	if f.receiveTime != nil {
		t := *f.receiveTime
		clone.receiveTime = &t
	}
	if f.cachedExpiration != nil {
		v := *f.cachedExpiration
		clone.cachedExpiration = &v
	}
	return clone
}

// ClearBody detaches the Body section, touching nothing else.
func (f *Facade) ClearBody() {
	f.msg.Body = nil
}
