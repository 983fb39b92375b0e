/***** BEGIN LICENSE BLOCK *****
# This Source Code Form is subject to the terms of the Mozilla Public
# License, v. 2.0. If a copy of the MPL was not distributed with this file,
# You can obtain one at http://mozilla.org/MPL/2.0/.
#
# The Initial Developer of the Original Code is the Mozilla Foundation.
# Portions created by the Initial Developer are Copyright (C) 2012-2015
# the Initial Developer. All Rights Reserved.
#
# ***** END LICENSE BLOCK *****/

package amqptransport

import (
	"fmt"
	"strconv"
	"time"

	"github.com/streadway/amqp"

	"github.com/chirino/qpid-jms-go/idcodec"
	"github.com/chirino/qpid-jms-go/internal/wire"
)

// headerAnnotationsKey nests the AMQP 1.0 message-annotations map inside
// the AMQP 0-9-1 Headers table, since 0-9-1 has no annotations section of
// its own (§3.1 "AMQP message (consumed)" describes a model this bridge
// has to project onto the older wire format it actually carries).
const headerAnnotationsKey = "x-jms-annotations"

// Encode projects a wire.Message onto an amqp.Publishing, the shape the
// broker client accepts for a send. Message-Annotations travel nested
// under a single Headers entry so they survive the round trip distinct
// from Application-Properties, which are written directly into Headers.
func Encode(msg *wire.Message) (amqp.Publishing, error) {
	pub := amqp.Publishing{
		Headers: amqp.Table{},
	}

	if msg.Header != nil {
		if msg.Header.Durable != nil && *msg.Header.Durable {
			pub.DeliveryMode = amqp.Persistent
		} else {
			pub.DeliveryMode = amqp.Transient
		}
		if msg.Header.Priority != nil {
			pub.Priority = *msg.Header.Priority
		}
		if msg.Header.Ttl != nil {
			pub.Expiration = strconv.FormatUint(uint64(*msg.Header.Ttl), 10)
		}
		if msg.Header.DeliveryCount != nil {
			pub.Headers["x-jms-delivery-count"] = int64(*msg.Header.DeliveryCount)
		}
	}

	if msg.Properties != nil {
		p := msg.Properties
		if !p.MessageID.IsNone() {
			id, err := idcodec.Encode(p.MessageID)
			if err != nil {
				return pub, fmt.Errorf("encoding message-id: %w", err)
			}
			pub.MessageId = id
		}
		if !p.CorrelationID.IsNone() {
			id, err := idcodec.Encode(p.CorrelationID)
			if err != nil {
				return pub, fmt.Errorf("encoding correlation-id: %w", err)
			}
			pub.CorrelationId = id
		}
		if p.UserID != nil {
			pub.UserId = string(p.UserID)
		}
		if p.To != nil {
			pub.Headers["x-jms-to"] = *p.To
		}
		if p.Subject != nil {
			pub.Type = *p.Subject
		}
		if p.ReplyTo != nil {
			pub.ReplyTo = *p.ReplyTo
		}
		if p.ContentType != nil {
			pub.ContentType = *p.ContentType
		}
		if p.CreationTime != nil {
			pub.Timestamp = time.Unix(0, *p.CreationTime*int64(time.Millisecond))
		}
		if p.GroupID != nil {
			pub.Headers["x-jms-group-id"] = *p.GroupID
		}
		if p.GroupSequence != nil {
			pub.Headers["x-jms-group-sequence"] = int64(*p.GroupSequence)
		}
		if p.ReplyToGroupID != nil {
			pub.Headers["x-jms-reply-to-group-id"] = *p.ReplyToGroupID
		}
		if p.AbsoluteExpiryTime != nil {
			pub.Headers["x-jms-absolute-expiry-time"] = *p.AbsoluteExpiryTime
		}
	}

	if len(msg.MessageAnnotations) > 0 {
		pub.Headers[headerAnnotationsKey] = amqp.Table(msg.MessageAnnotations)
	}
	for k, v := range msg.ApplicationProperties {
		pub.Headers[k] = v
	}

	body, err := encodeBody(msg.Body)
	if err != nil {
		return pub, err
	}
	pub.Body = body

	return pub, nil
}

// Decode reconstructs a wire.Message from a received amqp.Delivery,
// inverting Encode.
func Decode(d amqp.Delivery) (*wire.Message, error) {
	msg := wire.NewMessage()

	h := msg.EnsureHeader()
	durable := d.DeliveryMode == amqp.Persistent
	h.Durable = &durable
	if d.Priority != 0 {
		p := d.Priority
		h.Priority = &p
	}
	if d.Expiration != "" {
		ttl, err := strconv.ParseUint(d.Expiration, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid expiration %q: %w", d.Expiration, err)
		}
		v := uint32(ttl)
		h.Ttl = &v
	}
	if v, ok := d.Headers["x-jms-delivery-count"]; ok {
		if n, ok2 := v.(int64); ok2 {
			u := uint32(n)
			h.DeliveryCount = &u
		}
	}
	if !durable && h.Priority == nil && h.Ttl == nil && h.DeliveryCount == nil {
		h.Durable = nil
		msg.Header = nil
	}

	p := msg.EnsureProperties()
	if d.MessageId != "" {
		id, err := idcodec.Decode(d.MessageId)
		if err != nil {
			return nil, fmt.Errorf("decoding message-id: %w", err)
		}
		p.MessageID = id
	}
	if d.CorrelationId != "" {
		id, err := idcodec.Decode(d.CorrelationId)
		if err != nil {
			return nil, fmt.Errorf("decoding correlation-id: %w", err)
		}
		p.CorrelationID = id
	}
	if d.UserId != "" {
		p.UserID = []byte(d.UserId)
	}
	if v, ok := d.Headers["x-jms-to"]; ok {
		if s, ok2 := v.(string); ok2 {
			p.To = &s
		}
	}
	if d.Type != "" {
		p.Subject = &d.Type
	}
	if d.ReplyTo != "" {
		p.ReplyTo = &d.ReplyTo
	}
	if d.ContentType != "" {
		p.ContentType = &d.ContentType
	}
	if !d.Timestamp.IsZero() {
		ms := d.Timestamp.UnixNano() / int64(time.Millisecond)
		p.CreationTime = &ms
	}
	if v, ok := d.Headers["x-jms-group-id"]; ok {
		if s, ok2 := v.(string); ok2 {
			p.GroupID = &s
		}
	}
	if v, ok := d.Headers["x-jms-group-sequence"]; ok {
		if n, ok2 := v.(int64); ok2 {
			u := uint32(n)
			p.GroupSequence = &u
		}
	}
	if v, ok := d.Headers["x-jms-reply-to-group-id"]; ok {
		if s, ok2 := v.(string); ok2 {
			p.ReplyToGroupID = &s
		}
	}
	if v, ok := d.Headers["x-jms-absolute-expiry-time"]; ok {
		if n, ok2 := v.(int64); ok2 {
			p.AbsoluteExpiryTime = &n
		}
	}
	if p.MessageID.IsNone() && p.CorrelationID.IsNone() && p.UserID == nil && p.To == nil &&
		p.Subject == nil && p.ReplyTo == nil && p.ContentType == nil && p.CreationTime == nil &&
		p.GroupID == nil && p.GroupSequence == nil && p.ReplyToGroupID == nil && p.AbsoluteExpiryTime == nil {
		msg.Properties = nil
	}

	if ann, ok := d.Headers[headerAnnotationsKey]; ok {
		if table, ok2 := ann.(amqp.Table); ok2 {
			anns := msg.EnsureMessageAnnotations()
			for k, v := range table {
				anns[k] = v
			}
		}
	}
	for k, v := range d.Headers {
		switch k {
		case headerAnnotationsKey, "x-jms-delivery-count", "x-jms-to", "x-jms-group-id",
			"x-jms-group-sequence", "x-jms-reply-to-group-id", "x-jms-absolute-expiry-time":
			continue
		default:
			msg.EnsureApplicationProperties()[k] = v
		}
	}

	body, err := decodeBody(d.Body)
	if err != nil {
		return nil, err
	}
	msg.Body = body

	return msg, nil
}
