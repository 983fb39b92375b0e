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

package wire

// BodyKind identifies the AMQP section shape carried by a Message's Body.
type BodyKind int

const (
	// BodyNone means the message has no Body section at all.
	BodyNone BodyKind = iota
	// BodyData is a Data section: an opaque byte sequence.
	BodyData
	// BodyAmqpValue is an AmqpValue section holding a single AMQP value
	// (a string for text bodies, a map[string]interface{} for map bodies).
	BodyAmqpValue
	// BodyAmqpSequence is an AmqpSequence section: an ordered, heterogeneous list.
	BodyAmqpSequence
)

// Body is the tagged variant covering the three AMQP body section shapes
// the facade's typed body variants need (§9 "Shape over inheritance").
type Body struct {
	Kind     BodyKind
	Data     []byte
	Value    interface{}
	Sequence []interface{}
}

func (b *Body) clone() *Body {
	if b == nil {
		return nil
	}
	out := &Body{Kind: b.Kind, Value: cloneValue(b.Value)}
	if b.Data != nil {
		out.Data = append([]byte(nil), b.Data...)
	}
	if b.Sequence != nil {
		out.Sequence = make([]interface{}, len(b.Sequence))
		for i, v := range b.Sequence {
			out.Sequence[i] = cloneValue(v)
		}
	}
	return out
}
