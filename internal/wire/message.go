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

// Message is the in-memory AMQP 1.0 message the facade package owns
// exclusively for its lifetime. Each of the five sections is optional;
// a nil Header/Properties/Body or a nil annotations/properties map means
// that section is entirely absent from the message, per the lazy-section
// invariant the facade is responsible for upholding.
type Message struct {
	Header                *Header
	Properties            *Properties
	MessageAnnotations    map[string]interface{}
	ApplicationProperties map[string]interface{}
	Body                  *Body
}

// NewMessage returns an empty message with no sections present.
func NewMessage() *Message {
	return &Message{}
}

// EnsureHeader returns the Header section, creating an empty one first if
// the message doesn't already own one.
func (m *Message) EnsureHeader() *Header {
	if m.Header == nil {
		m.Header = &Header{}
	}
	return m.Header
}

// EnsureProperties returns the Properties section, creating an empty one
// first if the message doesn't already own one.
func (m *Message) EnsureProperties() *Properties {
	if m.Properties == nil {
		m.Properties = &Properties{}
	}
	return m.Properties
}

// EnsureMessageAnnotations returns the Message-Annotations map, creating
// an empty one first if absent.
func (m *Message) EnsureMessageAnnotations() map[string]interface{} {
	if m.MessageAnnotations == nil {
		m.MessageAnnotations = make(map[string]interface{})
	}
	return m.MessageAnnotations
}

// EnsureApplicationProperties returns the Application-Properties map,
// creating an empty one first if absent.
func (m *Message) EnsureApplicationProperties() map[string]interface{} {
	if m.ApplicationProperties == nil {
		m.ApplicationProperties = make(map[string]interface{})
	}
	return m.ApplicationProperties
}

// Clone produces a deep copy of the message, used by the facade's copy()
// lifecycle operation.
func (m *Message) Clone() *Message {
	out := &Message{
		Header:     m.Header.clone(),
		Properties: m.Properties.clone(),
		Body:       m.Body.clone(),
	}
	if m.MessageAnnotations != nil {
		out.MessageAnnotations = make(map[string]interface{}, len(m.MessageAnnotations))
		for k, v := range m.MessageAnnotations {
			out.MessageAnnotations[k] = cloneValue(v)
		}
	}
	if m.ApplicationProperties != nil {
		out.ApplicationProperties = make(map[string]interface{}, len(m.ApplicationProperties))
		for k, v := range m.ApplicationProperties {
			out.ApplicationProperties[k] = cloneValue(v)
		}
	}
	return out
}
