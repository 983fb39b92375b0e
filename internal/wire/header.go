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

// Header models the AMQP 1.0 Header section. Every field is optional;
// a nil pointer means the field is absent (wire default applies). The
// section itself is absent when the owning Message.Header is nil.
type Header struct {
	Durable       *bool
	Priority      *uint8
	Ttl           *uint32
	FirstAcquirer *bool
	DeliveryCount *uint32
}

func (h *Header) clone() *Header {
	if h == nil {
		return nil
	}
	out := &Header{}
	if h.Durable != nil {
		v := *h.Durable
		out.Durable = &v
	}
	if h.Priority != nil {
		v := *h.Priority
		out.Priority = &v
	}
	if h.Ttl != nil {
		v := *h.Ttl
		out.Ttl = &v
	}
	if h.FirstAcquirer != nil {
		v := *h.FirstAcquirer
		out.FirstAcquirer = &v
	}
	if h.DeliveryCount != nil {
		v := *h.DeliveryCount
		out.DeliveryCount = &v
	}
	return out
}
