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

// Properties models the AMQP 1.0 Properties section. As with Header,
// every field is optional and the section as a whole may be absent.
type Properties struct {
	MessageID          MessageID
	UserID             []byte
	To                 *string
	Subject            *string
	ReplyTo            *string
	CorrelationID      MessageID
	ContentType        *string
	CreationTime       *int64
	GroupID            *string
	GroupSequence      *uint32
	ReplyToGroupID     *string
	AbsoluteExpiryTime *int64
}

func (p *Properties) clone() *Properties {
	if p == nil {
		return nil
	}
	out := &Properties{
		MessageID:     p.MessageID.Clone(),
		CorrelationID: p.CorrelationID.Clone(),
	}
	if p.UserID != nil {
		out.UserID = append([]byte(nil), p.UserID...)
	}
	if p.To != nil {
		v := *p.To
		out.To = &v
	}
	if p.Subject != nil {
		v := *p.Subject
		out.Subject = &v
	}
	if p.ReplyTo != nil {
		v := *p.ReplyTo
		out.ReplyTo = &v
	}
	if p.ContentType != nil {
		v := *p.ContentType
		out.ContentType = &v
	}
	if p.CreationTime != nil {
		v := *p.CreationTime
		out.CreationTime = &v
	}
	if p.GroupID != nil {
		v := *p.GroupID
		out.GroupID = &v
	}
	if p.GroupSequence != nil {
		v := *p.GroupSequence
		out.GroupSequence = &v
	}
	if p.ReplyToGroupID != nil {
		v := *p.ReplyToGroupID
		out.ReplyToGroupID = &v
	}
	if p.AbsoluteExpiryTime != nil {
		v := *p.AbsoluteExpiryTime
		out.AbsoluteExpiryTime = &v
	}
	return out
}
