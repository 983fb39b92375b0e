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
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/chirino/qpid-jms-go/internal/wire"
)

func init() {
	gob.Register(map[string]interface{}{})
	gob.Register([]interface{}{})
	gob.Register(int64(0))
	gob.Register(float64(0))
	gob.Register(true)
	gob.Register("")
	gob.Register([]byte(nil))
}

// wireBodyKind is the single leading byte that records which of the four
// AMQP body shapes the remaining bytes encode, since the AMQP 0-9-1 wire
// format carries only an opaque body blob and gives the JMS facade no
// section-kind marker of its own.
type wireBodyKind byte

const (
	wireBodyNone wireBodyKind = iota
	wireBodyData
	wireBodyAmqpValue
	wireBodyAmqpSequence
)

// encodeBody serializes a wire.Body into the single opaque blob the
// broker transports as the message body. Map and stream bodies are
// gob-encoded, matching the client package's encoder convention of
// picking a concrete serialization for values of unknown shape.
func encodeBody(b *wire.Body) ([]byte, error) {
	if b == nil {
		return []byte{byte(wireBodyNone)}, nil
	}
	switch b.Kind {
	case wire.BodyData:
		return append([]byte{byte(wireBodyData)}, b.Data...), nil
	case wire.BodyAmqpValue:
		var buf bytes.Buffer
		buf.WriteByte(byte(wireBodyAmqpValue))
		if err := gob.NewEncoder(&buf).Encode(&b.Value); err != nil {
			return nil, fmt.Errorf("encoding AmqpValue body: %w", err)
		}
		return buf.Bytes(), nil
	case wire.BodyAmqpSequence:
		var buf bytes.Buffer
		buf.WriteByte(byte(wireBodyAmqpSequence))
		seq := b.Sequence
		if err := gob.NewEncoder(&buf).Encode(&seq); err != nil {
			return nil, fmt.Errorf("encoding AmqpSequence body: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return []byte{byte(wireBodyNone)}, nil
	}
}

// decodeBody is the inverse of encodeBody.
func decodeBody(raw []byte) (*wire.Body, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	kind, payload := wireBodyKind(raw[0]), raw[1:]
	switch kind {
	case wireBodyNone:
		return nil, nil
	case wireBodyData:
		return &wire.Body{Kind: wire.BodyData, Data: append([]byte(nil), payload...)}, nil
	case wireBodyAmqpValue:
		var v interface{}
		if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&v); err != nil {
			return nil, fmt.Errorf("decoding AmqpValue body: %w", err)
		}
		return &wire.Body{Kind: wire.BodyAmqpValue, Value: v}, nil
	case wireBodyAmqpSequence:
		var seq []interface{}
		if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&seq); err != nil {
			return nil, fmt.Errorf("decoding AmqpSequence body: %w", err)
		}
		return &wire.Body{Kind: wire.BodyAmqpSequence, Sequence: seq}, nil
	default:
		return nil, fmt.Errorf("unknown wire body kind %d", kind)
	}
}
