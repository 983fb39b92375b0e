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

// Package destination translates between a typed JMS destination and the
// AMQP "to"/"reply-to" address string plus the small integer annotation
// hint that records which of the four destination kinds it is (§4.B).
package destination

import "strings"

// Kind enumerates the four JMS destination flavors.
type Kind int

const (
	Queue Kind = iota
	Topic
	TempQueue
	TempTopic
)

func (k Kind) String() string {
	switch k {
	case Queue:
		return "queue"
	case Topic:
		return "topic"
	case TempQueue:
		return "temp-queue"
	case TempTopic:
		return "temp-topic"
	default:
		return "unknown"
	}
}

func (k Kind) IsTemporary() bool {
	return k == TempQueue || k == TempTopic
}

func (k Kind) IsTopic() bool {
	return k == Topic || k == TempTopic
}

// Destination is a typed JMS destination: a named queue or topic, or one
// of their temporary variants.
type Destination struct {
	Kind Kind
	Name string
}

func NewQueue(name string) Destination     { return Destination{Kind: Queue, Name: name} }
func NewTopic(name string) Destination     { return Destination{Kind: Topic, Name: name} }
func NewTempQueue(name string) Destination { return Destination{Kind: TempQueue, Name: name} }
func NewTempTopic(name string) Destination { return Destination{Kind: TempTopic, Name: name} }

// Annotation values for x-opt-jms-dest / x-opt-jms-reply-to, matching the
// small-integer encoding the AMQP JMS mapping uses to record destination
// kind alongside the bare address string.
const (
	AnnotationQueue     int64 = 0
	AnnotationTopic     int64 = 1
	AnnotationTempQueue int64 = 2
	AnnotationTempTopic int64 = 3
)

func kindToAnnotation(k Kind) int64 {
	switch k {
	case Queue:
		return AnnotationQueue
	case Topic:
		return AnnotationTopic
	case TempQueue:
		return AnnotationTempQueue
	case TempTopic:
		return AnnotationTempTopic
	default:
		return AnnotationQueue
	}
}

func annotationToKind(v int64) (Kind, bool) {
	switch v {
	case AnnotationQueue:
		return Queue, true
	case AnnotationTopic:
		return Topic, true
	case AnnotationTempQueue:
		return TempQueue, true
	case AnnotationTempTopic:
		return TempTopic, true
	default:
		return Queue, false
	}
}

// Encode converts a destination into its wire shape: the bare address
// string and the annotation value to store alongside it.
func Encode(dest Destination) (address string, annotation int64) {
	return dest.Name, kindToAnnotation(dest.Kind)
}

const (
	tempQueuePrefix = "temp-queue://"
	tempTopicPrefix = "temp-topic://"
)

// Decode converts a wire address plus optional annotation back into a
// typed Destination. hasAnnotation is false when the annotation key was
// absent from the message (§4.B: "When the annotation is absent ... the
// facade defaults to the consumer's own destination kind"). defaultKind
// supplies that consumer-kind default; it is only consulted when no
// annotation is present. When no annotation is present and no consumer
// context applies (hasDefaultKind is false), Decode falls back to sniffing the
// temporary-destination address-prefix convention described in
// SPEC_FULL.md, and otherwise assumes Queue.
func Decode(address string, annotation int64, hasAnnotation bool, defaultKind Kind, hasDefaultKind bool) Destination {
	if hasAnnotation {
		if kind, ok := annotationToKind(annotation); ok {
			return Destination{Kind: kind, Name: address}
		}
	}
	if hasDefaultKind {
		return Destination{Kind: defaultKind, Name: address}
	}
	switch {
	case strings.HasPrefix(address, tempQueuePrefix):
		return Destination{Kind: TempQueue, Name: address}
	case strings.HasPrefix(address, tempTopicPrefix):
		return Destination{Kind: TempTopic, Name: address}
	default:
		return Destination{Kind: Queue, Name: address}
	}
}
