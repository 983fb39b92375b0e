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

// cloneValue deep-copies a single AMQP value of the kind that shows up in
// Message-Annotations, Application-Properties, and AmqpValue/AmqpSequence
// bodies: a primitive, a []byte, or a map/slice nesting any of those.
// Primitives are copied by Go's own value semantics; []byte/map/slice are
// the only shapes that would otherwise alias between a message and its
// clone, so those are the only cases handled explicitly.
func cloneValue(v interface{}) interface{} {
	switch val := v.(type) {
	case []byte:
		return append([]byte(nil), val...)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, elem := range val {
			out[k] = cloneValue(elem)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, elem := range val {
			out[i] = cloneValue(elem)
		}
		return out
	default:
		return v
	}
}
