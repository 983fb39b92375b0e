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

import "github.com/chirino/qpid-jms-go/destination"

// Connection is the facade's only collaborator with the owning session: a
// weak/back-reference used solely to resolve the preferred serializer for
// object bodies (§9 "Connection back-reference"). It is passed as a plain
// interface parameter, not a container reference, so the facade can
// operate standalone in tests.
type Connection interface {
	// PreferredObjectContentType returns the content-type symbol this
	// connection's peers agree on for serialized object bodies.
	PreferredObjectContentType() string
}

// Consumer exposes the destination kind of the consumer a message was
// received on, used by the destination helper to default an un-annotated
// incoming message's destination kind (§4.B).
type Consumer interface {
	DestinationKind() destination.Kind
}
