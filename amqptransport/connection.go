/***** BEGIN LICENSE BLOCK *****
# This Source Code Form is subject to the terms of the Mozilla Public
# License, v. 2.0. If a copy of the MPL was not distributed with this file,
# You can obtain one at http://mozilla.org/MPL/2.0/.
#
# The Initial Developer of the Original Code is the Mozilla Foundation.
# Portions created by the Initial Developer are Copyright (C) 2012-2015
# the Initial Developer. All Rights Reserved.
#
# Contributor(s):
#   Ben Bangert (bbangert@mozilla.com)
#   Rob Miller (rmiller@mozilla.com)
#
# ***** END LICENSE BLOCK *****/

// Package amqptransport is the concrete codec/transport collaborator the
// facade package expects (§6 EXTERNAL INTERFACES): it dials a broker over
// AMQP 0-9-1, bridges wire.Message to amqp.Publishing/amqp.Delivery, and
// implements the facade.Connection/facade.Consumer back-reference
// interfaces the base facade consults for object-serializer preference
// and destination-kind defaulting.
package amqptransport

import (
	"crypto/tls"
	"sync"

	"github.com/streadway/amqp"

	"github.com/chirino/qpid-jms-go/destination"
)

// AMQPConnection is the subset of *amqp.Connection the hub depends on,
// narrowed so tests can substitute a fake broker connection.
type AMQPConnection interface {
	Channel() (*amqp.Channel, error)
	Close() error
	NotifyClose(c chan *amqp.Error) chan *amqp.Error
}

// Dialer opens a broker connection, optionally over TLS.
type Dialer struct {
	TLSConfig *tls.Config
}

func (d Dialer) Dial(url string) (AMQPConnection, error) {
	if d.TLSConfig != nil {
		return amqp.DialTLS(url, d.TLSConfig)
	}
	return amqp.Dial(url)
}

type connectionTracker struct {
	conn    AMQPConnection
	usageWg *sync.WaitGroup
	connWg  *sync.WaitGroup
}

// Hub multiplexes AMQP channels from a small number of broker
// connections, one per distinct URL, the way a JMS ConnectionFactory
// hands out sessions over a shared transport connection.
type Hub struct {
	mu          sync.Mutex
	connections map[string]*connectionTracker
}

func NewHub() *Hub {
	return &Hub{connections: make(map[string]*connectionTracker)}
}

// GetChannel returns a channel on the connection for url, dialing a new
// connection on first use. The returned usageWg must be marked Done by
// the caller once it stops using the channel; connWg is released once
// the underlying broker connection actually closes.
func (h *Hub) GetChannel(url string, dialer Dialer) (ch *amqp.Channel, usageWg, connWg *sync.WaitGroup, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	trk, ok := h.connections[url]
	if !ok {
		conn, dialErr := dialer.Dial(url)
		if dialErr != nil {
			return nil, nil, nil, dialErr
		}
		connWg = new(sync.WaitGroup)
		connWg.Add(1)
		usageWg = new(sync.WaitGroup)
		trk = &connectionTracker{conn: conn, usageWg: usageWg, connWg: connWg}
		h.connections[url] = trk

		errChan := make(chan *amqp.Error)
		go func(c <-chan *amqp.Error) {
			<-c
			h.mu.Lock()
			usageWg.Wait()
			defer func() {
				h.mu.Unlock()
				connWg.Done()
			}()
			delete(h.connections, url)
		}(conn.NotifyClose(errChan))
	} else {
		usageWg = trk.usageWg
		connWg = trk.connWg
	}

	ch, err = trk.conn.Channel()
	if err == nil {
		usageWg.Add(1)
	}
	return
}

// Close tears down the connection for url, unless connWg belongs to an
// already-superseded connection, in which case the call is a no-op.
func (h *Hub) Close(url string, connWg *sync.WaitGroup) {
	h.mu.Lock()
	defer h.mu.Unlock()

	trk, ok := h.connections[url]
	if !ok || trk.connWg != connWg {
		return
	}
	trk.conn.Close()
}

// Connection implements facade.Connection: it remembers which content
// type this peer prefers for serialized JMS object bodies.
type Connection struct {
	URL               string
	objectContentType string
}

func NewConnection(url string) *Connection {
	return &Connection{URL: url, objectContentType: "application/x-gob-serialized-object"}
}

func (c *Connection) PreferredObjectContentType() string {
	return c.objectContentType
}

// Consumer implements facade.Consumer: it records the destination kind
// the consumer was created against, used to default an un-annotated
// incoming message's destination kind.
type Consumer struct {
	Kind destination.Kind
}

func (c Consumer) DestinationKind() destination.Kind { return c.Kind }
