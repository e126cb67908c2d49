// Copyright 2026 mmmm contributors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package workflow

import (
	"sync"

	"github.com/pkg/errors"
)

// outputKey identifies a single channel: one node's one named output.
type outputKey struct {
	nodeID string
	output string
}

// broadcast is a single-publication fan-out primitive: exactly one
// Artifact (or no artifact at all, on failure) is ever sent, and every
// subscriber sees it independently. A dropped sender without a send maps
// to subscribers' channels closing empty, which Receiver.Recv reports as
// ok==false (node bodies turn that into a DependencyFailed error).
type broadcast struct {
	mu      sync.Mutex
	sent    bool
	closed  bool
	val     Artifact
	waiters []chan Artifact
}

func newBroadcast() *broadcast {
	return &broadcast{}
}

// subscribe returns a fresh channel that will receive the published value
// (if any) exactly once, then close. A subscription made after publish
// receives the stored value immediately; one made after close gets a
// channel that is already closed.
func (b *broadcast) subscribe() <-chan Artifact {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan Artifact, 1)
	if b.sent {
		ch <- b.val
		close(ch)
		return ch
	}
	if b.closed {
		close(ch)
		return ch
	}
	b.waiters = append(b.waiters, ch)
	return ch
}

// publish sends val to every current and future subscriber, then closes
// the broadcast. Calling publish or close more than once is a programmer
// error (a node kind publishing twice on one output); it panics rather
// than silently dropping the second value, since that would violate
// at-most-once publication silently instead of loudly.
func (b *broadcast) publish(val Artifact) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sent || b.closed {
		panic(errors.New("broadcast: publish called after publication already completed"))
	}
	b.sent = true
	b.val = val
	for _, w := range b.waiters {
		w <- val
		close(w)
	}
	b.waiters = nil
}

// close marks the broadcast as failed-without-sending: every subscriber's
// channel closes empty.
func (b *broadcast) close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sent || b.closed {
		return
	}
	b.closed = true
	for _, w := range b.waiters {
		close(w)
	}
	b.waiters = nil
}

// Receiver is the read side of one subscription.
type Receiver struct {
	ch <-chan Artifact
}

// Recv blocks for the broadcast's single value. ok is false if the
// producer closed without publishing.
func (r Receiver) Recv() (Artifact, bool) {
	v, ok := <-r.ch
	return v, ok
}

// Container owns every output's broadcast and the run-wide start barrier.
// Senders must be created for every declared output before any node
// subscribes (the graph loader does this during construction); the
// Container does not otherwise enforce ordering, since Go's zero-value
// semantics make subscribing to a not-yet-registered output a lookup
// failure rather than a silent miss.
type Container struct {
	mu        sync.Mutex
	outputs   map[outputKey]*broadcast
	startOnce sync.Once
	start     *broadcast
}

// NewContainer returns an empty Container with its start barrier
// constructed (but not released).
func NewContainer() *Container {
	return &Container{
		outputs: make(map[outputKey]*broadcast),
		start:   newBroadcast(),
	}
}

// Register declares an output so it can later be subscribed to and
// published on. The loader calls this for every (node, output) pair in the
// registry before constructing any node.
func (c *Container) Register(nodeID, output string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := outputKey{nodeID, output}
	if _, exists := c.outputs[key]; !exists {
		c.outputs[key] = newBroadcast()
	}
}

// Sender publishes exactly one Artifact (via Publish) or signals failure
// (via Fail) for one registered output.
type Sender struct {
	b *broadcast
}

// Publish sends val to every subscriber and closes the output.
func (s Sender) Publish(val Artifact) { s.b.publish(val) }

// Fail closes the output without publishing, which downstream consumers
// observe as DependencyFailed.
func (s Sender) Fail() { s.b.close() }

// GetSender returns the Sender for (nodeID, output), failing if it was
// never registered.
func (c *Container) GetSender(nodeID, output string) (Sender, error) {
	c.mu.Lock()
	b, ok := c.outputs[outputKey{nodeID, output}]
	c.mu.Unlock()
	if !ok {
		return Sender{}, errors.Errorf("container: output %s::%s is not registered", nodeID, output)
	}
	return Sender{b: b}, nil
}

// Subscribe returns a Receiver for (nodeID, output), failing if it was
// never registered. The Receiver observes the output's value whether it
// was published before or after the subscription.
func (c *Container) Subscribe(nodeID, output string) (Receiver, error) {
	c.mu.Lock()
	b, ok := c.outputs[outputKey{nodeID, output}]
	c.mu.Unlock()
	if !ok {
		return Receiver{}, errors.Errorf("container: output %s::%s is not registered", nodeID, output)
	}
	return Receiver{ch: b.subscribe()}, nil
}

// SubscribeStart returns a Receiver for the start barrier.
func (c *Container) SubscribeStart() Receiver {
	return Receiver{ch: c.start.subscribe()}
}

// ReleaseStart fires the start barrier exactly once; subsequent calls are
// no-ops, matching the "idempotent fire-once signal" contract.
func (c *Container) ReleaseStart() {
	c.startOnce.Do(func() {
		c.start.publish(Artifact{})
	})
}
