// Package events defines the poll event contract between the show
// engine and its display clients.
//
// An Event answers "what should be happening right now" for a polling
// display. Events are immutable once constructed: the engine rebuilds
// them from session state on every poll, and queued answer events are
// built once before insertion and never mutated afterwards.
//
// The JSON field names are a compatibility contract with deployed
// display clients and must not change.
package events
