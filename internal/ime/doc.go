// Package ime turns keystrokes into Bangla text for an input method
// framework.
//
// # Architecture Overview
//
// A Factory holds the shared, read-only transducer and ranker. Each input
// context gets its own Session, which keeps the raw Romanized buffer and
// the cached candidates:
//
//	Key Event → Controller → Session → Transducer / Ranker
//	                ↓
//	              Sink (commit, preedit, lookup table)
//
// The Controller is framework-neutral. It maps X11 keysyms and modifier
// masks onto Session operations and keeps the candidate window state
// (cursor, page, visibility). On Linux the IBus Service exports one
// engine object per input context over D-Bus and implements Sink by
// emitting the engine signals.
//
// # Keys
//
//	┌──────────────────┬──────────────────────────────────────────────┐
//	│ Key              │ Effect                                       │
//	├──────────────────┼──────────────────────────────────────────────┤
//	│ toggle (F12)     │ commit, then switch Bangla / ASCII           │
//	│ Space, Tab       │ commit the buffer, key goes to the app       │
//	│ Return           │ commit highlighted candidate, else as Space  │
//	│ Escape           │ hide candidates, else cancel the buffer      │
//	│ BackSpace        │ drop the last buffered key                   │
//	│ Delete           │ commit the preedit as shown                  │
//	│ Up/Down/PgUp/PgDn│ move the candidate cursor                    │
//	│ 1-9, 0           │ pick a candidate on the current page         │
//	│ Ctrl/Alt/Super+x │ passed through untouched                     │
//	└──────────────────┴──────────────────────────────────────────────┘
//
// A Session is not safe for concurrent use; the Controller serialises
// access to it.
package ime
