// Package timecode owns the JJY frame encoding.
//
// Ownership boundary:
// - CalendarTime snapshot type and its range validation
// - Symbol/Variant/Frame wire types
// - the pure minute-frame encoder (timecode 1 and 2 layouts)
//
// Encoding is deterministic and performs no I/O; field identity is implied
// by frame position, never by a runtime label.
package timecode
