// Copyright 2024 CC API authors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

// Package imrlog decodes a raw TCG measurement log buffer into its no-action
// header, algorithm registry and ordered measurement records, addressed by
// integrity measurement register (IMR) index.
//
// Parsing is a single linear pass. The registry decoded from the header
// record sizes the digests of every following record, so any decode error
// aborts the whole pass rather than risking desynchronized offsets.
package imrlog

import (
	"fmt"

	"github.com/cc-api/go-cctrusted/internal/blob"
	"github.com/cc-api/go-cctrusted/tcg"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("service", "imrlog")

// InvalidRangeError reports a Select argument outside the bounds of the
// parsed log.
type InvalidRangeError struct {
	Param string
	Value int
	Limit int
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid %s %d: must be between 1 and %d", e.Param, e.Value, e.Limit)
}

// EventLog is a measurement log parsed from a raw buffer. The zero value is
// not usable; construct with New.
type EventLog struct {
	raw []byte

	header *tcg.HeaderEvent
	events []tcg.IMREvent
	count  int
	parsed bool
}

// New returns an EventLog over the raw buffer. The buffer is owned by the
// caller and never copied or mutated; it is only decoded by Parse.
func New(raw []byte) *EventLog {
	return &EventLog{raw: raw}
}

// Raw returns the underlying buffer.
func (l *EventLog) Raw() []byte {
	return l.raw
}

// Header returns the no-action header record, or nil if none was parsed.
// When a log carries more than one no-action record the last one wins.
func (l *EventLog) Header() *tcg.HeaderEvent {
	return l.header
}

// SpecID returns the algorithm registry from the header record, or nil if no
// header record was parsed.
func (l *EventLog) SpecID() *tcg.SpecIDEvent {
	if l.header == nil {
		return nil
	}
	return &l.header.SpecID
}

// Events returns the measurement records in log order. The header record is
// not included.
func (l *EventLog) Events() []tcg.IMREvent {
	return l.events
}

// Count returns the total number of records parsed, header records included.
func (l *EventLog) Count() int {
	return l.count
}

// Parse runs a single pass over the buffer, dispatching each record by event
// type: no-action records to the header parser, everything else to the
// measurement record parser. It stops at the end-of-log sentinel or at
// buffer exhaustion.
//
// On error no state changes: a decode failure midway leaves the log with
// zero parsed records instead of a prefix that may already be
// desynchronized. An empty buffer is a valid log with zero records; it is
// reported through the package logger, not as an error. Parse is idempotent,
// a second call is a no-op.
func (l *EventLog) Parse() error {
	if l.parsed {
		return nil
	}
	if len(l.raw) == 0 {
		log.Info("no event log data to parse")
		l.parsed = true
		return nil
	}

	r := blob.NewReader(l.raw)
	var (
		header *tcg.HeaderEvent
		events []tcg.IMREvent
		count  int
	)
	cur := 0
	for cur < r.Len() {
		start := cur
		rawIMR, next, err := r.Uint32(cur)
		if err != nil {
			return err
		}
		if rawIMR == tcg.IMREndSentinel {
			break
		}
		typ, _, err := r.Uint32(next)
		if err != nil {
			return err
		}
		if tcg.EventType(typ) == tcg.EventTypeNoAction {
			hdr, next, err := tcg.ParseHeaderEvent(l.raw, start)
			if err != nil {
				return err
			}
			header = &hdr
			cur = next
		} else {
			var specID *tcg.SpecIDEvent
			if header != nil {
				specID = &header.SpecID
			}
			evt, next, err := tcg.ParseIMREvent(l.raw, start, specID)
			if err != nil {
				return err
			}
			events = append(events, evt)
			cur = next
		}
		count++
	}

	l.header = header
	l.events = events
	l.count = count
	l.parsed = true
	return nil
}

// Select narrows the measurement records to a window. start is the 1-based
// index of the first record to keep and count the maximum number of records
// kept from that point; zero leaves the corresponding axis unwindowed.
// Select parses the log first if needed.
//
// The truncation is destructive: records outside the window are dropped from
// the log. The header and registry are unaffected. On InvalidRangeError the
// record sequence is left untouched.
func (l *EventLog) Select(start, count int) error {
	if err := l.Parse(); err != nil {
		return err
	}
	events := l.events
	if start != 0 {
		if start < 1 || start > l.count {
			return &InvalidRangeError{Param: "start", Value: start, Limit: l.count}
		}
		if start-1 < len(events) {
			events = events[start-1:]
		} else {
			events = nil
		}
	}
	if count != 0 {
		if count < 1 || count > len(events) {
			return &InvalidRangeError{Param: "count", Value: count, Limit: len(events)}
		}
		events = events[:count]
	}
	l.events = events
	return nil
}
