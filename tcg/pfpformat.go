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

// Package tcg implements the record-level wire format of TCG measurement
// event logs as laid out in the PC Client Platform Firmware Profile: the
// no-action header record carrying the TCG_EfiSpecIDEvent algorithm registry,
// and the crypto agile measurement records whose digest lengths are resolved
// through that registry.
package tcg

import (
	"fmt"

	"github.com/cc-api/go-cctrusted/internal/blob"
)

// IMREndSentinel is the raw register-index value that marks the end of a
// measurement log. No bytes beyond it are part of the log.
const IMREndSentinel uint32 = 0xFFFFFFFF

// The header record carries a fixed 20-byte digest placeholder ahead of its
// event size field.
const headerDigestSize = 20

// MalformedHeaderError reports a header record whose internal length fields
// are inconsistent with the bytes available.
type MalformedHeaderError struct {
	Field string
	Err   error
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("malformed header record: %s: %v", e.Field, e.Err)
}

func (e *MalformedHeaderError) Unwrap() error { return e.Err }

// UnknownAlgorithmError reports a measurement record referencing an algorithm
// id with no entry in the log's algorithm registry. The digest length cannot
// be determined, so the record and everything after it is undecodable.
type UnknownAlgorithmError struct {
	AlgID uint16
}

func (e *UnknownAlgorithmError) Error() string {
	return fmt.Sprintf("no registered digest size for algorithm id 0x%04x", e.AlgID)
}

// AlgorithmSize is one (algorithm id, digest size) pair from the
// TCG_EfiSpecIDEvent algorithm registry.
type AlgorithmSize struct {
	AlgID      uint16
	DigestSize uint16
}

// SpecIDEvent is the TCG_EfiSpecIDEvent payload of the leading no-action
// record. Its AlgSizes sequence is the algorithm registry used to size the
// digests of every subsequent measurement record.
type SpecIDEvent struct {
	Signature     [16]byte
	PlatformClass uint32
	VersionMinor  uint8
	VersionMajor  uint8
	Errata        uint8
	UintnSize     uint8
	// AlgSizes holds the registry in declaration order.
	AlgSizes []AlgorithmSize
	// VendorInfo may be empty.
	VendorInfo []byte
}

// DigestSize looks up the digest length for an algorithm id. With duplicate
// ids the first declared entry wins.
func (s *SpecIDEvent) DigestSize(algID uint16) (uint16, bool) {
	for _, alg := range s.AlgSizes {
		if alg.AlgID == algID {
			return alg.DigestSize, true
		}
	}
	return 0, false
}

// Digest is a single tagged digest from a measurement record.
type Digest struct {
	AlgID uint16
	Data  []byte
}

// HeaderEvent is the leading no-action record of a log
// (TCG_PCClientPCREvent). The stored register index is the declared value
// minus one; the format reserves 0 to mean "no register", so the header
// typically carries -1.
type HeaderEvent struct {
	IMRIndex int
	Type     EventType
	// Digest is a fixed 20-byte placeholder, zero in practice.
	Digest [20]byte
	// Data is the raw event payload the SpecID was decoded from.
	Data []byte
	// SpecID is the decoded TCG_EfiSpecIDEvent.
	SpecID SpecIDEvent
}

// IMREvent is one measurement record (TCG_PCR_EVENT2). The stored register
// index is the declared value minus one. Digests appear in the order
// encountered on the wire; their count is per record and need not cover the
// full registry.
type IMREvent struct {
	IMRIndex int
	Type     EventType
	Digests  []Digest
	Data     []byte
}

// ParseHeaderEvent decodes the no-action header record starting at off and
// returns it together with the offset of the following record. The returned
// offset is derived from the record's declared event size, so trailing slack
// inside the event payload does not desynchronize the cursor.
func ParseHeaderEvent(data []byte, off int) (HeaderEvent, int, error) {
	r := blob.NewReader(data)
	var hdr HeaderEvent

	rawIMR, cur, err := r.Uint32(off)
	if err != nil {
		return hdr, off, err
	}
	hdr.IMRIndex = int(rawIMR) - 1
	typ, cur, err := r.Uint32(cur)
	if err != nil {
		return hdr, off, err
	}
	hdr.Type = EventType(typ)
	digest, cur, err := r.Bytes(cur, headerDigestSize)
	if err != nil {
		return hdr, off, err
	}
	copy(hdr.Digest[:], digest)
	eventSize, cur, err := r.Uint32(cur)
	if err != nil {
		return hdr, off, err
	}
	event, next, err := r.Bytes(cur, int(eventSize))
	if err != nil {
		return hdr, off, &MalformedHeaderError{Field: "event data", Err: err}
	}
	hdr.Data = event

	specID, err := parseSpecIDEvent(event)
	if err != nil {
		return hdr, off, err
	}
	hdr.SpecID = specID
	return hdr, next, nil
}

// parseSpecIDEvent decodes a TCG_EfiSpecIDEvent from the header record's
// event payload. Length fields that would run past the payload are reported
// as MalformedHeaderError.
func parseSpecIDEvent(event []byte) (SpecIDEvent, error) {
	r := blob.NewReader(event)
	var s SpecIDEvent

	sig, cur, err := r.Bytes(0, 16)
	if err != nil {
		return s, &MalformedHeaderError{Field: "signature", Err: err}
	}
	copy(s.Signature[:], sig)
	if s.PlatformClass, cur, err = r.Uint32(cur); err != nil {
		return s, &MalformedHeaderError{Field: "platform class", Err: err}
	}
	if s.VersionMinor, cur, err = r.Uint8(cur); err != nil {
		return s, &MalformedHeaderError{Field: "version minor", Err: err}
	}
	if s.VersionMajor, cur, err = r.Uint8(cur); err != nil {
		return s, &MalformedHeaderError{Field: "version major", Err: err}
	}
	if s.Errata, cur, err = r.Uint8(cur); err != nil {
		return s, &MalformedHeaderError{Field: "errata", Err: err}
	}
	if s.UintnSize, cur, err = r.Uint8(cur); err != nil {
		return s, &MalformedHeaderError{Field: "uintn size", Err: err}
	}
	numAlgs, cur, err := r.Uint32(cur)
	if err != nil {
		return s, &MalformedHeaderError{Field: "algorithm count", Err: err}
	}
	for i := uint32(0); i < numAlgs; i++ {
		var alg AlgorithmSize
		if alg.AlgID, cur, err = r.Uint16(cur); err != nil {
			return s, &MalformedHeaderError{Field: "algorithm id", Err: err}
		}
		if alg.DigestSize, cur, err = r.Uint16(cur); err != nil {
			return s, &MalformedHeaderError{Field: "digest size", Err: err}
		}
		s.AlgSizes = append(s.AlgSizes, alg)
	}
	vendorSize, cur, err := r.Uint8(cur)
	if err != nil {
		return s, &MalformedHeaderError{Field: "vendor info size", Err: err}
	}
	if s.VendorInfo, _, err = r.Bytes(cur, int(vendorSize)); err != nil {
		return s, &MalformedHeaderError{Field: "vendor info", Err: err}
	}
	return s, nil
}

// ParseIMREvent decodes one measurement record starting at off, sizing each
// digest through the given registry, and returns it together with the offset
// of the following record. An algorithm id absent from the registry aborts
// the decode with UnknownAlgorithmError.
func ParseIMREvent(data []byte, off int, specID *SpecIDEvent) (IMREvent, int, error) {
	r := blob.NewReader(data)
	var evt IMREvent

	rawIMR, cur, err := r.Uint32(off)
	if err != nil {
		return evt, off, err
	}
	evt.IMRIndex = int(rawIMR) - 1
	typ, cur, err := r.Uint32(cur)
	if err != nil {
		return evt, off, err
	}
	evt.Type = EventType(typ)

	digestCount, cur, err := r.Uint32(cur)
	if err != nil {
		return evt, off, err
	}
	for i := uint32(0); i < digestCount; i++ {
		algID, next, err := r.Uint16(cur)
		if err != nil {
			return evt, off, err
		}
		cur = next
		if specID == nil {
			return evt, off, &UnknownAlgorithmError{AlgID: algID}
		}
		size, ok := specID.DigestSize(algID)
		if !ok {
			return evt, off, &UnknownAlgorithmError{AlgID: algID}
		}
		digest, next, err := r.Bytes(cur, int(size))
		if err != nil {
			return evt, off, err
		}
		cur = next
		evt.Digests = append(evt.Digests, Digest{AlgID: algID, Data: digest})
	}

	eventSize, cur, err := r.Uint32(cur)
	if err != nil {
		return evt, off, err
	}
	event, cur, err := r.Bytes(cur, int(eventSize))
	if err != nil {
		return evt, off, err
	}
	evt.Data = event
	return evt, cur, nil
}
