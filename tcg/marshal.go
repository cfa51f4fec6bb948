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

package tcg

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Marshallable is an interface for writing an object as a stream of bytes to
// a writer.
type Marshallable interface {
	Marshal(io.Writer) error
}

func littleWrite(w io.Writer, field string, data any) error {
	if err := binary.Write(w, binary.LittleEndian, data); err != nil {
		return fmt.Errorf("failed to write %s as %T: %v", field, data, err)
	}
	return nil
}

// Marshal writes the TCG_EfiSpecIDEvent wire encoding of s. Decoding the
// result with parseSpecIDEvent reproduces s field for field.
func (s *SpecIDEvent) Marshal(w io.Writer) error {
	if len(s.VendorInfo) > 255 {
		return fmt.Errorf("vendor info is too long to encode: %d bytes", len(s.VendorInfo))
	}
	if err := littleWrite(w, "signature", s.Signature); err != nil {
		return err
	}
	if err := littleWrite(w, "platform class", s.PlatformClass); err != nil {
		return err
	}
	for _, field := range []struct {
		name  string
		value uint8
	}{
		{"version minor", s.VersionMinor},
		{"version major", s.VersionMajor},
		{"errata", s.Errata},
		{"uintn size", s.UintnSize},
	} {
		if err := littleWrite(w, field.name, field.value); err != nil {
			return err
		}
	}
	if err := littleWrite(w, "algorithm count", uint32(len(s.AlgSizes))); err != nil {
		return err
	}
	for _, alg := range s.AlgSizes {
		if err := littleWrite(w, "algorithm size", alg); err != nil {
			return err
		}
	}
	if err := littleWrite(w, "vendor info size", uint8(len(s.VendorInfo))); err != nil {
		return err
	}
	if _, err := w.Write(s.VendorInfo); err != nil {
		return fmt.Errorf("failed to write vendor info: %v", err)
	}
	return nil
}

// Marshal writes the no-action header record. The event payload is written
// from Data verbatim, so a parsed header re-encodes to its original bytes
// even when the payload carries trailing slack.
func (h *HeaderEvent) Marshal(w io.Writer) error {
	if err := littleWrite(w, "register index", uint32(h.IMRIndex+1)); err != nil {
		return err
	}
	if err := littleWrite(w, "event type", uint32(h.Type)); err != nil {
		return err
	}
	if err := littleWrite(w, "digest", h.Digest); err != nil {
		return err
	}
	if err := littleWrite(w, "event size", uint32(len(h.Data))); err != nil {
		return err
	}
	if _, err := w.Write(h.Data); err != nil {
		return fmt.Errorf("failed to write event data: %v", err)
	}
	return nil
}

// Marshal writes the TCG_PCR_EVENT2 wire encoding of e. Digest lengths carry
// no size prefix on the wire, so e round-trips byte-exactly under any
// registry that sizes its algorithm ids the same way.
func (e *IMREvent) Marshal(w io.Writer) error {
	if err := littleWrite(w, "register index", uint32(e.IMRIndex+1)); err != nil {
		return err
	}
	if err := littleWrite(w, "event type", uint32(e.Type)); err != nil {
		return err
	}
	if err := littleWrite(w, "digest count", uint32(len(e.Digests))); err != nil {
		return err
	}
	for i, digest := range e.Digests {
		if err := littleWrite(w, "algorithm id", digest.AlgID); err != nil {
			return err
		}
		if _, err := w.Write(digest.Data); err != nil {
			return fmt.Errorf("failed to write digest %d: %v", i, err)
		}
	}
	if err := littleWrite(w, "event size", uint32(len(e.Data))); err != nil {
		return err
	}
	if _, err := w.Write(e.Data); err != nil {
		return fmt.Errorf("failed to write event data: %v", err)
	}
	return nil
}
