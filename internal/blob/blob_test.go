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

package blob

import (
	"bytes"
	"errors"
	"testing"
)

func TestReads(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07})

	v8, next, err := r.Uint8(0)
	if err != nil {
		t.Fatalf("Uint8(0) failed: %v", err)
	}
	if v8 != 0x01 || next != 1 {
		t.Errorf("Uint8(0) = (%#x, %d), want (0x01, 1)", v8, next)
	}

	v16, next, err := r.Uint16(1)
	if err != nil {
		t.Fatalf("Uint16(1) failed: %v", err)
	}
	if v16 != 0x0302 || next != 3 {
		t.Errorf("Uint16(1) = (%#x, %d), want (0x0302, 3)", v16, next)
	}

	v32, next, err := r.Uint32(3)
	if err != nil {
		t.Fatalf("Uint32(3) failed: %v", err)
	}
	if v32 != 0x07060504 || next != 7 {
		t.Errorf("Uint32(3) = (%#x, %d), want (0x07060504, 7)", v32, next)
	}

	b, next, err := r.Bytes(2, 3)
	if err != nil {
		t.Fatalf("Bytes(2, 3) failed: %v", err)
	}
	if !bytes.Equal(b, []byte{0x03, 0x04, 0x05}) || next != 5 {
		t.Errorf("Bytes(2, 3) = (%x, %d), want (030405, 5)", b, next)
	}
}

func TestOutOfBounds(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})
	tests := []struct {
		name  string
		start int
		read  func(off int) (int, error)
	}{
		{"uint8 past end", 2, func(off int) (int, error) { _, next, err := r.Uint8(off); return next, err }},
		{"uint16 straddles end", 1, func(off int) (int, error) { _, next, err := r.Uint16(off); return next, err }},
		{"uint32 too wide", 0, func(off int) (int, error) { _, next, err := r.Uint32(off); return next, err }},
		{"bytes past end", 1, func(off int) (int, error) { _, next, err := r.Bytes(off, 2); return next, err }},
		{"negative offset", -1, func(off int) (int, error) { _, next, err := r.Uint8(off); return next, err }},
		{"negative length", 0, func(off int) (int, error) { _, next, err := r.Bytes(off, -1); return next, err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := tt.read(tt.start)
			var oob *OutOfBoundsError
			if !errors.As(err, &oob) {
				t.Fatalf("got err %v, want OutOfBoundsError", err)
			}
			// A failed read must not advance the cursor.
			if next != tt.start {
				t.Errorf("next offset = %d, want %d", next, tt.start)
			}
		})
	}
}

func TestZeroLengthRead(t *testing.T) {
	r := NewReader([]byte{0x01})
	b, next, err := r.Bytes(1, 0)
	if err != nil {
		t.Fatalf("Bytes(1, 0) failed: %v", err)
	}
	if len(b) != 0 || next != 1 {
		t.Errorf("Bytes(1, 0) = (%x, %d), want empty at offset 1", b, next)
	}
}
