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

// Package blob implements a bounds-checked cursor reader over an immutable
// byte buffer. Every read returns the decoded value together with the offset
// immediately following it, so callers thread the cursor explicitly and a
// failed read never advances it.
package blob

import (
	"encoding/binary"
	"fmt"
)

// OutOfBoundsError reports a read that would run past the end of the buffer.
type OutOfBoundsError struct {
	// Offset is the position the read started at.
	Offset int
	// Need is the number of bytes the read required.
	Need int
	// Size is the total buffer length.
	Size int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("read of %d bytes at offset %d exceeds buffer size %d", e.Need, e.Offset, e.Size)
}

// Reader reads fixed-width little-endian integers and byte slices out of a
// byte buffer. It holds no cursor state of its own.
type Reader struct {
	data []byte
}

// NewReader returns a Reader over data. The buffer is not copied.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Len returns the total buffer length.
func (r *Reader) Len() int {
	return len(r.data)
}

func (r *Reader) check(off, need int) error {
	if off < 0 || need < 0 || off+need > len(r.data) {
		return &OutOfBoundsError{Offset: off, Need: need, Size: len(r.data)}
	}
	return nil
}

// Uint8 reads one byte at off.
func (r *Reader) Uint8(off int) (uint8, int, error) {
	if err := r.check(off, 1); err != nil {
		return 0, off, err
	}
	return r.data[off], off + 1, nil
}

// Uint16 reads a little-endian uint16 at off.
func (r *Reader) Uint16(off int) (uint16, int, error) {
	if err := r.check(off, 2); err != nil {
		return 0, off, err
	}
	return binary.LittleEndian.Uint16(r.data[off:]), off + 2, nil
}

// Uint32 reads a little-endian uint32 at off.
func (r *Reader) Uint32(off int) (uint32, int, error) {
	if err := r.check(off, 4); err != nil {
		return 0, off, err
	}
	return binary.LittleEndian.Uint32(r.data[off:]), off + 4, nil
}

// Bytes reads n bytes at off. The returned slice aliases the underlying
// buffer; callers must not mutate it.
func (r *Reader) Bytes(off, n int) ([]byte, int, error) {
	if err := r.check(off, n); err != nil {
		return nil, off, err
	}
	return r.data[off : off+n], off + n, nil
}
