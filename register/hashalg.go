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

// Package register contains integrity measurement register and digest
// algorithm helpers shared across event log handling.
package register

import (
	"crypto"
	"fmt"

	"github.com/google/go-tpm/legacy/tpm2"
)

// HashAlg identifies a hashing algorithm by its TCG Algorithm Registry id,
// the id measurement logs tag digests with.
type HashAlg uint16

// Digest algorithms a measurement log commonly carries.
var (
	HashSHA1   = HashAlg(tpm2.AlgSHA1)
	HashSHA256 = HashAlg(tpm2.AlgSHA256)
	HashSHA384 = HashAlg(tpm2.AlgSHA384)
	HashSHA512 = HashAlg(tpm2.AlgSHA512)
)

// CryptoHash turns the hash algo into a crypto.Hash. It returns 0 for
// algorithm ids without a Go hash implementation.
func (a HashAlg) CryptoHash() crypto.Hash {
	switch a {
	case HashSHA1:
		return crypto.SHA1
	case HashSHA256:
		return crypto.SHA256
	case HashSHA384:
		return crypto.SHA384
	case HashSHA512:
		return crypto.SHA512
	}
	return 0
}

// GoTPMAlg returns the go-tpm definition of this algorithm, based on the
// TCG Algorithm Registry.
func (a HashAlg) GoTPMAlg() tpm2.Algorithm {
	return tpm2.Algorithm(a)
}

// Size returns the digest byte length, or 0 when the algorithm is not
// recognized.
func (a HashAlg) Size() int {
	h := a.CryptoHash()
	if h == 0 {
		return 0
	}
	return h.Size()
}

// String returns a human-friendly representation of the hash algorithm.
func (a HashAlg) String() string {
	switch a {
	case HashSHA1:
		return "SHA1"
	case HashSHA256:
		return "SHA256"
	case HashSHA384:
		return "SHA384"
	case HashSHA512:
		return "SHA512"
	}
	return fmt.Sprintf("HashAlg<%d>", int(a))
}
