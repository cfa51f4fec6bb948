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

// Package dump renders measurement logs for inspection, either as a
// byte-level hex dump of the raw buffer or as a field-level listing of the
// decoded records. It consumes the structures produced by imrlog and never
// re-parses raw bytes itself.
package dump

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/cc-api/go-cctrusted/imrlog"
	"github.com/cc-api/go-cctrusted/register"
	"github.com/cc-api/go-cctrusted/tcg"
)

// Raw writes a hex dump of the raw log buffer: offset, sixteen bytes per
// line, with an ASCII column.
func Raw(w io.Writer, data []byte) error {
	_, err := io.WriteString(w, hex.Dump(data))
	return err
}

// Log writes a field-level rendering of a parsed log: the header record with
// its algorithm registry, then every measurement record in log order.
func Log(w io.Writer, l *imrlog.EventLog) error {
	if l.Count() == 0 {
		_, err := fmt.Fprintln(w, "no parsed event log entries")
		return err
	}
	if hdr := l.Header(); hdr != nil {
		if err := header(w, hdr); err != nil {
			return err
		}
	}
	fmt.Fprintln(w, "Event Log Entries:")
	for i, evt := range l.Events() {
		if err := event(w, i, evt); err != nil {
			return err
		}
	}
	return nil
}

func header(w io.Writer, hdr *tcg.HeaderEvent) error {
	fmt.Fprintln(w, "Header Event:")
	fmt.Fprintf(w, "  IMR               : %d\n", hdr.IMRIndex)
	fmt.Fprintf(w, "  Type              : %s\n", hdr.Type)
	specID := hdr.SpecID
	fmt.Fprintf(w, "  Signature         : %q\n", trimNul(specID.Signature[:]))
	fmt.Fprintf(w, "  Platform Class    : %d\n", specID.PlatformClass)
	fmt.Fprintf(w, "  Spec Version      : %d.%d errata %d\n",
		specID.VersionMajor, specID.VersionMinor, specID.Errata)
	fmt.Fprintf(w, "  Uintn Size        : %d\n", specID.UintnSize)
	for _, alg := range specID.AlgSizes {
		fmt.Fprintf(w, "  Algorithm         : %s (0x%04x), digest size %d\n",
			register.HashAlg(alg.AlgID), alg.AlgID, alg.DigestSize)
	}
	_, err := fmt.Fprintf(w, "  Vendor Info       : %x\n", specID.VendorInfo)
	return err
}

func event(w io.Writer, seq int, evt tcg.IMREvent) error {
	fmt.Fprintf(w, "Event %d:\n", seq)
	fmt.Fprintf(w, "  IMR               : %d\n", evt.IMRIndex)
	fmt.Fprintf(w, "  Type              : %s\n", evt.Type)
	for _, digest := range evt.Digests {
		fmt.Fprintf(w, "  Digest[%s]   : %x\n", register.HashAlg(digest.AlgID), digest.Data)
	}
	fmt.Fprintf(w, "  Event Size        : %d\n", len(evt.Data))
	_, err := fmt.Fprintf(w, "  Event Data        : %x\n", evt.Data)
	return err
}

func trimNul(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
