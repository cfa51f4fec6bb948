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

// imrlogdump parses a TCG measurement log captured in a file and renders it
// either as a raw hex dump or as a field-level listing of the decoded
// records.
package main

import (
	"fmt"
	"os"

	"github.com/cc-api/go-cctrusted/dump"
	"github.com/cc-api/go-cctrusted/imrlog"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var opts struct {
	input string
	raw   bool
	start int
	count int
}

func run(_ *cobra.Command, _ []string) error {
	data, err := os.ReadFile(opts.input)
	if err != nil {
		return fmt.Errorf("failed to read event log file: %w", err)
	}
	log := imrlog.New(data)
	if err := log.Parse(); err != nil {
		return fmt.Errorf("failed to parse %q: %w", opts.input, err)
	}
	if opts.start != 0 || opts.count != 0 {
		if err := log.Select(opts.start, opts.count); err != nil {
			return err
		}
	}
	if opts.raw {
		return dump.Raw(os.Stdout, log.Raw())
	}
	return dump.Log(os.Stdout, log)
}

func main() {
	cmd := &cobra.Command{
		Use:           "imrlogdump --input FILE",
		Short:         "Dump a TCG measurement event log",
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().StringVar(&opts.input, "input", "", "path to the raw event log file")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "dump the raw buffer as hex instead of decoded fields")
	cmd.Flags().IntVar(&opts.start, "start", 0, "1-based index of the first event to keep (0 keeps all)")
	cmd.Flags().IntVar(&opts.count, "count", 0, "maximum number of events to keep (0 keeps all)")
	cmd.MarkFlagRequired("input")

	if err := cmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}
