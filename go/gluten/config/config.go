/*
Copyright 2026 The Gluten Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package config holds the plugin-level options the host engine hands the
// translation and storage layers.
package config

import (
	"github.com/spf13/pflag"
)

// Stream codecs accepted by the storage adapters.
const (
	CodecRaw    = "raw"
	CodecSnappy = "snappy"
	CodecZstd   = "zstd"
)

// Options carries the host-session settings that influence translation and
// the resource limits of the storage adapters. The zero value is not
// usable; start from DefaultOptions.
type Options struct {
	// UseStringTypeWhenEmpty mirrors the host flag that defaults the
	// element type of an empty array literal to string. The backend has no
	// equivalent convention, so translation rejects empty arrays while the
	// flag is set.
	UseStringTypeWhenEmpty bool

	// MaxJoinRows and MaxJoinBytes bound the in-memory join table restored
	// by the storage adapter. Zero means unlimited.
	MaxJoinRows  int64
	MaxJoinBytes int64

	// JoinStreamCodec selects the compression framing of persisted join
	// table streams.
	JoinStreamCodec string
}

func DefaultOptions() Options {
	return Options{
		JoinStreamCodec: CodecSnappy,
	}
}

// RegisterFlags installs the option flags on the given FlagSet.
func (opts *Options) RegisterFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&opts.UseStringTypeWhenEmpty, "use-string-type-when-empty", opts.UseStringTypeWhenEmpty,
		"default the element type of empty array literals to string (not supported by the backend; translation will reject empty arrays)")
	fs.Int64Var(&opts.MaxJoinRows, "max-join-rows", opts.MaxJoinRows,
		"maximum number of rows restored into an in-memory join table (0 = unlimited)")
	fs.Int64Var(&opts.MaxJoinBytes, "max-join-bytes", opts.MaxJoinBytes,
		"maximum decompressed byte size restored into an in-memory join table (0 = unlimited)")
	fs.StringVar(&opts.JoinStreamCodec, "join-stream-codec", opts.JoinStreamCodec,
		"compression framing of persisted join table streams: raw, snappy or zstd")
}
