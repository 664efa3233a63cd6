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

package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	require.False(t, opts.UseStringTypeWhenEmpty)
	require.Equal(t, CodecSnappy, opts.JoinStreamCodec)
	require.Zero(t, opts.MaxJoinRows)
	require.Zero(t, opts.MaxJoinBytes)
}

func TestRegisterFlags(t *testing.T) {
	opts := DefaultOptions()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	opts.RegisterFlags(fs)

	err := fs.Parse([]string{
		"--use-string-type-when-empty",
		"--max-join-rows=100",
		"--max-join-bytes=1048576",
		"--join-stream-codec=zstd",
	})
	require.NoError(t, err)

	require.True(t, opts.UseStringTypeWhenEmpty)
	require.Equal(t, int64(100), opts.MaxJoinRows)
	require.Equal(t, int64(1048576), opts.MaxJoinBytes)
	require.Equal(t, CodecZstd, opts.JoinStreamCodec)
}
