// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHex(t *testing.T) {
	assert.Equal(t, "", ToHex(nil))
	assert.Equal(t, "0x0aff", ToHex([]byte{10, 255}))
	assert.Equal(t, "0aff", HashHex([]byte{10, 255}))

	b, err := FromHex("0x0aff")
	require.NoError(t, err)
	assert.Equal(t, []byte{10, 255}, b)
	b, err = FromHex("aff")
	require.NoError(t, err)
	assert.Equal(t, []byte{10, 255}, b)
	_, err = FromHex("0xzz")
	assert.Error(t, err)

	assert.Equal(t, "abcd", TrimHexPrefix("0XABCD"))
	assert.Equal(t, "abcd", TrimHexPrefix("abcd"))
}

func TestCopyBytes(t *testing.T) {
	assert.Nil(t, CopyBytes(nil))
	src := []byte{1, 2}
	dst := CopyBytes(src)
	dst[0] = 9
	assert.Equal(t, byte(1), src[0])
}

func TestSha3Sum256(t *testing.T) {
	// FIPS-202 SHA3-256 of the empty string
	assert.Equal(t, "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a", HashHex(Sha3Sum256(nil)))
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", HashHex(Sha256(nil)))
}
