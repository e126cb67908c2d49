// Copyright 2026 mmmm contributors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package workflow

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentHash is a fixed-width digest of blob bytes, opaque to callers
// beyond equality and a string form for logging and cache keys.
type ContentHash [sha256.Size]byte

// HashBytes computes the ContentHash of b.
func HashBytes(b []byte) ContentHash {
	return ContentHash(sha256.Sum256(b))
}

// String renders the digest as lowercase hex.
func (h ContentHash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether h is the unset sentinel value.
func (h ContentHash) IsZero() bool {
	return h == ContentHash{}
}
