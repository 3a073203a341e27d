// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

// ErrNotOggVorbisFile indicates the input has no readable Vorbis headers.
var ErrNotOggVorbisFile = errors.New("not an Ogg Vorbis file")
