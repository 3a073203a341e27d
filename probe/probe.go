// SPDX-License-Identifier: EPL-2.0

package probe

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ik5/audmeter/audio"
)

// Result is a decoded file and its description.
type Result struct {
	Info   FileInfo
	Buffer *audio.Buffer
}

// mimeFormats maps sniffed MIME types to registry keys.
var mimeFormats = map[string]string{
	"audio/wav":       "wav",
	"audio/aiff":      "aiff",
	"audio/mpeg":      "mp3",
	"audio/flac":      "flac",
	"audio/ogg":       "ogg",
	"application/ogg": "ogg",
}

// DetectFormat returns the registry key for data. Content wins over the
// extension of name; "" means neither was recognised.
func DetectFormat(data []byte, name string) string {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		for mime, format := range mimeFormats {
			if m.Is(mime) {
				return format
			}
		}
	}

	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// displayFormat is the upper-case extension of name, or the detected format
// when name has none.
func displayFormat(name, detected string) string {
	if ext := strings.TrimPrefix(filepath.Ext(name), "."); ext != "" {
		return strings.ToUpper(ext)
	}
	return strings.ToUpper(detected)
}

// Reader decodes all of r. name is the display name and is also used for the
// extension fallback; size is reported as given, or as the number of bytes
// read when size <= 0.
func Reader(registry *audio.Registry, name string, r io.Reader, size int64) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrDecodeFailure, name, err)
	}
	if size <= 0 {
		size = int64(len(data))
	}

	format := DetectFormat(data, name)
	dec, ok := registry.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %w: %s", ErrDecodeFailure, ErrUnsupportedFormat, name)
	}

	src, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeFailure, name, err)
	}
	defer src.Close()

	buf, err := audio.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeFailure, name, err)
	}

	res, err := Buffer(name, buf)
	if err != nil {
		return nil, err
	}
	res.Info.Format = displayFormat(name, format)
	res.Info.BitDepth = audio.SourceBitDepth(src)
	res.Info.Size = size

	return res, nil
}

// File decodes the file at path. An empty displayName uses the base name of
// path.
func File(registry *audio.Registry, path, displayName string) (*Result, error) {
	if displayName == "" {
		displayName = filepath.Base(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailure, err)
	}
	defer f.Close()

	var size int64
	if st, err := f.Stat(); err == nil {
		size = st.Size()
	}

	return Reader(registry, displayName, f, size)
}

// Buffer describes an already decoded buffer. The format is taken from the
// extension of name, or "PCM".
func Buffer(name string, buf *audio.Buffer) (*Result, error) {
	if buf == nil || buf.Channels() == 0 || buf.Frames() == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyBuffer)
	}
	if err := buf.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeFailure, name, err)
	}

	return &Result{
		Info: FileInfo{
			Filename:   name,
			Format:     displayFormat(name, "pcm"),
			SampleRate: buf.SampleRate,
			Channels:   buf.Channels(),
			Duration:   buf.Duration(),
		},
		Buffer: buf,
	}, nil
}
