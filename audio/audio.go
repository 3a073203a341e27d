// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// Source is a stream of decoded PCM samples.
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// BitDepth classifies how samples were stored in the container before decoding.
// The zero value means unknown, which is what lossy codecs report.
type BitDepth struct {
	Bits  int
	Float bool
}

func (b BitDepth) String() string {
	switch {
	case b.Bits <= 0:
		return "N/A"
	case b.Float:
		return fmt.Sprintf("%d bit-f", b.Bits)
	default:
		return fmt.Sprintf("%d bit", b.Bits)
	}
}

// BitDepthReporter is implemented by sources that know their stored sample format.
type BitDepthReporter interface {
	BitDepth() BitDepth
}

// SourceBitDepth returns the bit depth of src, or the zero BitDepth when src
// does not report one.
func SourceBitDepth(src Source) BitDepth {
	if r, ok := src.(BitDepthReporter); ok {
		return r.BitDepth()
	}
	return BitDepth{}
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
// Keys are case-insensitive and a leading dot is ignored, so a file
// extension can be used directly.
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func normalizeFormat(format string) string {
	return strings.ToLower(strings.TrimPrefix(format, "."))
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[normalizeFormat(format)] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[normalizeFormat(format)]
	return d, ok
}

// Formats returns the registered format keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	formats := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		formats = append(formats, k)
	}
	sort.Strings(formats)

	return formats
}
