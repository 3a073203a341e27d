// SPDX-License-Identifier: EPL-2.0

package analysis

import (
	"io"
	"path/filepath"

	"github.com/ik5/audmeter/audio"
	"github.com/ik5/audmeter/probe"
)

// Input is one item of a batch. Load is called once, on a worker.
type Input interface {
	// Name is the display name reported in every event.
	Name() string
	Load() (*probe.Result, error)
}

type fileInput struct {
	path     string
	name     string
	registry *audio.Registry
}

// FileInput decodes the file at path. An empty displayName uses the base name
// of path.
func FileInput(path, displayName string, registry *audio.Registry) Input {
	if displayName == "" {
		displayName = filepath.Base(path)
	}
	return &fileInput{path: path, name: displayName, registry: registry}
}

func (f *fileInput) Name() string { return f.name }

func (f *fileInput) Load() (*probe.Result, error) {
	return probe.File(f.registry, f.path, f.name)
}

type readerInput struct {
	name     string
	r        io.Reader
	size     int64
	registry *audio.Registry
}

// ReaderInput decodes r, for example an upload. A size <= 0 is replaced by
// the number of bytes read. r is closed after loading when it is an
// io.Closer.
func ReaderInput(name string, r io.Reader, size int64, registry *audio.Registry) Input {
	return &readerInput{name: name, r: r, size: size, registry: registry}
}

func (ri *readerInput) Name() string { return ri.name }

func (ri *readerInput) Load() (*probe.Result, error) {
	if c, ok := ri.r.(io.Closer); ok {
		defer c.Close()
	}
	return probe.Reader(ri.registry, ri.name, ri.r, ri.size)
}

type bufferInput struct {
	name string
	buf  *audio.Buffer
}

// BufferInput measures an already decoded buffer.
func BufferInput(name string, buf *audio.Buffer) Input {
	return &bufferInput{name: name, buf: buf}
}

func (b *bufferInput) Name() string { return b.name }

func (b *bufferInput) Load() (*probe.Result, error) {
	return probe.Buffer(b.name, b.buf)
}
