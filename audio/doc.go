// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample-level building blocks shared by the
// decoders and the meters.
//
// # Source
//
// Decoders produce a Source, a pull stream of interleaved float32 samples
// normalised to [-1, 1]:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// ReadSamples returns the number of float32 values written, not frames.
// io.EOF marks the end of the stream and may come together with the last
// samples.
//
// # Buffer
//
// The meters work on a Buffer, a channel-major float64 copy of the whole
// signal. ReadAll drains a Source into one:
//
//	buf, err := audio.ReadAll(src)
//
// A Buffer is not modified once built. Slice returns views that share its
// storage and Source turns it back into a stream.
//
// # Oversampling
//
// Oversampler raises the sample rate of a Source by an integer factor with a
// polyphase Kaiser windowed sinc, which is what true-peak metering needs.
//
// # Registry
//
// A Registry maps format keys to decoders. Keys are case-insensitive and a
// leading dot is ignored, so file extensions can be passed as they are:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, ok := registry.Get(".WAV")
//
// BitDepth records how samples were stored before decoding. Sources that
// know it implement BitDepthReporter.
package audio
