// SPDX-License-Identifier: EPL-2.0

package audmeter

import (
	"context"

	"github.com/ik5/audmeter/analysis"
	"github.com/ik5/audmeter/audio"
	"github.com/ik5/audmeter/formats/aiff"
	"github.com/ik5/audmeter/formats/flac"
	"github.com/ik5/audmeter/formats/mp3"
	"github.com/ik5/audmeter/formats/vorbis"
	"github.com/ik5/audmeter/formats/wav"
)

// DefaultRegistry returns a registry with every bundled decoder, keyed by
// the usual file extensions.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()

	for _, f := range []string{"wav", "wave"} {
		reg.Register(f, wav.Decoder{})
	}
	for _, f := range []string{"aiff", "aif"} {
		reg.Register(f, aiff.Decoder{})
	}
	reg.Register("mp3", mp3.Decoder{})
	for _, f := range []string{"ogg", "oga"} {
		reg.Register(f, vorbis.Decoder{})
	}
	reg.Register("flac", flac.Decoder{})

	return reg
}

// AnalyzeFiles measures the files at paths with DefaultRegistry. Events are
// reported under the base name of each path.
func AnalyzeFiles(ctx context.Context, cfg analysis.Config, paths []string, opts ...analysis.Option) (*analysis.Stream, error) {
	p, err := analysis.New(cfg, opts...)
	if err != nil {
		return nil, err
	}

	reg := DefaultRegistry()
	inputs := make([]analysis.Input, len(paths))
	for i, path := range paths {
		inputs[i] = analysis.FileInput(path, "", reg)
	}

	return p.Analyze(ctx, inputs), nil
}
