// SPDX-License-Identifier: EPL-2.0

package flac_test

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ik5/audmeter/audio"
	"github.com/ik5/audmeter/formats/flac"
)

// ExampleDecoder_Decode decodes a whole FLAC file into memory.
func ExampleDecoder_Decode() {
	f, err := os.Open("input.flac")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	src, err := flac.Decoder{}.Decode(f)
	if err != nil {
		log.Fatal(err)
	}
	defer src.Close()

	buf, err := audio.ReadAll(src)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Decoded FLAC: %d Hz, %d channels, %s, %v\n",
		buf.SampleRate, buf.Channels(), audio.SourceBitDepth(src), buf.Duration())
}

// ExampleDecoder_Decode_errorHandling shows how invalid input is reported.
func ExampleDecoder_Decode_errorHandling() {
	_, err := flac.Decoder{}.Decode(bytes.NewReader([]byte("not audio")))
	fmt.Println(errors.Is(err, flac.ErrNotFlacFile))
	// Output:
	// true
}
