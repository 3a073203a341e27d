// SPDX-License-Identifier: EPL-2.0

package aiff_test

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ik5/audmeter/audio"
	"github.com/ik5/audmeter/formats/aiff"
)

// ExampleDecoder_Decode decodes an AIFF file into memory.
func ExampleDecoder_Decode() {
	f, err := os.Open("input.aiff")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	src, err := aiff.Decoder{}.Decode(f)
	if err != nil {
		log.Fatal(err)
	}
	defer src.Close()

	buf, err := audio.ReadAll(src)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Decoded AIFF: %d Hz, %d channels, %s, %v\n",
		buf.SampleRate, buf.Channels(), audio.SourceBitDepth(src), buf.Duration())
}

// ExampleDecoder_Decode_errorHandling shows error handling for invalid AIFF files.
func ExampleDecoder_Decode_errorHandling() {
	_, err := aiff.Decoder{}.Decode(bytes.NewReader([]byte("not an aiff file")))
	if errors.Is(err, aiff.ErrNotAiffFile) {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println("AIFF decoded successfully")
	// Output:
	// Error: not an AIFF file
}
