// SPDX-License-Identifier: EPL-2.0

package mp3_test

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ik5/audmeter/audio"
	"github.com/ik5/audmeter/formats/mp3"
)

// ExampleDecoder_Decode decodes a whole MP3 file into memory.
func ExampleDecoder_Decode() {
	f, err := os.Open("input.mp3")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	src, err := mp3.Decoder{}.Decode(f)
	if err != nil {
		log.Fatal(err)
	}
	defer src.Close()

	buf, err := audio.ReadAll(src)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Decoded MP3: %d Hz, %d channels, %v\n",
		buf.SampleRate, buf.Channels(), buf.Duration())
}

// ExampleDecoder_Decode_errorHandling shows how invalid input is reported.
func ExampleDecoder_Decode_errorHandling() {
	_, err := mp3.Decoder{}.Decode(bytes.NewReader([]byte("not audio")))
	fmt.Println(errors.Is(err, mp3.ErrNotMP3File))
	// Output:
	// true
}
