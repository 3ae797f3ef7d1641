package main

import (
	"bytes"
	"fmt"
	"os"

	"objkit/internal/elf32"
	"objkit/internal/hexrec"
	"objkit/internal/image"
)

func isObjectFile(data []byte) bool {
	return len(data) >= 4 && [4]byte(data[:4]) == elf32.Magic
}

// openLoaded opens an object file and walks it all the way to the
// sections-loaded state.
func openLoaded(path string) (*elf32.Reader, error) {
	r, err := elf32.Open(path)
	if err != nil {
		return nil, err
	}
	for _, step := range []func() error{
		r.ReadProgramHeaders,
		r.ReadSectionHeaders,
		r.LoadSections,
	} {
		if err := step(); err != nil {
			r.Close()
			return nil, err
		}
	}
	return r, nil
}

// loadImage builds an address-space image from path. Object files are
// recognized by their magic; anything else goes through the hex record
// codecs, picked by name or probed when format is empty.
func loadImage(path, format string) (*image.Image, []hexrec.Diag, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	if isObjectFile(data) {
		r, err := openLoaded(path)
		if err != nil {
			return nil, nil, err
		}
		defer r.Close()
		img, err := r.Image(!flagNoJoin)
		return img, nil, err
	}

	var codec hexrec.Codec
	if format != "" {
		codec, err = hexrec.Lookup(format)
		if err != nil {
			return nil, nil, err
		}
	} else {
		var ok bool
		if codec, ok = hexrec.Detect(data); !ok {
			return nil, nil, fmt.Errorf("%s: no codec recognizes this file; use --format", path)
		}
	}

	res, err := codec.Decode(bytes.NewReader(data), hexrec.DecodeOptions{
		Policy: decodePolicy(),
		Join:   !flagNoJoin,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return res.Image, res.Diags, nil
}

func printDiags(diags []hexrec.Diag) {
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "warning: %s\n", d)
	}
}
