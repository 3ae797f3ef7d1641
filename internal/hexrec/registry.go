package hexrec

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrNoCodec     = errors.New("hexrec: no such codec")
	ErrCodecExists = errors.New("hexrec: codec already registered")
)

var codecs = map[string]Codec{}

func init() {
	for _, c := range []Codec{
		newSRecCodec(),
		newIHexCodec(),
		newMosTecCodec(),
		newEmon52Codec(),
	} {
		if err := Register(c); err != nil {
			panic(err)
		}
	}
}

// Register adds a codec to the registry under its name.
func Register(c Codec) error {
	if _, ok := codecs[c.Name()]; ok {
		return fmt.Errorf("%w: %s", ErrCodecExists, c.Name())
	}
	codecs[c.Name()] = c
	return nil
}

// Lookup returns the codec registered under name.
func Lookup(name string) (Codec, error) {
	c, ok := codecs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoCodec, name)
	}
	return c, nil
}

// Formats returns the registered format names, sorted.
func Formats() []string {
	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Detect probes the registered codecs against the first lines of data
// and returns the first match.
func Detect(data []byte) (Codec, bool) {
	for _, name := range Formats() {
		if c := codecs[name]; c.Probe(data) {
			return c, true
		}
	}
	return nil, false
}
