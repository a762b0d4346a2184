package capture

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Records are written by a single FileWriter per session, so encoding is
// deterministic and decoding rejects anything a writer would never emit.
var (
	recordEncMode = mustEncMode(cbor.EncOptions{
		Sort:        cbor.SortCoreDeterministic,
		IndefLength: cbor.IndefLengthForbidden,
		Time:        cbor.TimeRFC3339Nano,
	})
	recordDecMode = mustDecMode(cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	})
)

func mustEncMode(opts cbor.EncOptions) cbor.EncMode {
	em, err := opts.EncMode()
	if err != nil {
		panic("capture: record encoder options: " + err.Error())
	}
	return em
}

func mustDecMode(opts cbor.DecOptions) cbor.DecMode {
	dm, err := opts.DecMode()
	if err != nil {
		panic("capture: record decoder options: " + err.Error())
	}
	return dm
}

// EncodeRecord returns the CBOR form of r as stored in capture files.
func EncodeRecord(r Record) ([]byte, error) {
	return recordEncMode.Marshal(r)
}

// DecodeRecord parses one record in capture file form.
func DecodeRecord(data []byte) (Record, error) {
	var r Record
	if err := recordDecMode.Unmarshal(data, &r); err != nil {
		return Record{}, err
	}
	return r, nil
}

func newEncoder(w io.Writer) *cbor.Encoder {
	return recordEncMode.NewEncoder(w)
}

func newDecoder(r io.Reader) *cbor.Decoder {
	return recordDecMode.NewDecoder(r)
}
