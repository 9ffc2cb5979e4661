package bytecode

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var cborEnc cbor.EncMode

func init() {
	var err error
	cborEnc, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("bytecode: failed to create CBOR encoder: %v", err))
	}
}

// MarshalCBOR encodes an Image as canonical CBOR. Identical images produce
// identical bytes.
func MarshalCBOR(img *Image) ([]byte, error) {
	data, err := cborEnc.Marshal(stateFromImage(img))
	if err != nil {
		return nil, fmt.Errorf("bytecode: marshal image: %w", err)
	}
	return data, nil
}

// UnmarshalCBOR decodes an Image from CBOR.
func UnmarshalCBOR(data []byte) (*Image, error) {
	var state imageState
	if err := cbor.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("bytecode: unmarshal image: %w", err)
	}
	return imageFromState(&state)
}
