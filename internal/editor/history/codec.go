package history

import (
	"fmt"

	"floorplanner/internal/editor/document"

	"github.com/fxamacker/cbor/v2"
)

var (
	encMode = mustEncMode()
	decMode = mustDecMode()
)

func mustEncMode() cbor.EncMode {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("history: cbor encoder: %v", err))
	}
	return em
}

func mustDecMode() cbor.DecMode {
	dm, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("history: cbor decoder: %v", err))
	}
	return dm
}

// Encode сериализует документ в канонический CBOR.
// Equal documents always produce equal bytes.
func Encode(doc document.Document) ([]byte, error) {
	data, err := encMode.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// Decode восстанавливает документ из снимка.
func Decode(data []byte) (document.Document, error) {
	var doc document.Document
	if err := decMode.Unmarshal(data, &doc); err != nil {
		return document.Document{}, fmt.Errorf("%w: snapshot: %v", document.ErrMalformed, err)
	}
	return doc, nil
}
