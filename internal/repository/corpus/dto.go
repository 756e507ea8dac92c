package corpus

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"

	"github.com/oy-619/teamrecall/internal/domain/document"
)

// Hash field layout for a stored message. __content and __vector follow the
// engine convention for FT.SEARCH; author and timestamp are TAG-indexed.
const (
	fieldContent   = "__content"
	fieldVector    = "__vector"
	fieldAuthor    = "author"
	fieldTimestamp = "timestamp"
)

// docID derives a stable identifier so re-ingesting the same transcript is
// idempotent.
func docID(doc document.Document) string {
	h := sha256.New()
	h.Write([]byte(doc.Content()))
	h.Write([]byte{0})
	h.Write([]byte(doc.Author()))
	h.Write([]byte{0})
	h.Write([]byte(doc.Timestamp()))
	return hex.EncodeToString(h.Sum(nil)[:16])
}

func docFields(doc document.Document, vector []float32) map[string]string {
	return map[string]string{
		fieldContent:   doc.Content(),
		fieldVector:    vectorToBytes(vector),
		fieldAuthor:    doc.Author(),
		fieldTimestamp: doc.Timestamp(),
	}
}

func docFromFields(fields map[string]string) document.Document {
	return document.New(fields[fieldContent], fields[fieldAuthor], fields[fieldTimestamp])
}

func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
