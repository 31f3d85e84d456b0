// Package decode turns a raw disco or embox payload into either a structured
// record list or a single scalar fallback value. Decoding never fails.
package decode

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/emergence/internal/schemas"
	"github.com/jonathan/emergence/internal/types"
)

// Kind tags which interpretation a Result carries.
type Kind int

const (
	// KindRecords means the payload matched the structured list schema.
	KindRecords Kind = iota + 1
	// KindScalar means the payload was treated as a bare string.
	KindScalar
)

func (k Kind) String() string {
	switch k {
	case KindRecords:
		return "records"
	case KindScalar:
		return "scalar"
	default:
		return "unknown"
	}
}

// Result holds exactly one of Records or Scalar, selected by Kind.
type Result struct {
	Kind    Kind
	Records []types.Record
	Scalar  string
}

// Records builds a structured Result.
func Records(records []types.Record) Result {
	return Result{Kind: KindRecords, Records: records}
}

// Scalar builds a fallback Result.
func Scalar(value string) Result {
	return Result{Kind: KindScalar, Scalar: value}
}

// IsRecords reports whether r is the structured variant.
func (r Result) IsRecords() bool {
	return r.Kind == KindRecords
}

// Decode parses body strictly as a record list and falls back to a scalar
// string when the body does not match the schema.
func Decode(body []byte) Result {
	if list, ok := parseRecordList(body); ok {
		return Records(list.Records)
	}
	return Scalar(StripQuotes(string(body)))
}

func parseRecordList(body []byte) (types.RecordList, bool) {
	var list types.RecordList
	if err := schemas.ValidateEmbryoList(body); err != nil {
		return list, false
	}
	if err := json.Unmarshal(body, &list); err != nil {
		return list, false
	}
	return list, true
}

// StripQuotes trims surrounding whitespace and then removes one enclosing
// pair of double quotes. A quote without its partner on the other end is
// kept, so at most one leading and one trailing quote are ever removed.
func StripQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
