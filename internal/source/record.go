// ABOUTME: NDJSON records decoded with easyjson's lexer, plus display rendering of field values
// ABOUTME: Every record must be a JSON object carrying all requested keys

package source

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
)

// Record is one NDJSON line. Raw is the line as read.
type Record struct {
	Raw    string
	fields map[string]any
}

// ParseRecord decodes line as a JSON object.
func ParseRecord(line string) (Record, error) {
	l := jlexer.Lexer{Data: []byte(line)}
	v := l.Interface()
	l.Consumed()
	if err := l.Error(); err != nil {
		return Record{}, fmt.Errorf("cannot parse input %q as JSON", line)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return Record{}, fmt.Errorf("%s is not object", line)
	}
	return Record{Raw: line, fields: obj}, nil
}

// ReadRecords parses lines as NDJSON and checks each record has every key.
func ReadRecords(lines []string, keys []string) ([]Record, error) {
	recs := make([]Record, 0, len(lines))
	for _, line := range lines {
		rec, err := ParseRecord(line)
		if err != nil {
			return nil, err
		}
		for _, k := range keys {
			if !rec.Has(k) {
				return nil, fmt.Errorf("object %s doesn't have key '%s'", line, k)
			}
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Has reports whether the record has key.
func (r Record) Has(key string) bool {
	_, ok := r.fields[key]
	return ok
}

// Field renders the value under key for display: strings as-is, numbers in
// shortest decimal form, nested values as compact JSON with sorted keys.
func (r Record) Field(key string) string {
	v, ok := r.fields[key]
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	w := jwriter.Writer{NoEscapeHTML: true}
	encode(&w, v)
	out, _ := w.BuildBytes()
	return string(out)
}

// Fields renders the values under keys, in order.
func (r Record) Fields(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = r.Field(k)
	}
	return out
}

func encode(w *jwriter.Writer, v any) {
	switch v := v.(type) {
	case nil:
		w.RawString("null")
	case bool:
		w.Bool(v)
	case string:
		w.String(v)
	case float64:
		w.RawString(strconv.FormatFloat(v, 'f', -1, 64))
	case []any:
		w.RawByte('[')
		for i, e := range v {
			if i > 0 {
				w.RawByte(',')
			}
			encode(w, e)
		}
		w.RawByte(']')
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		w.RawByte('{')
		for i, k := range keys {
			if i > 0 {
				w.RawByte(',')
			}
			w.String(k)
			w.RawByte(':')
			encode(w, v[k])
		}
		w.RawByte('}')
	default:
		w.RawString(fmt.Sprint(v))
	}
}
