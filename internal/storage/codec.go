package storage

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// isoPrefix matches strings that look like an ISO-8601 timestamp.
var isoPrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`)

// Layouts tried, in order, when reviving a timestamp. Zone-less forms are
// read in local time.
var reviveLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// Encode serializes v as JSON. time.Time values are written as RFC 3339.
func Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Decode parses JSON, revives timestamps anywhere in the document and
// stores the result in out, which must be a pointer.
func Decode(data []byte, out any) error {
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	return decodeTree(Revive(tree), out)
}

func decodeTree(tree any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			revivedHook,
			mapstructure.TextUnmarshallerHookFunc(),
		),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(tree); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// Revived is a timestamp recovered from a JSON string. Raw keeps the
// original text so a string field decodes to exactly what was stored.
type Revived struct {
	Time time.Time
	Raw  string
}

// Revive walks a decoded JSON tree and replaces every string that looks
// like, and parses as, a timestamp with a Revived. Keys are not consulted.
func Revive(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = Revive(e)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = Revive(e)
		}
		return out
	case string:
		if t, ok := reviveTime(val); ok {
			return Revived{Time: t, Raw: val}
		}
		return val
	default:
		return v
	}
}

func reviveTime(s string) (time.Time, bool) {
	if !isoPrefix.MatchString(s) {
		return time.Time{}, false
	}
	for _, layout := range reviveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// revivedHook hands string fields the stored text and everything else
// the parsed time.
func revivedHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	r, ok := data.(Revived)
	if !ok {
		return data, nil
	}
	if to.Kind() == reflect.String {
		return r.Raw, nil
	}
	return r.Time, nil
}
