package manifest

import (
	"bytes"
	"encoding/json"

	"github.com/arthur-debert/packup/pkg/errors"
)

// RewriteWebRoot returns a copy of the manifest document with its webroot
// field set to newWebRoot, computed fresh regardless of the original
// value. Every other top-level field keeps its original bytes and
// position; a missing webroot field is appended at the end.
func RewriteWebRoot(raw []byte, newWebRoot string) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestLoad, "manifest is not valid JSON")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New(errors.ErrManifestLoad, "manifest is not a JSON object")
	}

	webrootValue, err := json.Marshal(newWebRoot)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode webroot value")
	}

	type field struct {
		key   string
		value json.RawMessage
	}
	var fields []field
	seen := false

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrManifestLoad, "manifest is not valid JSON")
		}
		key, _ := keyTok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, errors.Wrapf(err, errors.ErrManifestLoad,
				"manifest field %q has an unreadable value", key)
		}

		if key == "webroot" {
			value = webrootValue
			seen = true
		}
		fields = append(fields, field{key: key, value: value})
	}

	if !seen {
		fields = append(fields, field{key: "webroot", value: webrootValue})
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, f := range fields {
		keyBytes, _ := json.Marshal(f.key)
		buf.WriteString("  ")
		buf.Write(keyBytes)
		buf.WriteString(": ")
		buf.Write(f.value)
		if i < len(fields)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")

	return buf.Bytes(), nil
}
