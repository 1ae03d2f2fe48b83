package jsondoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Indent is the indentation unit for pretty-printed documents, matching the
// historical on-disk format of config and preset files.
const Indent = "    "

// Marshal serializes the object pretty-printed with 4-space indentation and
// a trailing newline, the format user-facing config files are written in.
func (o *Object) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, o, ""); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// WriteFile serializes the object and writes it to path with mode 0o644.
func (o *Object) WriteFile(path string) error {
	data, err := o.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func writeValue(buf *bytes.Buffer, v any, prefix string) error {
	switch val := v.(type) {
	case *Object:
		return writeObject(buf, val, prefix)
	case []any:
		return writeArray(buf, val, prefix)
	case string:
		return writeScalar(buf, val)
	case json.Number:
		buf.WriteString(val.String())
		return nil
	case bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case nil:
		buf.WriteString("null")
		return nil
	default:
		return fmt.Errorf("marshal: unsupported value type %T", v)
	}
}

func writeObject(buf *bytes.Buffer, o *Object, prefix string) error {
	if o.Len() == 0 {
		buf.WriteString("{}")
		return nil
	}
	inner := prefix + Indent
	buf.WriteString("{\n")
	for i, key := range o.keys {
		buf.WriteString(inner)
		if err := writeScalar(buf, key); err != nil {
			return err
		}
		buf.WriteString(": ")
		if err := writeValue(buf, o.values[key], inner); err != nil {
			return err
		}
		if i < len(o.keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(prefix)
	buf.WriteByte('}')
	return nil
}

func writeArray(buf *bytes.Buffer, arr []any, prefix string) error {
	if len(arr) == 0 {
		buf.WriteString("[]")
		return nil
	}
	inner := prefix + Indent
	buf.WriteString("[\n")
	for i, elem := range arr {
		buf.WriteString(inner)
		if err := writeValue(buf, elem, inner); err != nil {
			return err
		}
		if i < len(arr)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(prefix)
	buf.WriteByte(']')
	return nil
}

func writeScalar(buf *bytes.Buffer, s string) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}
