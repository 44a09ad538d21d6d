package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
)

// orderedObject is a decoded JSON object that remembers key order.
type orderedObject struct {
	keys   []string
	values map[string]interface{}
}

// asObject accepts both decoded shapes of a JSON object. Plain maps have no
// order, so their keys are sorted to keep output deterministic.
func asObject(v interface{}) (orderedObject, bool) {
	switch t := v.(type) {
	case orderedObject:
		return t, true
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return orderedObject{keys: keys, values: t}, true
	case map[string]string:
		out := orderedObject{values: map[string]interface{}{}}
		for k, s := range t {
			out.keys = append(out.keys, k)
			out.values[k] = s
		}
		sort.Strings(out.keys)
		return out, true
	}
	return orderedObject{}, false
}

// decodeOrdered decodes a JSON document into orderedObject / []interface{} /
// scalar values.
func decodeOrdered(b []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		obj := orderedObject{values: map[string]interface{}{}}
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := kt.(string)
			if !ok {
				return nil, fmt.Errorf("object key is %T", kt)
			}
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			if _, dup := obj.values[key]; !dup {
				obj.keys = append(obj.keys, key)
			}
			obj.values[key] = val
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []interface{}{}
		for dec.More() {
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	}
	return nil, fmt.Errorf("unexpected delimiter %q", delim)
}
