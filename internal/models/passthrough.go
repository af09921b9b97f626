package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// extraFields returns the members of the JSON object data that are not in
// known, or nil when there are none.
func extraFields(data []byte, known ...string) (datatypes.JSON, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(fields, k)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	out, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(out), nil
}

// mergeFields lays the object encoded in own over extra. Members of own win.
func mergeFields(extra datatypes.JSON, own []byte) ([]byte, error) {
	if len(extra) == 0 {
		return own, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(extra, &fields); err != nil || fields == nil {
		return own, nil
	}
	var ownFields map[string]json.RawMessage
	if err := json.Unmarshal(own, &ownFields); err != nil {
		return nil, err
	}
	for k, v := range ownFields {
		fields[k] = v
	}
	return json.Marshal(fields)
}
