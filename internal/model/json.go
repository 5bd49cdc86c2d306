package model

import "encoding/json"

// jsonMarshal is split out of record.go so the Record.MarshalJSON
// implementation does not recurse through encoding/json on itself.
func jsonMarshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}
