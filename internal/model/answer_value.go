package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// AnswerValue is the value a candidate submits for a single question.
// It is either a scalar (free text / single choice) or a multi-choice
// selection, and is persisted as jsonb in the same shape it arrives:
// a bare JSON scalar or a JSON array of strings.
type AnswerValue struct {
	Scalar  string
	Multi   []string
	IsMulti bool
}

// ScalarValue builds a single-valued answer.
func ScalarValue(s string) AnswerValue {
	return AnswerValue{Scalar: s}
}

// MultiValue builds a multi-choice answer.
func MultiValue(vs ...string) AnswerValue {
	return AnswerValue{Multi: vs, IsMulti: true}
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	if v.IsMulti {
		if v.Multi == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.Multi)
	}
	return json.Marshal(v.Scalar)
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case []any:
		v.IsMulti = true
		v.Multi = make([]string, len(t))
		for i, e := range t {
			v.Multi[i] = fmt.Sprint(e)
		}
	case nil:
		*v = AnswerValue{}
	default:
		// Numbers and booleans are kept in their string form so the
		// scoring rule can compare them against the answer key.
		v.IsMulti = false
		v.Scalar = fmt.Sprint(t)
	}
	return nil
}

// Value implements driver.Valuer for the jsonb column.
func (v AnswerValue) Value() (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for the jsonb column.
func (v *AnswerValue) Scan(src any) error {
	switch t := src.(type) {
	case nil:
		*v = AnswerValue{}
		return nil
	case []byte:
		return v.UnmarshalJSON(t)
	case string:
		return v.UnmarshalJSON([]byte(t))
	default:
		return fmt.Errorf("cannot scan %T into AnswerValue", src)
	}
}
