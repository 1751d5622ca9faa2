package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is a jsonb-backed string array. A nil list maps to SQL NULL,
// which is how "no answer key, manual grading only" is represented on
// Question.CorrectAnswers.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src any) error {
	switch t := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(t, (*[]string)(l))
	case string:
		return json.Unmarshal([]byte(t), (*[]string)(l))
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
}

// Contains reports whether s is a member of the list.
func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}
