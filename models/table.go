package models

import "encoding/json"

type Table struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Capacity    int    `json:"capacity,omitempty"`
	IsTemporary bool   `json:"isTemporary,omitempty"`
}

// UnmarshalJSON accepts a populated table or a bare table id, which is how
// the backend sends an unpopulated reference.
func (t *Table) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		*t = Table{}
		return json.Unmarshal(data, &t.ID)
	}
	type plain Table
	return json.Unmarshal(data, (*plain)(t))
}

type TableForm struct {
	Name     string `json:"name" validate:"required"`
	Capacity int    `json:"capacity" validate:"gte=1"`
}
