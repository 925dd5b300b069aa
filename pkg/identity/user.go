package identity

import "encoding/json"

// User is a user record returned by the identity API. The schema is owned by
// the service, so every field is kept in Data.
type User struct {
	ID   string
	Data map[string]any
}

func (u *User) UnmarshalJSON(b []byte) error {
	var data map[string]any
	if err := json.Unmarshal(b, &data); err != nil {
		return err
	}
	if data == nil {
		data = map[string]any{}
	}

	u.Data = data
	for _, key := range []string{"id", "user_id", "uuid"} {
		if id, ok := data[key].(string); ok && id != "" {
			u.ID = id
			break
		}
	}
	return nil
}

// Scalars returns the string, number and bool fields other than the id,
// which are the ones that fit in session attributes.
func (u *User) Scalars() map[string]any {
	out := make(map[string]any, len(u.Data))
	for k, v := range u.Data {
		switch k {
		case "id", "user_id", "uuid":
			continue
		}
		switch v.(type) {
		case string, bool, float64:
			out[k] = v
		}
	}
	return out
}
