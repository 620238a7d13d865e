package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Role роль пользователя. Бэкенд присылает её строкой ("EMPLOYEE")
// или объектом ({"name": "EMPLOYEE"}); оба варианта декодируются одинаково
type Role struct {
	Name string
}

// UnmarshalJSON принимает null, строку или объект с полем name
func (r *Role) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		r.Name = ""
		return nil
	}

	if data[0] == '"' {
		return json.Unmarshal(data, &r.Name)
	}

	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("role: unsupported shape: %w", err)
	}
	r.Name = obj.Name
	return nil
}

// MarshalJSON всегда отдаёт роль строкой, пустую роль как null
func (r Role) MarshalJSON() ([]byte, error) {
	if r.Name == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.Name)
}

func (r Role) String() string {
	return r.Name
}

// User сотрудник, которому можно назначить запись
type User struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Enabled  *bool  `json:"enabled,omitempty"`
}

// DisplayName имя для уведомлений: полное имя, иначе email
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}
