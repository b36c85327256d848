package user

import (
	"encoding/json"
	"time"
)

// User is the profile shape returned by /auth/me and /users/*.
// The backend is loose about field naming (id vs _id, full_name vs name),
// so all aliases are resolved once at the decode boundary.
type User struct {
	ID         string
	Username   string
	Name       string
	Email      string
	Bio        string
	Department string
	College    string
	LinkedIn   string
	GitHub     string
	JoinedAt   time.Time
}

func (u *User) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID         string    `json:"id"`
		LegacyID   string    `json:"_id"`
		Username   string    `json:"username"`
		FullName   string    `json:"full_name"`
		Name       string    `json:"name"`
		Email      string    `json:"email"`
		Bio        string    `json:"bio"`
		Department string    `json:"department"`
		College    string    `json:"college"`
		LinkedIn   string    `json:"linkedin"`
		GitHub     string    `json:"github"`
		JoinedAt   time.Time `json:"joined_at"`
		CreatedAt  time.Time `json:"created_at"`
	}

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}

	u.ID = raw.ID
	if u.ID == "" {
		u.ID = raw.LegacyID
	}
	u.Username = raw.Username
	u.Name = raw.FullName
	if u.Name == "" {
		u.Name = raw.Name
	}
	u.Email = raw.Email
	u.Bio = raw.Bio
	u.Department = raw.Department
	u.College = raw.College
	u.LinkedIn = raw.LinkedIn
	u.GitHub = raw.GitHub
	u.JoinedAt = raw.JoinedAt
	if u.JoinedAt.IsZero() {
		u.JoinedAt = raw.CreatedAt
	}

	return nil
}

// Ref is a denormalized author snapshot embedded in posts and comments.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID       string `json:"id"`
		LegacyID string `json:"_id"`
		Name     string `json:"name"`
		FullName string `json:"full_name"`
		Username string `json:"username"`
	}

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}

	r.ID = raw.ID
	if r.ID == "" {
		r.ID = raw.LegacyID
	}
	r.Name = raw.Name
	if r.Name == "" {
		r.Name = raw.FullName
	}
	if r.Name == "" {
		r.Name = raw.Username
	}

	return nil
}

// Patch is a partial profile update. Nil fields are left untouched.
type Patch struct {
	Name       *string `json:"full_name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Bio        *string `json:"bio,omitempty"`
	Department *string `json:"department,omitempty"`
	College    *string `json:"college,omitempty"`
	LinkedIn   *string `json:"linkedin,omitempty"`
	GitHub     *string `json:"github,omitempty"`
}

func (p *Patch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.Department != nil {
		u.Department = *p.Department
	}
	if p.College != nil {
		u.College = *p.College
	}
	if p.LinkedIn != nil {
		u.LinkedIn = *p.LinkedIn
	}
	if p.GitHub != nil {
		u.GitHub = *p.GitHub
	}
}
