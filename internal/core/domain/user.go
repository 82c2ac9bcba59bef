package domain

import "time"

const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

// Collection names, one credential collection per role. Usernames are unique
// within a collection, not across collections.
const (
	EmployeeCollection = "employee_users"
	AdminCollection    = "admin_users"
)

// Role parameterizes the auth stack for one side of the portal: where its
// credentials live, which secret signs its tokens, the username rule applied
// at signup, and the label used in client-facing messages. The employee and
// admin services are the same code driven by this table.
type Role struct {
	Name           string
	Label          string
	Collection     string
	Secret         string
	UsernameMinLen int
}

// EmployeeRole returns the employee-side descriptor signed with secret.
func EmployeeRole(secret string) Role {
	return Role{
		Name:           RoleEmployee,
		Label:          "User",
		Collection:     EmployeeCollection,
		Secret:         secret,
		UsernameMinLen: 3,
	}
}

// AdminRole returns the HR-admin-side descriptor signed with secret.
// Admin usernames carry no minimum length beyond being present.
func AdminRole(secret string) Role {
	return Role{
		Name:           RoleAdmin,
		Label:          "Admin",
		Collection:     AdminCollection,
		Secret:         secret,
		UsernameMinLen: 1,
	}
}

// User is a stored credential record. PasswordHash never leaves the server:
// it is excluded from JSON and only ever holds a bcrypt digest.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
