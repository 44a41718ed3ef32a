package entity

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User representa un usuario de la tienda. El código de acceso se guarda aparte (UserCode).
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// IsAdmin indica si el usuario tiene rol administrador.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// UserCode hash bcrypt del código de acceso numérico de un usuario.
type UserCode struct {
	UserID   string `json:"userId"`
	CodeHash string `json:"codeHash"`
}
