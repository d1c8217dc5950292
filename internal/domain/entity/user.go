package entity

// Role foydalanuvchi roli
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// User joriy sessiya foydalanuvchisi
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// IsAdmin admin ekanligini tekshirish
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Theme interfeys mavzusi
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid ruxsat etilgan qiymatmi
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}
