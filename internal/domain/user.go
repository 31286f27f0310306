package domain

import "time"

// Role роль пользователя платформы
type Role string

const (
	RoleAdmin             Role = "ADMIN"
	RoleClient            Role = "CLIENT"
	RoleMusicProfessional Role = "MUSIC_PROFESSIONAL"
	RoleStudioOwner       Role = "STUDIO_OWNER"
	RoleBusiness          Role = "BUSINESS"
)

// IsValid проверяет, что роль известна
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleClient, RoleMusicProfessional, RoleStudioOwner, RoleBusiness:
		return true
	}
	return false
}

// User пользователь. Создается сервисом авторизации, здесь только читается
type User struct {
	ID        int64
	Email     string
	Name      string
	Role      Role
	CreatedAt time.Time
}
