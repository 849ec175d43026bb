package domain

import "github.com/google/uuid"

// Profile профиль пользователя
type Profile struct {
	ID   uuid.UUID
	Name string
	Role string
}

// IsAdmin true для администратора
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
