package domain

// Actor вызывающий пользователь (из JWT)
type Actor struct {
	UserID int64
	Role   Role
}

// IsAdmin администратор обходит все проверки владения
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// HasRole проверяет, что у пользователя одна из ролей
func (a Actor) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}

// Resource ресурс с владельцами.
// Для бронирования это клиент и владелец площадки, для заказа - покупатель и продавец
type Resource interface {
	OwnerIDs() []int64
}

// PublicResource ресурс, который может читать кто угодно (каталоги, отзывы)
type PublicResource interface {
	Resource
	IsPublic() bool
}

// Access права вызывающего на ресурс
type Access struct {
	Read  bool
	Write bool
}

// Authorize единая политика доступа для всех сервисов:
// - администратор может всё
// - владелец (любой из OwnerIDs) может читать и изменять
// - публичный ресурс могут читать все
func Authorize(actor Actor, res Resource) Access {
	if actor.IsAdmin() {
		return Access{Read: true, Write: true}
	}

	owner := IsOwner(actor, res)
	public := false
	if p, ok := res.(PublicResource); ok {
		public = p.IsPublic()
	}

	return Access{
		Read:  owner || public,
		Write: owner,
	}
}

// IsOwner проверяет, что пользователь входит в число владельцев ресурса
func IsOwner(actor Actor, res Resource) bool {
	if actor.UserID <= 0 {
		return false
	}
	for _, id := range res.OwnerIDs() {
		if id == actor.UserID {
			return true
		}
	}
	return false
}
