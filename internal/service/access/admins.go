package access

// Admins список администраторов кафе (admin.user_ids в конфигурации)
type Admins struct {
	ids map[string]struct{}
}

func NewAdmins(userIDs []string) *Admins {
	ids := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		if id != "" {
			ids[id] = struct{}{}
		}
	}
	return &Admins{ids: ids}
}

// IsAdmin проверяет, что пользователь является администратором
func (a *Admins) IsAdmin(userID string) bool {
	if userID == "" {
		return false
	}
	_, ok := a.ids[userID]
	return ok
}
