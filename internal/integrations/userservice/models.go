package userservice

// Permissions набор разрешений пользователя из UserService
type Permissions struct {
	UserID      int64    `json:"user_id"`
	Permissions []string `json:"permissions"`
}

// Has проверяет наличие разрешения
func (p *Permissions) Has(permission string) bool {
	for _, granted := range p.Permissions {
		if granted == permission {
			return true
		}
	}
	return false
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
