package domain

// ApprovalStatus статус модерации офиса
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
)

// Office офис (коворкинг), который хост сдаёт посуточно.
// Сервис бронирований только читает офисы, CRUD живёт в другом месте.
type Office struct {
	ID              int64
	UserID          int64 // владелец (хост)
	Title           string
	PricePerDay     int64 // в минимальных единицах валюты
	MonthlyDiscount int   // процент, 0..90
	IsHidden        bool
	ApprovalStatus  ApprovalStatus
}

// IsBookable офис виден и одобрен администратором
func (o *Office) IsBookable() bool {
	return !o.IsHidden && o.ApprovalStatus == ApprovalApproved
}

// IsOwnedBy проверяет, что офис принадлежит пользователю
func (o *Office) IsOwnedBy(userID int64) bool {
	return o.UserID == userID
}
