package domain

// Правила ценообразования
const (
	// MonthlyDiscountThresholdDays минимальная длина пребывания (в днях), с которой действует месячная скидка
	MonthlyDiscountThresholdDays = 28
	MaxMonthlyDiscountPercent    = 90
	MinStayDays                  = 2
)

// Пагинация списков бронирований
const (
	DefaultPageSize = 20
	DefaultPage     = 1
	// MaxPage верхняя граница номера страницы, offset = (page-1)*DefaultPageSize не переполняется
	MaxPage = 1_000_000
)

// Окно по умолчанию для запроса занятых дат офиса
const (
	DefaultAvailabilityWindowDays = 90
	MaxAvailabilityWindowDays     = 366
)

// DateFormat формат календарной даты в API и логах
const DateFormat = "2006-01-02"

// Имена полей, к которым привязываются ошибки валидации
const (
	FieldOfficeID    = "office_id"
	FieldStartDate   = "start_date"
	FieldEndDate     = "end_date"
	FieldReservation = "reservation"
	FieldStatus      = "status"
	FieldFromDate    = "from_date"
	FieldToDate      = "to_date"
	FieldPage        = "page"
)

// Разрешения, проверяемые через UserService
const (
	PermissionReservationIndex  = "reservation.index"
	PermissionReservationStore  = "reservation.store"
	PermissionReservationCancel = "reservation.cancel"
)
