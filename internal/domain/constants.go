package domain

// AnonymousCustomerKey ключ группы для записей без email клиента
const AnonymousCustomerKey = "anonymous"

// Форматы даты и времени записи, как их отдаёт бэкенд
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
	TimeFormat = "15:04:05"   // HH:MM:SS
)

// Параметры журнала распределений
const (
	DefaultAllocationListLimit = 50
	MaxAllocationListLimit     = 500
)
