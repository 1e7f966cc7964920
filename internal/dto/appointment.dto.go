package dto

import "time"

// AppointmentDetail é a linha do agendamento já desnormalizada (nomes
// no lugar de chaves estrangeiras).
type AppointmentDetail struct {
	ID              uint      `json:"id"`
	Reference       string    `json:"reference"`
	ClientID        uint      `json:"client_id"`
	BarberProfileID uint      `json:"barber_id"`
	ServiceID       uint      `json:"service_id"`
	AppointmentTime time.Time `json:"appointment_time"`
	Status          string    `json:"status"`
	ServiceName     string    `json:"service_name"`
	ClientName      string    `json:"client_name"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type RoleCount struct {
	Role  string `json:"role"`
	Count int64  `json:"count"`
}

type Stats struct {
	AppointmentsByStatus []StatusCount `json:"appointments_by_status"`
	UsersByRole          []RoleCount   `json:"users_by_role"`
	CompletedRevenue     float64       `json:"completed_revenue"`
}
