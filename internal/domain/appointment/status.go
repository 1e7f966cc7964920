package appointment

import "github.com/sharpfade/barber-booking/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
	StatusNoShow    Status = "no-show"
)

func InitialStatus() Status {
	return StatusPending
}

// ParseStatus valida a entrada contra o enum fixo. Qualquer outro valor
// é rejeitado antes de abrir transação.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCanceled, StatusNoShow:
		return Status(raw), nil
	}
	return "", httperr.ErrBusiness("invalid_status")
}

// NotifiesOnEntry diz se a entrada nesse status dispara notificações.
// Hoje apenas "confirmed" notifica; canceled/completed poderiam, mas é
// decisão de produto em aberto.
func NotifiesOnEntry(s Status) bool {
	return s == StatusConfirmed
}

// CanBeCanceledByClient define quais estados o próprio cliente pode
// cancelar.
func CanBeCanceledByClient(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}
