package models

import (
	"encoding/json"
	"strings"
	"time"
)

// BarberProfile é a extensão 1:1 de um User com role "barber".
type BarberProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Bio       string `gorm:"size:500" json:"bio"`
	Address   string `gorm:"size:255" json:"address"`
	Instagram string `gorm:"size:100" json:"instagram"`

	// Armazenado como CSV; sempre exposto como slice via Specialties().
	SpecialtiesCSV  string `gorm:"column:specialties;size:255" json:"-"`
	YearsExperience int    `json:"years_experience"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *BarberProfile) Specialties() []string {
	return NormalizeSpecialties(strings.Split(p.SpecialtiesCSV, ","))
}

func (p *BarberProfile) SetSpecialties(values []string) {
	p.SpecialtiesCSV = strings.Join(NormalizeSpecialties(values), ",")
}

// SpecialtyList aceita tanto array JSON quanto string CSV — clientes
// antigos mandavam "corte, barba" — e normaliza uma única vez, na
// borda do decode.
type SpecialtyList []string

func (s *SpecialtyList) UnmarshalJSON(data []byte) error {
	var asSlice []string
	if err := json.Unmarshal(data, &asSlice); err == nil {
		*s = NormalizeSpecialties(asSlice)
		return nil
	}

	var asString string
	if err := json.Unmarshal(data, &asString); err != nil {
		return err
	}

	*s = NormalizeSpecialties(strings.Split(asString, ","))
	return nil
}

// NormalizeSpecialties reduz qualquer entrada (CSV quebrado, array com
// espaços, duplicatas) a uma sequência canônica: trim, lowercase, sem
// vazios, sem repetição, ordem de chegada preservada.
func NormalizeSpecialties(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))

	for _, v := range values {
		s := strings.ToLower(strings.TrimSpace(v))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out
}
