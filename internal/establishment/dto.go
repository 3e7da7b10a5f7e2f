package establishment

import "github.com/shiftwise/planning-api/internal"

type CreateEstablishmentDTO struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

func (d CreateEstablishmentDTO) Validate() error {
	if d.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type ListEstablishmentsResponse struct {
	Establishments []*Establishment `json:"establishments"`
}
