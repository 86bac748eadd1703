package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit int `query:"limit"`
	Skip  int `query:"skip"`
}

// DefaultPage aplica valores por defecto si Limit/Skip son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 50
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Skip < 0 {
		p.Skip = 0
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusResponse cuerpo de respuesta para operaciones sin payload.
type StatusResponse struct {
	Message string `json:"message"`
}

// CreatedResponse cuerpo de respuesta para creaciones (devuelve el id nuevo).
type CreatedResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}
