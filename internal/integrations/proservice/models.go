package proservice

// Professional модель профессионала из ProService
type Professional struct {
	ID          int64   `json:"id"`
	DisplayName string  `json:"display_name"`
	HourlyRate  float64 `json:"hourly_rate"`
	IsActive    bool    `json:"is_active"`
}

// Service модель услуги профессионала из ProService
type Service struct {
	ID              int64    `json:"id"`
	ProfessionalID  int64    `json:"professional_id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           *float64 `json:"price,omitempty"`
}

// ErrorResponse модель ошибки от ProService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
