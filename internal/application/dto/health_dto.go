package dto

import "time"

// HealthTimestampLayout: ISO-8601 в UTC с миллисекундами.
const HealthTimestampLayout = "2006-01-02T15:04:05.000Z"

// HealthDTO: тело ответа GET /health
type HealthDTO struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewHealthDTO создает ответ health check на момент now
func NewHealthDTO(now time.Time) *HealthDTO {
	return &HealthDTO{
		Status:    "ok",
		Timestamp: now.UTC().Format(HealthTimestampLayout),
	}
}
