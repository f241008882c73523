package catalog

// Master профиль мастера из CatalogService
type Master struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"` // IANA, например "Europe/Moscow"
	IsActive bool   `json:"is_active"`
}

// Service услуга мастера из CatalogService
type Service struct {
	ID              int64    `json:"id"`
	MasterID        int64    `json:"master_id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           *float64 `json:"price"`
	IsActive        bool     `json:"is_active"`
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
