package dto

// SettingsDTO parámetros de la tienda.
type SettingsDTO struct {
	CompanyName      string `json:"company_name"`
	Address          string `json:"address"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	LowStockAlerts   bool   `json:"low_stock_alerts"`
	OutOfStockAlerts bool   `json:"out_of_stock_alerts"`
	WeeklyReport     bool   `json:"weekly_report"`
	// HasDeletePassword indica si las operaciones destructivas piden contraseña.
	HasDeletePassword bool `json:"has_delete_password"`
}

// DeletePasswordRequest cambia la contraseña de eliminación. New vacío la quita.
type DeletePasswordRequest struct {
	Current string `json:"current"`
	New     string `json:"new"`
}

// RecoveryQuestionRequest nueva pregunta de seguridad y su respuesta.
type RecoveryQuestionRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
