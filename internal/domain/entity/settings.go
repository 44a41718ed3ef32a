package entity

import "time"

// Settings parámetros generales de la tienda.
type Settings struct {
	CompanyName      string `json:"companyName"`
	Address          string `json:"address"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	LowStockAlerts   bool   `json:"lowStockAlerts"`
	OutOfStockAlerts bool   `json:"outOfStockAlerts"`
	WeeklyReport     bool   `json:"weeklyReport"`
}

// DefaultSettings valores iniciales.
func DefaultSettings() Settings {
	return Settings{
		CompanyName:      "Ma Boutique",
		LowStockAlerts:   true,
		OutOfStockAlerts: true,
	}
}

// RecoveryQuestion pregunta de seguridad para restablecer el código del administrador.
type RecoveryQuestion struct {
	Question   string `json:"question"`
	AnswerHash string `json:"answerHash"`
}

// DefaultRecoveryQuestion pregunta instalada en el primer arranque.
const DefaultRecoveryQuestion = "Quel est le nom de votre première entreprise ?"

// Session usuario con la última sesión abierta (clave app_current_user).
type Session struct {
	User     User      `json:"user"`
	LoggedAt time.Time `json:"loggedAt"`
}
