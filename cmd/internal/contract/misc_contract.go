package contract

const HealthyMessage = "Healthy"

type HealthResponse struct {
	Message string `json:"message"`
}
