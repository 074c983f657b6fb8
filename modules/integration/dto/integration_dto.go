package dto

import "meetning-api/modules/integration/entity"

// IntegrationItem is one row of the integration catalog: every known app
// type with its connection status for the current user.
type IntegrationItem struct {
	Provider    entity.Provider `json:"provider"`
	Title       string          `json:"title"`
	AppType     entity.AppType  `json:"app_type"`
	Category    entity.Category `json:"category"`
	IsConnected bool            `json:"isConnected"`
}

type IntegrationListResponse struct {
	Message      string            `json:"message"`
	Integrations []IntegrationItem `json:"integrations"`
}

type CheckIntegrationResponse struct {
	Message     string `json:"message"`
	IsConnected bool   `json:"isConnected"`
}

type ConnectAppResponse struct {
	URL string `json:"url"`
}

type DisconnectResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}
