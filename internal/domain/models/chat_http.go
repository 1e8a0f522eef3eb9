package models

// ChatRequest is the inbound turn payload on the HTTP/websocket boundary.
type ChatRequest struct {
	Message string `json:"message" validate:"required,min=1,max=1000"`
	ChatID  string `json:"chat_id,omitempty" validate:"omitempty,max=128"`
	UserID  string `json:"user_id,omitempty" validate:"omitempty,max=128"`
}

// ChatResponse carries the rendered reply plus the side-channel chart.
type ChatResponse struct {
	Reply string       `json:"reply"`
	Chart *ChartSeries `json:"chart,omitempty"`
}
