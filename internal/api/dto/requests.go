package dto

// RegisterTokenRequest registers the push token of a device.
type RegisterTokenRequest struct {
	Token    string `json:"token" validate:"required"`
	Platform string `json:"platform" validate:"required,oneof=ios android web"`
}

// ListNotificationsQuery pages through the inbox.
type ListNotificationsQuery struct {
	UnreadOnly bool `form:"unread_only"`
	Limit      int  `form:"limit" validate:"min=0,max=100"`
	Offset     int  `form:"offset" validate:"min=0"`
}
