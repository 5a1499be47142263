package dto

// BubbleCreateReq 私人泡泡创建请求，IsPrivate 缺省时按私密处理
type BubbleCreateReq struct {
	Name           string                 `json:"name" binding:"required"`
	IsPrivate      *bool                  `json:"isPrivate"`
	InvitedUserIDs []string               `json:"invitedUserIds"`
	ThemeData      map[string]interface{} `json:"themeData"`
	LayerID        string                 `json:"layerId"`
}
