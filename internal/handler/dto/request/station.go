package request

type SetStationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active maintenance"`
}
