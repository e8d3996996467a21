package request

// DeleteGroupRequest 删除联系人分组请求
// 使用位置:
//   - internal/handler/group_handler.go: DeleteGroupHandler
//   - internal/service/group/service.go: DeleteGroup
type DeleteGroupRequest struct {
	Uuid string `json:"uuid" binding:"required"`
}
