package request

// CreateNewGroupRequest 创建联系人分组请求
// 提交的关系 id 会被分类处理：入组、顺带拉黑、顺带删除
// 使用位置:
//   - internal/handler/group_handler.go: CreateNewGroupHandler
//   - internal/service/group/service.go: CreateNewGroup
type CreateNewGroupRequest struct {
	Title string `json:"title" binding:"required,max=50"`
	// FileIds 建组同时归入分组的关系 uuid
	FileIds []string `json:"file_ids"`
	// BlockIds 建组同时拉黑的关系 uuid
	BlockIds []string `json:"block_ids"`
	// DeleteIds 建组同时删除的关系 uuid
	DeleteIds []string `json:"delete_ids"`
}
