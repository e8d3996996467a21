// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层调用
// 接口设计遵循依赖倒置原则，便于测试和解耦
package service

import (
	"huoban_contact_server/internal/dto/request"
	"huoban_contact_server/internal/dto/respond"
)

// UserService 用户业务接口
// 处理注册、登录、令牌刷新等认证相关功能
type UserService interface {
	// Register 用户注册
	Register(req request.RegisterRequest) error
	// Login 密码登录
	Login(req request.LoginRequest) (*respond.LoginRespond, error)
	// SmsLogin 短信验证码登录
	SmsLogin(req request.SmsLoginRequest) (*respond.LoginRespond, error)
	// SendSmsCode 发送短信验证码
	SendSmsCode(telephone string) error
	// RefreshToken 刷新令牌对
	RefreshToken(refreshToken string) (*respond.RefreshTokenRespond, error)
}

// RelationshipService 关系状态机业务接口
// 双侧状态的所有变更都经由本接口
type RelationshipService interface {
	// CreateRelationships 批量发起好友邀请（用户名或邮箱）
	CreateRelationships(username string, req request.CreateRelationshipsRequest) (*respond.CreateRelationshipsRespond, error)
	// UpdateRelationships 批量更新己方关系状态
	UpdateRelationships(username string, req request.UpdateRelationshipsRequest) (*respond.UpdateRelationshipsRespond, error)
	// SetType 更新单条关系的己方状态（状态机核心）
	SetType(username, relationshipUuid string, newType int8) (*respond.RelationshipRespond, error)
}

// GroupService 联系人分组业务接口
type GroupService interface {
	// CreateNewGroup 创建分组，提交的关系 id 分类处理
	CreateNewGroup(username string, req request.CreateNewGroupRequest) (*respond.CreateNewGroupRespond, error)
	// UpdateGroup 更新分组标题与成员排序（三阶段调和）
	UpdateGroup(username string, req request.UpdateGroupRequest) (*respond.GroupRespond, error)
	// DeleteGroup 删除分组，双侧归档无条件清理
	DeleteGroup(username, groupUuid string) error
}

// EventService 事件日志业务接口
type EventService interface {
	// CreateStatusRequest 向对方挂一条状态请求事件
	CreateStatusRequest(username, relationshipUuid string) error
	// AcknowledgeEvents 确认事件已读，返回实际删除的事件 uuid
	AcknowledgeEvents(username string, eventUuids []string) ([]string, error)
}

// SyncService 增量同步业务接口
type SyncService interface {
	// InitializeUser 联系人初始化：预置分组 + 绑定邮箱邀请
	InitializeUser(username, email string) error
	// BindInvites 绑定挂在邮箱上的邀请关系，返回绑定条数
	BindInvites(username, email string) (int, error)
	// GetDatabase 按上次同步时间戳组装增量视图
	GetDatabase(username string, lastSyncDate int64) (*respond.GetDatabaseRespond, error)
	// UpdateUser 更新资料与分组排序
	UpdateUser(username string, req request.UpdateUserRequest) (*respond.UserRespond, error)
	// UpdateStatus 更新状态字段
	UpdateStatus(username string, req request.UpdateStatusRequest) error
}
