// Package router 提供 HTTP 路由注册
// 本文件定义认证相关的路由
package router

import (
	"huoban_contact_server/internal/handler"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes 注册认证相关路由
// 认证路由不挂 JWT 中间件
func RegisterAuthRoutes(r *gin.Engine) {
	authGroup := r.Group("/auth")
	{
		// POST /auth/register - 用户注册
		authGroup.POST("/register", handler.RegisterHandler)
		// POST /auth/login - 密码登录
		authGroup.POST("/login", handler.LoginHandler)
		// POST /auth/sendSmsCode - 发送短信验证码
		authGroup.POST("/sendSmsCode", handler.SendSmsCodeHandler)
		// POST /auth/smsLogin - 短信验证码登录
		authGroup.POST("/smsLogin", handler.SmsLoginHandler)
		// POST /auth/refreshToken - 刷新 Access Token
		authGroup.POST("/refreshToken", handler.RefreshTokenHandler)
	}
}
