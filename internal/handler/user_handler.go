// Package handler 提供 HTTP 请求处理器
// 本文件处理注册、登录和令牌刷新相关的 API 请求
package handler

import (
	"huoban_contact_server/internal/dto/request"
	"huoban_contact_server/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterHandler 用户注册
// POST /auth/register
// 请求体: request.RegisterRequest
// 响应: nil
func RegisterHandler(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := service.Svc.User.Register(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// LoginHandler 密码登录
// POST /auth/login
// 请求体: request.LoginRequest
// 响应: respond.LoginRespond
func LoginHandler(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := service.Svc.User.Login(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// SendSmsCodeHandler 发送短信验证码
// POST /auth/sendSmsCode
// 请求体: request.SendSmsCodeRequest
// 响应: nil
func SendSmsCodeHandler(c *gin.Context) {
	var req request.SendSmsCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := service.Svc.User.SendSmsCode(req.Telephone); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// SmsLoginHandler 短信验证码登录
// POST /auth/smsLogin
// 请求体: request.SmsLoginRequest
// 响应: respond.LoginRespond
func SmsLoginHandler(c *gin.Context) {
	var req request.SmsLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := service.Svc.User.SmsLogin(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// RefreshTokenHandler 刷新令牌对
// POST /auth/refreshToken
// 请求体: request.RefreshTokenRequest
// 响应: respond.RefreshTokenRespond
func RefreshTokenHandler(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := service.Svc.User.RefreshToken(req.RefreshToken)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
