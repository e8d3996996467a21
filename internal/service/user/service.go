// Package user 实现注册、登录和令牌刷新
package user

import (
	"context"
	"time"

	"go.uber.org/zap"

	"huoban_contact_server/internal/dao/mysql/repository"
	"huoban_contact_server/internal/dao/redis"
	"huoban_contact_server/internal/dto/request"
	"huoban_contact_server/internal/dto/respond"
	"huoban_contact_server/internal/infrastructure/sms"
	"huoban_contact_server/internal/model"
	"huoban_contact_server/pkg/clock"
	"huoban_contact_server/pkg/constants"
	"huoban_contact_server/pkg/errorx"
	"huoban_contact_server/pkg/util/jwt"
)

// userService 用户业务逻辑实现
type userService struct {
	repos *repository.Repositories
	cache redis.CacheService
	sms   sms.SmsService
	clk   clock.Clock
}

// NewUserService 构造函数，注入所有依赖
func NewUserService(repos *repository.Repositories, cache redis.CacheService, smsSvc sms.SmsService, clk clock.Clock) *userService {
	return &userService{
		repos: repos,
		cache: cache,
		sms:   smsSvc,
		clk:   clk,
	}
}

// Register 用户注册
// 用户名、手机号、邮箱三个维度查重
func (s *userService) Register(req request.RegisterRequest) error {
	if _, err := s.repos.User.FindByUsername(req.Username); err == nil {
		return errorx.Newf(errorx.CodeAlreadyExists, "用户名 %s 已被占用", req.Username)
	} else if !errorx.IsNotFound(err) {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if req.Telephone != "" {
		if _, err := s.repos.User.FindByTelephone(req.Telephone); err == nil {
			return errorx.New(errorx.CodeAlreadyExists, "手机号已被注册")
		} else if !errorx.IsNotFound(err) {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
	}
	if req.Email != "" {
		if _, err := s.repos.User.FindByEmail(req.Email); err == nil {
			return errorx.New(errorx.CodeAlreadyExists, "邮箱已被注册")
		} else if !errorx.IsNotFound(err) {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
	}

	nickname := req.Nickname
	if nickname == "" {
		nickname = req.Username
	}
	now := s.clk.NowMillis()
	user := &model.UserInfo{
		Username:    req.Username,
		Nickname:    nickname,
		Telephone:   req.Telephone,
		Email:       req.Email,
		RawPassword: req.Password, // BeforeSave Hook 中加密
		// 新账号的资料对联系人来说就是"刚变化过"，首次同步才能拉到
		UserModDate:   now,
		StatusModDate: now,
	}
	if err := s.repos.User.Create(user); err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	return nil
}

// Login 密码登录
func (s *userService) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	user, err := s.repos.User.FindByUsername(req.Username)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if !user.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidPassword, "密码错误")
	}
	return s.issueTokens(user)
}

// SmsLogin 短信验证码登录
func (s *userService) SmsLogin(req request.SmsLoginRequest) (*respond.LoginRespond, error) {
	key := "auth_code_" + req.Telephone
	code, err := s.cache.Get(context.Background(), key)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if code == "" || code != req.SmsCode {
		return nil, errorx.New(errorx.CodeInvalidParam, "验证码错误或已过期")
	}

	user, err := s.repos.User.FindByTelephone(req.Telephone)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "手机号未注册")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	// 验证码一次性使用
	_ = s.cache.Delete(context.Background(), key)
	return s.issueTokens(user)
}

// SendSmsCode 发送短信验证码
func (s *userService) SendSmsCode(telephone string) error {
	return s.sms.SendVerificationCode(telephone)
}

// RefreshToken 刷新令牌对
// Refresh Token 的 tokenID 必须与 Redis 中的一致（单点互踢）；
// 刷新后旧 Refresh Token 立即作废
func (s *userService) RefreshToken(refreshToken string) (*respond.RefreshTokenRespond, error) {
	claims, err := jwt.ParseToken(refreshToken)
	if err != nil {
		return nil, errorx.New(errorx.CodeUnauthorized, "Refresh Token 无效或已过期")
	}
	if claims.Subject != "refresh_token" || claims.TokenID == "" {
		return nil, errorx.New(errorx.CodeUnauthorized, "Token 类型错误")
	}

	key := "refresh_token_" + claims.Username
	stored, err := s.cache.Get(context.Background(), key)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if stored == "" || stored != claims.TokenID {
		return nil, errorx.New(errorx.CodeUnauthorized, "Refresh Token 已失效，请重新登录")
	}

	accessToken, err := jwt.GenerateAccessToken(claims.Username)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	newRefreshToken, tokenID, err := jwt.GenerateRefreshToken(claims.Username)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if err := s.cache.Set(context.Background(), key, tokenID,
		constants.REFRESH_TOKEN_EXPIRY_HOURS*time.Hour); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	return &respond.RefreshTokenRespond{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// issueTokens 签发令牌对，Refresh Token 的 tokenID 入 Redis
func (s *userService) issueTokens(user *model.UserInfo) (*respond.LoginRespond, error) {
	accessToken, err := jwt.GenerateAccessToken(user.Username)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	refreshToken, tokenID, err := jwt.GenerateRefreshToken(user.Username)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if err := s.cache.Set(context.Background(), "refresh_token_"+user.Username, tokenID,
		constants.REFRESH_TOKEN_EXPIRY_HOURS*time.Hour); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	return &respond.LoginRespond{
		Username:     user.Username,
		Nickname:     user.Nickname,
		Avatar:       user.Avatar,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
