package user_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huoban_contact_server/internal/dao/mysql/repository"
	"huoban_contact_server/internal/dto/request"
	"huoban_contact_server/internal/mocks"
	"huoban_contact_server/internal/service"
	usersvc "huoban_contact_server/internal/service/user"
	"huoban_contact_server/pkg/errorx"
	"huoban_contact_server/pkg/util/jwt"
)

func TestMain(m *testing.M) {
	jwt.Init("unit-test-secret-key-0123456789ab", 15, 168)
	os.Exit(m.Run())
}

type testEnv struct {
	repos *repository.Repositories
	cache *mocks.FakeCache
	svc   service.UserService
}

type fakeSms struct {
	sent []string
}

func (s *fakeSms) SendVerificationCode(telephone string) error {
	s.sent = append(s.sent, telephone)
	return nil
}

func newTestEnv(t *testing.T) (*testEnv, *fakeSms) {
	t.Helper()
	repos := mocks.NewRepositories()
	cache := mocks.NewFakeCache()
	sms := &fakeSms{}
	return &testEnv{
		repos: repos,
		cache: cache,
		svc:   usersvc.NewUserService(repos, cache, sms, mocks.NewFakeClock(1000)),
	}, sms
}

func register(t *testing.T, env *testEnv, username, telephone, email string) {
	t.Helper()
	require.NoError(t, env.svc.Register(request.RegisterRequest{
		Username:  username,
		Password:  "secret123",
		Telephone: telephone,
		Email:     email,
	}))
}

func TestRegisterUniqueness(t *testing.T) {
	env, _ := newTestEnv(t)
	register(t, env, "alice", "13800000001", "alice@example.com")

	err := env.svc.Register(request.RegisterRequest{
		Username: "alice", Password: "secret123",
	})
	assert.Equal(t, errorx.CodeAlreadyExists, errorx.GetCode(err))

	err = env.svc.Register(request.RegisterRequest{
		Username: "alice2", Password: "secret123", Telephone: "13800000001",
	})
	assert.Equal(t, errorx.CodeAlreadyExists, errorx.GetCode(err))

	err = env.svc.Register(request.RegisterRequest{
		Username: "alice3", Password: "secret123", Email: "alice@example.com",
	})
	assert.Equal(t, errorx.CodeAlreadyExists, errorx.GetCode(err))
}

func TestRegisterHashesPassword(t *testing.T) {
	env, _ := newTestEnv(t)
	register(t, env, "alice", "", "")

	alice, err := env.repos.User.FindByUsername("alice")
	require.NoError(t, err)
	assert.NotEmpty(t, alice.Password)
	assert.NotEqual(t, "secret123", alice.Password)
	assert.True(t, alice.CheckPassword("secret123"))
}

func TestLogin(t *testing.T) {
	env, _ := newTestEnv(t)
	register(t, env, "alice", "", "")

	resp, err := env.svc.Login(request.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	// Refresh Token 的标识写入缓存，用于单点互踢
	tokenID, err := env.cache.Get(context.Background(), "refresh_token_alice")
	require.NoError(t, err)
	assert.NotEmpty(t, tokenID)

	_, err = env.svc.Login(request.LoginRequest{Username: "alice", Password: "wrong-pass"})
	assert.Equal(t, errorx.CodeInvalidPassword, errorx.GetCode(err))

	_, err = env.svc.Login(request.LoginRequest{Username: "nobody", Password: "secret123"})
	assert.Equal(t, errorx.CodeUserNotExist, errorx.GetCode(err))
}

func TestSmsLogin(t *testing.T) {
	env, _ := newTestEnv(t)
	register(t, env, "alice", "13800000001", "")
	ctx := context.Background()
	require.NoError(t, env.cache.Set(ctx, "auth_code_13800000001", "654321", 0))

	_, err := env.svc.SmsLogin(request.SmsLoginRequest{
		Telephone: "13800000001", SmsCode: "111111",
	})
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))

	resp, err := env.svc.SmsLogin(request.SmsLoginRequest{
		Telephone: "13800000001", SmsCode: "654321",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)

	// 验证码一次性使用
	code, err := env.cache.Get(ctx, "auth_code_13800000001")
	require.NoError(t, err)
	assert.Empty(t, code)
}

func TestSendSmsCodeDelegates(t *testing.T) {
	env, sms := newTestEnv(t)
	require.NoError(t, env.svc.SendSmsCode("13800000001"))
	assert.Equal(t, []string{"13800000001"}, sms.sent)
}

func TestRefreshTokenRotation(t *testing.T) {
	env, _ := newTestEnv(t)
	register(t, env, "alice", "", "")

	login, err := env.svc.Login(request.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	refreshed, err := env.svc.RefreshToken(login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEmpty(t, refreshed.RefreshToken)

	// 旧 Refresh Token 已被轮换作废
	_, err = env.svc.RefreshToken(login.RefreshToken)
	assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))

	// Access Token 不能拿来刷新
	_, err = env.svc.RefreshToken(login.AccessToken)
	assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))
}
