package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huoban_contact_server/internal/dto/request"
	"huoban_contact_server/internal/dto/respond"
	"huoban_contact_server/internal/handler"
	"huoban_contact_server/internal/router"
	"huoban_contact_server/internal/service"
	"huoban_contact_server/pkg/errorx"
	"huoban_contact_server/pkg/util/jwt"
)

type stubUserService struct{}

func (s stubUserService) Register(req request.RegisterRequest) error { return nil }
func (s stubUserService) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	return &respond.LoginRespond{Username: req.Username}, nil
}
func (s stubUserService) SmsLogin(req request.SmsLoginRequest) (*respond.LoginRespond, error) {
	return &respond.LoginRespond{}, nil
}
func (s stubUserService) SendSmsCode(telephone string) error { return nil }
func (s stubUserService) RefreshToken(refreshToken string) (*respond.RefreshTokenRespond, error) {
	return &respond.RefreshTokenRespond{}, nil
}

type stubRelationshipService struct{}

func (s stubRelationshipService) CreateRelationships(username string, req request.CreateRelationshipsRequest) (*respond.CreateRelationshipsRespond, error) {
	return &respond.CreateRelationshipsRespond{
		Created:    []respond.RelationshipRespond{},
		Unresolved: req.Usernames, // 回显目标，便于断言部分失败码
	}, nil
}
func (s stubRelationshipService) UpdateRelationships(username string, req request.UpdateRelationshipsRequest) (*respond.UpdateRelationshipsRespond, error) {
	return &respond.UpdateRelationshipsRespond{
		Updated:    []respond.RelationshipRespond{},
		Unresolved: []string{},
	}, nil
}
func (s stubRelationshipService) SetType(username, relationshipUuid string, newType int8) (*respond.RelationshipRespond, error) {
	return &respond.RelationshipRespond{}, nil
}

type stubGroupService struct{}

func (s stubGroupService) CreateNewGroup(username string, req request.CreateNewGroupRequest) (*respond.CreateNewGroupRespond, error) {
	return &respond.CreateNewGroupRespond{Unresolved: []string{}}, nil
}
func (s stubGroupService) UpdateGroup(username string, req request.UpdateGroupRequest) (*respond.GroupRespond, error) {
	return &respond.GroupRespond{}, nil
}
func (s stubGroupService) DeleteGroup(username, groupUuid string) error { return nil }

type stubEventService struct{}

func (s stubEventService) CreateStatusRequest(username, relationshipUuid string) error { return nil }
func (s stubEventService) AcknowledgeEvents(username string, eventUuids []string) ([]string, error) {
	return eventUuids, nil
}

type stubSyncService struct{}

func (s stubSyncService) InitializeUser(username, email string) error { return nil }
func (s stubSyncService) BindInvites(username, email string) (int, error) {
	return 0, nil
}
func (s stubSyncService) GetDatabase(username string, lastSyncDate int64) (*respond.GetDatabaseRespond, error) {
	return &respond.GetDatabaseRespond{LastSyncDate: lastSyncDate + 1}, nil
}
func (s stubSyncService) UpdateUser(username string, req request.UpdateUserRequest) (*respond.UserRespond, error) {
	return &respond.UserRespond{Username: username}, nil
}
func (s stubSyncService) UpdateStatus(username string, req request.UpdateStatusRequest) error {
	return nil
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	jwt.Init("unit-test-secret-key-0123456789ab", 15, 168)
	if err := handler.InitTrans("zh"); err != nil {
		panic(err)
	}
	service.Svc = &service.Services{
		User:         stubUserService{},
		Relationship: stubRelationshipService{},
		Group:        stubGroupService{},
		Event:        stubEventService{},
		Sync:         stubSyncService{},
	}
	os.Exit(m.Run())
}

func newEngine() *gin.Engine {
	engine := gin.New()
	router.RegisterRoutes(engine)
	return engine
}

type apiResponse struct {
	Code int             `json:"code"`
	Msg  json.RawMessage `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, *apiResponse) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	var parsed apiResponse
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &parsed))
	}
	return recorder, &parsed
}

func TestLoginEndpoint(t *testing.T) {
	engine := newEngine()

	recorder, resp := doJSON(t, engine, http.MethodPost, "/auth/login", "", request.LoginRequest{
		Username: "alice", Password: "secret123",
	})
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, errorx.CodeSuccess, resp.Code)
}

func TestLoginValidation(t *testing.T) {
	engine := newEngine()

	// 密码过短被 validator 拦截
	_, resp := doJSON(t, engine, http.MethodPost, "/auth/login", "", request.LoginRequest{
		Username: "alice", Password: "123",
	})
	assert.Equal(t, errorx.CodeInvalidParam, resp.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	engine := newEngine()

	recorder, _ := doJSON(t, engine, http.MethodPost, "/sync/getDatabase", "", request.GetDatabaseRequest{})
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	token, err := jwt.GenerateAccessToken("alice")
	require.NoError(t, err)
	recorder, resp := doJSON(t, engine, http.MethodPost, "/sync/getDatabase", token, request.GetDatabaseRequest{LastSyncDate: 5})
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, errorx.CodeSuccess, resp.Code)
}

func TestRefreshTokenRejectedAsAccessToken(t *testing.T) {
	engine := newEngine()

	refreshToken, _, err := jwt.GenerateRefreshToken("alice")
	require.NoError(t, err)
	recorder, _ := doJSON(t, engine, http.MethodPost, "/sync/getDatabase", refreshToken, request.GetDatabaseRequest{})
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestPartialFailureCode(t *testing.T) {
	engine := newEngine()

	token, err := jwt.GenerateAccessToken("alice")
	require.NoError(t, err)
	_, resp := doJSON(t, engine, http.MethodPost, "/relationship/createRelationships", token,
		request.CreateRelationshipsRequest{Usernames: []string{"nobody"}})
	assert.Equal(t, errorx.CodePartialFailure, resp.Code)
}
