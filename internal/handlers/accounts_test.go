package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chatroom-service/internal/mocks"
	"chatroom-service/internal/service"
	"chatroom-service/internal/telemetry"
)

func setupAccountRouter(handler *AccountHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/register", handler.Register)
	r.POST("/login", handler.Login)
	r.POST("/logout", handler.Logout)
	r.GET("/avatar", handler.GetAvatar)
	r.POST("/avatar", handler.SetAvatar)
	return r
}

func perform(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRegisterSuccess(t *testing.T) {
	accounts := new(mocks.AccountServiceMock)
	publisher := new(mocks.PublisherMock)
	audit := telemetry.NewAuditEmitter(publisher, "audit.chatroom", "chatroom-service", "test")
	router := setupAccountRouter(NewAccountHandler(accounts, audit))

	accounts.On("Register", mock.Anything, "alice", "secret").Return(nil).Once()
	publisher.On("Publish", mock.Anything, "audit.chatroom", mock.MatchedBy(func(e telemetry.AuditEnvelope) bool {
		return e.Payload.Text == "User registered" && e.User != nil && *e.User == "alice"
	})).Return(nil).Once()

	rec := perform(router, http.MethodPost, "/register", `{"username":"alice","password":"secret"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	accounts.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestRegisterDuplicate(t *testing.T) {
	accounts := new(mocks.AccountServiceMock)
	router := setupAccountRouter(NewAccountHandler(accounts, nil))

	accounts.On("Register", mock.Anything, "alice", "secret").Return(service.ErrDuplicateUsername).Once()

	rec := perform(router, http.MethodPost, "/register", `{"username":"alice","password":"secret"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"username taken"}`, rec.Body.String())
}

func TestRegisterInvalidJSON(t *testing.T) {
	router := setupAccountRouter(NewAccountHandler(new(mocks.AccountServiceMock), nil))

	for _, body := range []string{`{"username":`, ``, `{"username":5}`} {
		rec := perform(router, http.MethodPost, "/register", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
		assert.JSONEq(t, `{"error":"invalid JSON"}`, rec.Body.String())
	}
}

func TestLoginSuccess(t *testing.T) {
	accounts := new(mocks.AccountServiceMock)
	router := setupAccountRouter(NewAccountHandler(accounts, nil))

	accounts.On("Login", mock.Anything, "alice", "secret").Return(nil).Once()

	rec := perform(router, http.MethodPost, "/login", `{"username":"alice","password":"secret"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestLoginInvalidCredentials(t *testing.T) {
	accounts := new(mocks.AccountServiceMock)
	publisher := new(mocks.PublisherMock)
	audit := telemetry.NewAuditEmitter(publisher, "audit.chatroom", "chatroom-service", "test")
	router := setupAccountRouter(NewAccountHandler(accounts, audit))

	accounts.On("Login", mock.Anything, "alice", "nope").Return(service.ErrInvalidCredentials).Once()
	publisher.On("Publish", mock.Anything, "audit.chatroom", mock.MatchedBy(func(e telemetry.AuditEnvelope) bool {
		return e.Payload.Level == "ERROR" && e.Payload.Text == "invalid credentials"
	})).Return(nil).Once()

	rec := perform(router, http.MethodPost, "/login", `{"username":"alice","password":"nope"}`)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"invalid credentials"}`, rec.Body.String())
	publisher.AssertExpectations(t)
}

func TestLogout(t *testing.T) {
	accounts := new(mocks.AccountServiceMock)
	router := setupAccountRouter(NewAccountHandler(accounts, nil))

	accounts.On("Logout", mock.Anything, service.Identity{Username: "alice"}).Return(nil).Once()

	rec := perform(router, http.MethodPost, "/logout", `{"username":"alice"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	accounts.AssertExpectations(t)
}

func TestGetAvatar(t *testing.T) {
	accounts := new(mocks.AccountServiceMock)
	router := setupAccountRouter(NewAccountHandler(accounts, nil))
	avatar := "https://cdn.example/a.png"

	accounts.On("GetAvatar", mock.Anything, service.Identity{Username: "alice"}).Return(&avatar, nil).Once()
	accounts.On("GetAvatar", mock.Anything, service.Identity{Username: "bob"}).Return(nil, nil).Once()
	accounts.On("GetAvatar", mock.Anything, service.Identity{Username: "ghost"}).Return(nil, service.ErrUnknownUser).Once()

	rec := perform(router, http.MethodGet, "/avatar?user=alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"avatar":"https://cdn.example/a.png"}`, rec.Body.String())

	rec = perform(router, http.MethodGet, "/avatar?user=bob", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"avatar":null}`, rec.Body.String())

	rec = perform(router, http.MethodGet, "/avatar?user=ghost", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	accounts.AssertExpectations(t)
}

func TestSetAvatar(t *testing.T) {
	accounts := new(mocks.AccountServiceMock)
	router := setupAccountRouter(NewAccountHandler(accounts, nil))

	accounts.On("SetAvatar", mock.Anything, service.Identity{Username: "alice"}, "blob-ref").Return(nil).Once()

	rec := perform(router, http.MethodPost, "/avatar", `{"user":"alice","avatar":"blob-ref"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	accounts.AssertExpectations(t)
}
