package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"note-network/handlers"
	"note-network/helper"
	"note-network/middleware"
	"note-network/models"
	"note-network/notifier"
	"note-network/repositories"
	"note-network/services"
)

const testSecret = "test-secret"

type apiResponse struct {
	Code        int                    `json:"code"`
	CodeType    string                 `json:"code_type"`
	CodeMessage interface{}            `json:"code_message"`
	Data        map[string]interface{} `json:"data"`
}

func openTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatal("Failed to open test database:", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Vacancy{}); err != nil {
		t.Fatal("Failed to migrate:", err)
	}
	return db
}

// setupRouter mirrors the wiring in main.go over an in-memory database.
func setupRouter(t *testing.T, db *gorm.DB, sessionMode bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	httpHelper, err := helper.NewHTTPHelper()
	if err != nil {
		t.Fatal("Failed to build helper:", err)
	}

	userRepo := repositories.NewUserRepository(db)
	vacancyRepo := repositories.NewVacancyRepository(db)

	authService := services.NewAuthService(userRepo, testSecret)
	vacancyService := services.NewVacancyService(vacancyRepo, notifier.NewConsole())

	authHandler := handlers.NewAuthHandler(authService, httpHelper, sessionMode)
	vacancyHandler := handlers.NewVacancyHandler(vacancyService, httpHelper)

	router := gin.New()

	var authn gin.HandlerFunc
	if sessionMode {
		store := cookie.NewStore([]byte(testSecret))
		router.Use(sessions.Sessions("note_network_session", store))
		authn = middleware.SessionAuth(authService)
	} else {
		authn = middleware.TokenAuth(authService)
	}

	router.GET("/", func(c *gin.Context) {
		httpHelper.SendSuccess(c, "Welcome to the Note Network API", httpHelper.EmptyJsonMap())
	})
	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)
	if sessionMode {
		router.POST("/logout", authn, authHandler.Logout)
	}
	router.GET("/profile", authn, authHandler.GetProfile)
	router.GET("/vacancies", vacancyHandler.GetVacancies)
	router.GET("/vacancy/:id", vacancyHandler.GetVacancy)
	router.POST("/post_vacancy", authn,
		middleware.RequireRole(models.RolePoster, "You are not authorized to post vacancies."),
		vacancyHandler.PostVacancy)
	router.POST("/connect/:vacancy_id", authn,
		middleware.RequireRole(models.RoleJobseeker, "You are not authorized to apply for vacancies."),
		vacancyHandler.Connect)

	return router
}

type TokenModeTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine

	posterToken    string
	jobseekerToken string
	vacancyID      uint
}

func (suite *TokenModeTestSuite) SetupSuite() {
	suite.db = openTestDB(suite.T())
	suite.router = setupRouter(suite.T(), suite.db, false)
}

func (suite *TokenModeTestSuite) request(method, path string, body interface{}, token string) (*httptest.ResponseRecorder, apiResponse) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			suite.T().Fatal(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var parsed apiResponse
	_ = json.Unmarshal(w.Body.Bytes(), &parsed)
	return w, parsed
}

func (suite *TokenModeTestSuite) Test01RegisterPoster() {
	w, _ := suite.request(http.MethodPost, "/register", map[string]interface{}{
		"username": "amy",
		"email":    "amy@x.com",
		"password": "pw123456",
		"role":     "poster",
	}, "")

	suite.Equal(http.StatusCreated, w.Code)
}

func (suite *TokenModeTestSuite) Test02RegisterDuplicateEmail() {
	w, resp := suite.request(http.MethodPost, "/register", map[string]interface{}{
		"username": "amy2",
		"email":    "amy@x.com",
		"password": "pw123456",
		"role":     "jobseeker",
	}, "")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(resp.CodeMessage, "already exists")

	var count int64
	suite.NoError(suite.db.Model(&models.User{}).Where("email = ?", "amy@x.com").Count(&count).Error)
	suite.EqualValues(1, count)
}

func (suite *TokenModeTestSuite) Test03RegisterMissingFields() {
	w, _ := suite.request(http.MethodPost, "/register", map[string]interface{}{
		"username": "carl",
	}, "")

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TokenModeTestSuite) Test04LoginWrongPassword() {
	w, _ := suite.request(http.MethodPost, "/login", map[string]interface{}{
		"email":    "amy@x.com",
		"password": "wrong-password",
	}, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *TokenModeTestSuite) Test05Login() {
	w, resp := suite.request(http.MethodPost, "/login", map[string]interface{}{
		"email":    "amy@x.com",
		"password": "pw123456",
	}, "")

	suite.Equal(http.StatusOK, w.Code)

	token, ok := resp.Data["token"].(string)
	suite.True(ok, "login response must carry a token")
	suite.NotEmpty(token)
	suite.posterToken = token
}

func (suite *TokenModeTestSuite) Test06PostVacancyWithoutToken() {
	w, _ := suite.request(http.MethodPost, "/post_vacancy", map[string]interface{}{
		"title":       "Teacher",
		"description": "Math teacher wanted",
		"school_name": "X",
	}, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *TokenModeTestSuite) Test07PostVacancy() {
	w, resp := suite.request(http.MethodPost, "/post_vacancy", map[string]interface{}{
		"title":       "Teacher",
		"description": "Math teacher wanted",
		"school_name": "X",
	}, suite.posterToken)

	suite.Equal(http.StatusCreated, w.Code)
	suite.vacancyID = uint(resp.Data["id"].(float64))
	suite.NotZero(suite.vacancyID)
}

func (suite *TokenModeTestSuite) Test08PostVacancyMissingFields() {
	w, _ := suite.request(http.MethodPost, "/post_vacancy", map[string]interface{}{
		"title": "Teacher",
	}, suite.posterToken)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TokenModeTestSuite) Test09ListShowsNewestFirst() {
	w, _ := suite.request(http.MethodPost, "/post_vacancy", map[string]interface{}{
		"title":       "Headmaster",
		"description": "Experienced headmaster wanted",
		"school_name": "Y",
	}, suite.posterToken)
	suite.Equal(http.StatusCreated, w.Code)

	w, resp := suite.request(http.MethodGet, "/vacancies", nil, "")
	suite.Equal(http.StatusOK, w.Code)

	vacancies, ok := resp.Data["vacancies"].([]interface{})
	suite.True(ok)
	suite.Len(vacancies, 2)

	first := vacancies[0].(map[string]interface{})
	suite.Equal("Headmaster", first["title"], "latest vacancy must come first")
}

func (suite *TokenModeTestSuite) Test10GetVacancy() {
	w, resp := suite.request(http.MethodGet, "/vacancy/1", nil, "")

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("Teacher", resp.Data["title"])
}

func (suite *TokenModeTestSuite) Test11GetVacancyMissing() {
	w, _ := suite.request(http.MethodGet, "/vacancy/999", nil, "")
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TokenModeTestSuite) Test12RegisterJobseeker() {
	w, _ := suite.request(http.MethodPost, "/register", map[string]interface{}{
		"username": "bob",
		"email":    "bob@x.com",
		"password": "pw123456",
		"role":     "jobseeker",
	}, "")
	suite.Equal(http.StatusCreated, w.Code)

	w, resp := suite.request(http.MethodPost, "/login", map[string]interface{}{
		"email":    "bob@x.com",
		"password": "pw123456",
	}, "")
	suite.Equal(http.StatusOK, w.Code)
	suite.jobseekerToken = resp.Data["token"].(string)
}

func (suite *TokenModeTestSuite) Test13PostVacancyAsJobseeker() {
	w, _ := suite.request(http.MethodPost, "/post_vacancy", map[string]interface{}{
		"title":       "Teacher",
		"description": "Perfectly valid payload",
		"school_name": "Z",
	}, suite.jobseekerToken)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *TokenModeTestSuite) Test14Connect() {
	w, resp := suite.request(http.MethodPost, "/connect/1", map[string]interface{}{
		"message": "I would love to teach at your school",
	}, suite.jobseekerToken)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("Your application has been sent to the school.", resp.CodeMessage)
}

func (suite *TokenModeTestSuite) Test15ConnectAsPoster() {
	w, _ := suite.request(http.MethodPost, "/connect/1", map[string]interface{}{
		"message": "hello",
	}, suite.posterToken)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *TokenModeTestSuite) Test16ConnectMissingVacancy() {
	w, _ := suite.request(http.MethodPost, "/connect/999", map[string]interface{}{
		"message": "perfectly valid message",
	}, suite.jobseekerToken)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TokenModeTestSuite) Test17ConnectMissingMessage() {
	w, _ := suite.request(http.MethodPost, "/connect/1", map[string]interface{}{}, suite.jobseekerToken)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TokenModeTestSuite) Test18Welcome() {
	w, resp := suite.request(http.MethodGet, "/", nil, "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("Welcome to the Note Network API", resp.CodeMessage)
}

func TestTokenModeTestSuite(t *testing.T) {
	suite.Run(t, new(TokenModeTestSuite))
}

type SessionModeTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine

	cookies []*http.Cookie
}

func (suite *SessionModeTestSuite) SetupSuite() {
	suite.db = openTestDB(suite.T())
	suite.router = setupRouter(suite.T(), suite.db, true)
}

func (suite *SessionModeTestSuite) request(method, path string, body interface{}, cookies []*http.Cookie) (*httptest.ResponseRecorder, apiResponse) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			suite.T().Fatal(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var parsed apiResponse
	_ = json.Unmarshal(w.Body.Bytes(), &parsed)
	return w, parsed
}

func (suite *SessionModeTestSuite) Test01RegisterAndLogin() {
	w, _ := suite.request(http.MethodPost, "/register", map[string]interface{}{
		"username": "amy",
		"email":    "amy@x.com",
		"password": "pw123456",
		"role":     "poster",
	}, nil)
	suite.Equal(http.StatusCreated, w.Code)

	w, resp := suite.request(http.MethodPost, "/login", map[string]interface{}{
		"email":    "amy@x.com",
		"password": "pw123456",
	}, nil)
	suite.Equal(http.StatusOK, w.Code)

	// session mode issues a cookie, not a token
	_, hasToken := resp.Data["token"]
	suite.False(hasToken)

	suite.cookies = w.Result().Cookies()
	suite.NotEmpty(suite.cookies, "login must set a session cookie")
}

func (suite *SessionModeTestSuite) Test02ProtectedRouteWithoutSession() {
	w, _ := suite.request(http.MethodPost, "/post_vacancy", map[string]interface{}{
		"title":       "Teacher",
		"description": "d",
		"school_name": "s",
	}, nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *SessionModeTestSuite) Test03PostVacancyWithSession() {
	w, _ := suite.request(http.MethodPost, "/post_vacancy", map[string]interface{}{
		"title":       "Teacher",
		"description": "Math teacher wanted",
		"school_name": "X",
	}, suite.cookies)

	suite.Equal(http.StatusCreated, w.Code)
}

func (suite *SessionModeTestSuite) Test04Profile() {
	w, resp := suite.request(http.MethodGet, "/profile", nil, suite.cookies)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("amy", resp.Data["username"])
}

func (suite *SessionModeTestSuite) Test05Logout() {
	w, _ := suite.request(http.MethodPost, "/logout", nil, suite.cookies)
	suite.Equal(http.StatusOK, w.Code)

	// the cleared cookie from the logout response no longer authenticates
	cleared := w.Result().Cookies()
	w, _ = suite.request(http.MethodGet, "/profile", nil, cleared)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func TestSessionModeTestSuite(t *testing.T) {
	suite.Run(t, new(SessionModeTestSuite))
}
