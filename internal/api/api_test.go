package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alenapavlenkko/lifetracker/internal/app"
	"github.com/alenapavlenkko/lifetracker/internal/auth"
	"github.com/alenapavlenkko/lifetracker/internal/database"
	"github.com/alenapavlenkko/lifetracker/internal/models"
	"github.com/alenapavlenkko/lifetracker/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testServer struct {
	t       *testing.T
	handler http.Handler
	db      *gorm.DB
	cookie  *http.Cookie
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewSQLite(":memory:", &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrateTables(db, models.All()...))

	a := app.FromDB(db, time.Now)
	h := NewHandlers(auth.NewSessions("test-secret", time.Hour), false, Services{
		Accounts:  a.Accounts,
		Routines:  a.Routines,
		Planning:  a.Planning,
		Health:    a.Health,
		Workouts:  a.Workouts,
		Dashboard: a.Dashboard,
	})
	return &testServer{t: t, handler: NewRouter(h), db: db}
}

func (s *testServer) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

// login регистрирует пользователя и запоминает cookie сессии
func (s *testServer) login(email string) {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/auth/register", gin.H{"email": email, "password": "s3cret-pass", "name": "Test"})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookie {
			s.cookie = c
		}
	}
	require.NotNil(s.t, s.cookie, "session cookie not set")
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestUnauthenticatedRequestsAreRejected(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/tasks", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized", decode[map[string]string](t, w)["error"])

	s.cookie = &http.Cookie{Name: sessionCookie, Value: "forged"}
	w = s.do(http.MethodGet, "/api/tasks", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionForDeletedUserIsNotFound(t *testing.T) {
	s := newTestServer(t)
	token, err := auth.NewSessions("test-secret", time.Hour).Issue("ghost@example.com")
	require.NoError(t, err)

	s.cookie = &http.Cookie{Name: sessionCookie, Value: token}
	w := s.do(http.MethodGet, "/api/notes", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", decode[map[string]string](t, w)["error"])
}

func TestStorageFailureIsInternalError(t *testing.T) {
	s := newTestServer(t)
	s.login("broken@example.com")
	require.NoError(t, s.db.Migrator().DropTable(&models.Note{}))

	w := s.do(http.MethodGet, "/api/notes", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())

	w = s.do(http.MethodPost, "/api/notes", gin.H{"title": "lost"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "notes")
}

func TestLoginAndBearerToken(t *testing.T) {
	s := newTestServer(t)
	s.login("bearer@example.com")
	s.cookie = nil

	w := s.do(http.MethodPost, "/api/auth/login", gin.H{"email": "bearer@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/auth/login", gin.H{"email": "bearer@example.com", "password": "s3cret-pass"})
	require.Equal(t, http.StatusOK, w.Code)
	token := decode[sessionResponse](t, w).Token
	require.NotEmpty(t, token)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bearer@example.com", decode[sessionResponse](t, rec).User.Email)

	w = s.do(http.MethodPost, "/api/auth/register", gin.H{"email": "bearer@example.com", "password": "s3cret-pass"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/api/auth/register", gin.H{"email": "not-an-email", "password": "s3cret-pass"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskCRUD(t *testing.T) {
	s := newTestServer(t)
	s.login("crud@example.com")

	w := s.do(http.MethodPost, "/api/tasks", gin.H{"title": "Write report", "priority": "high"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	task := decode[models.Task](t, w)
	assert.Equal(t, "todo", task.Status)

	w = s.do(http.MethodPut, "/api/tasks", gin.H{"id": task.ID, "title": "Write report", "status": "done"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotNil(t, decode[models.Task](t, w).CompletedAt)

	w = s.do(http.MethodGet, "/api/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Task](t, w), 1)

	w = s.do(http.MethodDelete, "/api/tasks", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodDelete, "/api/tasks?id="+task.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode[map[string]bool](t, w)["success"])

	w = s.do(http.MethodDelete, "/api/tasks?id="+task.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/api/tasks", gin.H{"priority": "high"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Повторный POST с тем же id создаёт новую запись, а не 500
	first := s.do(http.MethodPost, "/api/tasks", gin.H{"id": "client-id", "title": "a"})
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	second := s.do(http.MethodPost, "/api/tasks", gin.H{"id": "client-id", "title": "b"})
	require.Equal(t, http.StatusCreated, second.Code, second.Body.String())
	assert.NotEqual(t, decode[models.Task](t, first).ID, decode[models.Task](t, second).ID)
}

func TestOtherUsersDataIsInvisible(t *testing.T) {
	s := newTestServer(t)
	s.login("first@example.com")

	w := s.do(http.MethodPost, "/api/notes", gin.H{"title": "secret"})
	require.Equal(t, http.StatusCreated, w.Code)
	note := decode[models.Note](t, w)

	s.login("second@example.com")
	w = s.do(http.MethodGet, "/api/notes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]models.Note](t, w))

	w = s.do(http.MethodPut, "/api/notes", gin.H{"id": note.ID, "title": "stolen"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(http.MethodDelete, "/api/notes?id="+note.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoutineLogsAndStreaks(t *testing.T) {
	s := newTestServer(t)
	s.login("routine@example.com")

	w := s.do(http.MethodPost, "/api/night-routines", gin.H{"name": "Read"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	action := decode[models.RoutineAction](t, w)

	today := time.Now().Format("2006-01-02")
	w = s.do(http.MethodPost, "/api/night-routines/logs", gin.H{"actionId": action.ID, "date": today, "completed": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/night-routines/streaks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	streaks := decode[[]map[string]interface{}](t, w)
	require.Len(t, streaks, 1)
	assert.EqualValues(t, 1, streaks[0]["current"])

	w = s.do(http.MethodGet, "/api/night-routines/logs?actionId="+action.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.RoutineLog](t, w), 1)

	w = s.do(http.MethodGet, "/api/routines", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]models.RoutineAction](t, w))
}

func TestNutritionEndpoints(t *testing.T) {
	s := newTestServer(t)
	s.login("food@example.com")

	w := s.do(http.MethodPost, "/api/nutrition", gin.H{"date": "2024-03-13", "name": "Eggs", "calories": 200, "protein": 14})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	day := decode[models.DailyNutrition](t, w)
	require.Len(t, day.Meals, 1)

	w = s.do(http.MethodGet, "/api/nutrition?date=2024-03-13", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 200, decode[models.DailyNutrition](t, w).Calories)

	w = s.do(http.MethodDelete, "/api/nutrition?date=2024-03-13", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodDelete, "/api/nutrition?date=2024-03-13&mealId="+day.Meals[0].ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, decode[models.DailyNutrition](t, w).Calories)

	w = s.do(http.MethodGet, "/api/fitness-profile/targets", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPut, "/api/fitness-profile", gin.H{"age": 30, "weight": 80, "height": 180, "gender": "male"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/fitness-profile/targets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2136, decode[map[string]interface{}](t, w)["calories"])
}

func TestDashboardWidgetsEmptyPersists(t *testing.T) {
	s := newTestServer(t)
	s.login("dash@example.com")

	w := s.do(http.MethodGet, "/api/dashboard/widgets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	widgets := decode[[]models.Widget](t, w)
	require.Len(t, widgets, 8)

	w = s.do(http.MethodPost, "/api/dashboard/widgets/actions", gin.H{"action": "toggle", "id": widgets[0].ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.False(t, decode[[]models.Widget](t, w)[0].Enabled)

	w = s.do(http.MethodPut, "/api/dashboard/widgets", []models.Widget{})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/dashboard/widgets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = s.do(http.MethodPost, "/api/dashboard/widgets/actions", gin.H{"action": "toggle", "id": "missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResetRestoresDefaults(t *testing.T) {
	s := newTestServer(t)
	s.login("reset@example.com")

	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/missions", gin.H{"title": "m", "tasks": []gin.H{{"title": "t"}}}).Code)
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/sleep", gin.H{"bedTime": "23:00", "wakeTime": "07:00"}).Code)
	require.Equal(t, http.StatusOK, s.do(http.MethodPut, "/api/settings", gin.H{"theme": "dark", "dayStartHour": 8, "dayEndHour": 20}).Code)

	w := s.do(http.MethodPost, "/api/reset", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode[map[string]interface{}](t, w)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["message"])

	for _, path := range []string{
		"/api/routines", "/api/night-routines", "/api/tasks", "/api/missions", "/api/projects",
		"/api/calendar", "/api/sleep", "/api/workouts", "/api/workout-programs",
		"/api/personal-records", "/api/nutrition", "/api/notes", "/api/dashboard/widgets",
	} {
		w := s.do(http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, "[]", w.Body.String(), path)
	}

	w = s.do(http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	settings := decode[models.UserSettings](t, w)
	assert.Equal(t, "system", settings.Theme)
	assert.Equal(t, 6, settings.DayStartHour)
	assert.Equal(t, 22, settings.DayEndHour)
	assert.True(t, settings.ShowQuotes && settings.ShowStreaks && settings.ShowCompletedTasks &&
		settings.ShowNightRoutine && settings.ShowWeekNumbers)
}

func TestAccountEventsLoggedOnce(t *testing.T) {
	var buf bytes.Buffer
	prev := utils.Log
	utils.Log = utils.NewLogger(&buf)
	t.Cleanup(func() { utils.Log = prev })

	s := newTestServer(t)
	s.login("once@example.com")
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/reset", nil).Code)

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "User registered"), out)
	assert.Equal(t, 1, strings.Count(out, "User data reset"), out)
}

func TestLogoutClearsCookie(t *testing.T) {
	s := newTestServer(t)
	s.login("bye@example.com")

	w := s.do(http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookie, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}
