package api

import (
	"alcyxob/gymbuddy/internal/domain"
	"alcyxob/gymbuddy/internal/metrics"
	"alcyxob/gymbuddy/internal/repository/memory"
	"alcyxob/gymbuddy/internal/service"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

type testServer struct {
	router  *gin.Engine
	manager *metrics.Manager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	_, err := store.Catalog.Upsert(context.Background(), []domain.AvailableExercise{
		{Name: "Bench Press", MainMuscleGroup: "Chest", PrimaryEquipment: "Barbell"},
		{Name: "Push Up", MainMuscleGroup: "Chest", PrimaryEquipment: "Bodyweight"},
		{Name: "Pull Up", MainMuscleGroup: "Back", PrimaryEquipment: "Bodyweight"},
	})
	require.NoError(t, err)

	authService, err := service.NewAuthService(store.Users, "test-secret", time.Hour)
	require.NoError(t, err)

	manager, reg := metrics.NewTestManagerAndRegistry()
	calendar := service.Calendar{}
	services := Services{
		Auth:     authService,
		Workouts: service.NewWorkoutService(store, service.NewRandomSource(1), calendar, manager),
		Progress: service.NewProgressService(store, calendar, manager),
		Partners: service.NewPartnerService(store, manager),
	}

	router := gin.New()
	SetupRoutes(router, services, MetricsOptions{Manager: manager, Gatherer: reg, Path: "/metrics"})
	return &testServer{router: router, manager: manager}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// signup registers a user and returns its id and token.
func (s *testServer) signup(t *testing.T, username string) (string, string) {
	t.Helper()
	email := username + "@example.com"
	rec := s.do(t, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{
		Name: "User " + username, Username: username, Email: email, Password: "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: email, Password: "password123"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	return login.User.ID, login.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestErrorStatus(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, errorStatus(service.ErrNoCaller))
	assert.Equal(t, http.StatusNotFound, errorStatus(service.ErrWorkoutNotFound))
	assert.Equal(t, http.StatusConflict, errorStatus(service.ErrInviteExists))
	assert.Equal(t, http.StatusBadRequest, errorStatus(service.ErrInvalidDuration))
	assert.Equal(t, http.StatusNotFound, errorStatus(fmt.Errorf("no exercises found for Neck: %w", service.ErrNotFound)))
	assert.Equal(t, http.StatusInternalServerError, errorStatus(errors.New("connection reset")))
}

func TestPing(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth(t *testing.T) {
	s := newTestServer(t)
	userID, token := s.signup(t, "jo")

	rec := s.do(t, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[UserResponse](t, rec)
	assert.Equal(t, userID, me.ID)
	assert.Equal(t, "jo", me.Username)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = s.do(t, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{
		Name: "Jo Again", Username: "jo2", Email: "jo@example.com", Password: "password123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{"name": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: "jo@example.com", Password: "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/v1/me", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/v1/me", "not-a-token", nil).Code)
}

func TestWorkoutFlow(t *testing.T) {
	s := newTestServer(t)
	_, token := s.signup(t, "lifter")
	_, otherToken := s.signup(t, "other")

	rec := s.do(t, http.MethodGet, "/api/v1/catalog/body-parts", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Back", "Chest"}, decode[[]string](t, rec))

	rec = s.do(t, http.MethodPost, "/api/v1/workouts", token, GenerateWorkoutRequest{
		DurationMinutes: 45, Difficulty: "medium", BodyParts: []string{"Chest", "Back"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	workout := decode[domain.DailyWorkout](t, rec)
	require.Len(t, workout.Exercises, 3)

	rec = s.do(t, http.MethodPost, "/api/v1/workouts", token, GenerateWorkoutRequest{
		DurationMinutes: 45, Difficulty: "brutal", BodyParts: []string{"Chest"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/workouts", token, GenerateWorkoutRequest{
		DurationMinutes: 45, Difficulty: "easy", BodyParts: []string{"Neck"},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/workouts/"+workout.ID, token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/v1/workouts/missing", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// sets
	exercise := workout.Exercises[0]
	var update UpdateSetResponse
	for _, set := range exercise.Sets {
		path := fmt.Sprintf("/api/v1/exercises/%s/sets/%d", exercise.ID, set.SetNumber)
		rec = s.do(t, http.MethodPut, path, token, UpdateSetRequest{Weight: 40, Reps: 10, Completed: true})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		update = decode[UpdateSetResponse](t, rec)
	}
	assert.True(t, update.ExerciseCompleted)

	rec = s.do(t, http.MethodPut, "/api/v1/exercises/"+exercise.ID+"/sets/abc", token, UpdateSetRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(t, http.MethodPut, "/api/v1/exercises/"+exercise.ID+"/sets/1", token, UpdateSetRequest{Weight: -5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(t, http.MethodPut, "/api/v1/exercises/"+exercise.ID+"/sets/1", otherToken, UpdateSetRequest{Completed: true})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// copy into this week, then complete it
	rec = s.do(t, http.MethodPost, "/api/v1/workouts/"+workout.ID+"/copy", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	copied := decode[domain.DailyWorkout](t, rec)
	require.NotNil(t, copied.WeeklyWorkoutID)

	rec = s.do(t, http.MethodPost, "/api/v1/workouts/"+copied.ID+"/complete", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[CompleteWorkoutResponse](t, rec).WeekCompleted)

	rec = s.do(t, http.MethodPost, "/api/v1/workouts/"+copied.ID+"/complete", otherToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/workouts/week", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.DailyWorkout](t, rec), 2)

	rec = s.do(t, http.MethodGet, "/api/v1/stats", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[domain.WorkoutStats](t, rec)
	assert.Equal(t, 2, stats.WeeklyWorkouts)
	assert.Equal(t, 1, stats.CompletedWorkouts)
	assert.Equal(t, 50, stats.CompletionRate)
	assert.Nil(t, stats.Partner)

	// favorites
	rec = s.do(t, http.MethodPut, "/api/v1/workouts/"+workout.ID+"/favorite", token, gin.H{"isFavorite": true})
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(t, http.MethodPut, "/api/v1/workouts/"+workout.ID+"/favorite", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/v1/workouts/favorites", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	favorites := decode[[]domain.DailyWorkout](t, rec)
	require.Len(t, favorites, 1)
	assert.Equal(t, workout.ID, favorites[0].ID)

	// delete
	rec = s.do(t, http.MethodDelete, "/api/v1/workouts/"+workout.ID, token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/v1/workouts/"+workout.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPartnerFlow(t *testing.T) {
	s := newTestServer(t)
	aliceID, aliceToken := s.signup(t, "alice")
	bobID, bobToken := s.signup(t, "bob")

	rec := s.do(t, http.MethodGet, "/api/v1/users/search?q=bo", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	found := decode[[]domain.PublicProfile](t, rec)
	require.Len(t, found, 1)
	assert.Equal(t, bobID, found[0].ID)

	rec = s.do(t, http.MethodGet, "/api/v1/users/search", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/v1/partners/invites", aliceToken, SendInviteRequest{TargetID: bobID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	link := decode[domain.PartnerLink](t, rec)

	rec = s.do(t, http.MethodPost, "/api/v1/partners/invites", bobToken, SendInviteRequest{TargetID: aliceID})
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec = s.do(t, http.MethodPost, "/api/v1/partners/invites", aliceToken, SendInviteRequest{TargetID: aliceID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/v1/partners/invites/"+link.ID, aliceToken, RespondInviteRequest{Status: "accepted"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(t, http.MethodPut, "/api/v1/partners/invites/"+link.ID, bobToken, RespondInviteRequest{Status: "pending"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(t, http.MethodPut, "/api/v1/partners/invites/"+link.ID, bobToken, RespondInviteRequest{Status: "accepted"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PartnerAccepted, decode[domain.PartnerLink](t, rec).Status)

	rec = s.do(t, http.MethodGet, "/api/v1/partners", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	partners := decode[domain.Partners](t, rec)
	require.Len(t, partners.Received, 1)
	assert.Equal(t, "alice", partners.Received[0].Counterpart.Username)

	rec = s.do(t, http.MethodGet, "/api/v1/partners/"+bobID+"/week", aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "bob has no weekly workout yet")

	rec = s.do(t, http.MethodPost, "/api/v1/workouts", bobToken, GenerateWorkoutRequest{
		DurationMinutes: 30, Difficulty: "easy", BodyParts: []string{"Back"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	source := decode[domain.DailyWorkout](t, rec)
	rec = s.do(t, http.MethodPost, "/api/v1/workouts/"+source.ID+"/copy", bobToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/partners/"+bobID+"/week", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	week := decode[domain.WeeklyWorkout](t, rec)
	assert.Len(t, week.Workouts, 1)

	rec = s.do(t, http.MethodGet, "/api/v1/stats", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[domain.WorkoutStats](t, rec)
	require.NotNil(t, stats.Partner)
	assert.Equal(t, bobID, stats.Partner.UserID)
	assert.Equal(t, 1, stats.Partner.WeeklyWorkouts)

	rec = s.do(t, http.MethodDelete, "/api/v1/partners/invites/"+link.ID, aliceToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/v1/partners/"+bobID+"/week", aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/ping", "", nil)

	rec := s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "gymbuddy_test_server_request")
	assert.Contains(t, rec.Body.String(), `route="/ping"`)
}

func TestPanicRecovery(t *testing.T) {
	manager := metrics.NewTestManager()
	router := gin.New()
	router.Use(PanicRecovery(manager))
	router.GET("/boom", func(c *gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"An unexpected error occurred"}`, rec.Body.String())
}
