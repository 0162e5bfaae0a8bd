package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"class-timetable/internal/api/middleware"
	"class-timetable/internal/domain/schedule"

	"github.com/gin-gonic/gin"
)

type fakeScheduleService struct {
	addErr    error
	removeErr error
	listErr   error
	getErr    error
	lastInput schedule.AddLectureInput
	lastUser  string
}

func (f *fakeScheduleService) AddLecture(ctx context.Context, userID string, input schedule.AddLectureInput) (*schedule.Enrollment, error) {
	f.lastUser = userID
	f.lastInput = input
	if f.addErr != nil {
		return nil, f.addErr
	}
	return &schedule.Enrollment{
		ID: "E1", UserID: userID, LectureID: input.LectureID, TimeSlotID: input.TimeSlotID,
		DayOfWeek: *input.DayOfWeek, Classroom: input.Classroom,
	}, nil
}

func (f *fakeScheduleService) RemoveLecture(ctx context.Context, userID, lectureID string) error {
	f.lastUser = userID
	return f.removeErr
}

func (f *fakeScheduleService) ListLectures(ctx context.Context, userID string) (schedule.WeeklySchedule, error) {
	f.lastUser = userID
	if f.listErr != nil {
		return schedule.WeeklySchedule{}, f.listErr
	}
	week := schedule.NewWeeklySchedule()
	week[1] = append(week[1], schedule.ScheduleEntry{LectureID: "L1", Classroom: "R101"})
	return week, nil
}

func (f *fakeScheduleService) GetLecture(ctx context.Context, lectureID string) (*schedule.Lecture, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &schedule.Lecture{ID: lectureID, LectureName: "Algorithms"}, nil
}

// withUser stands in for JWTAuth.
func withUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
}

func newScheduleEngine(svc *fakeScheduleService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewScheduleHandler(svc)

	r := gin.New()
	r.GET("/schedule", withUser("u1"), h.GetSchedule)
	r.GET("/schedule/:lectureId", h.GetLecture)
	r.POST("/schedule/:lectureId", withUser("u1"), h.AddLecture)
	r.DELETE("/schedule/:lectureId", withUser("u1"), h.RemoveLecture)
	return r
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestScheduleHandler_AddLecture(t *testing.T) {
	svc := &fakeScheduleService{}
	r := newScheduleEngine(svc)

	w := doJSON(r, http.MethodPost, "/schedule/L1", map[string]any{
		"timeSlotId": "T1", "dayOfWeek": 0, "classroom": "R101",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	if svc.lastUser != "u1" {
		t.Errorf("Expected user u1, got %q", svc.lastUser)
	}
	if svc.lastInput.LectureID != "L1" || svc.lastInput.TimeSlotID != "T1" {
		t.Errorf("Unexpected input %+v", svc.lastInput)
	}
	if svc.lastInput.DayOfWeek == nil || *svc.lastInput.DayOfWeek != 0 {
		t.Errorf("Expected day 0 to be forwarded, got %v", svc.lastInput.DayOfWeek)
	}
}

func TestScheduleHandler_AddLectureValidation(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{"missing day", map[string]any{"timeSlotId": "T1"}},
		{"day out of range", map[string]any{"timeSlotId": "T1", "dayOfWeek": 7}},
		{"negative day", map[string]any{"timeSlotId": "T1", "dayOfWeek": -1}},
		{"missing slot", map[string]any{"dayOfWeek": 2}},
		{"malformed", "not-an-object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeScheduleService{}
			w := doJSON(newScheduleEngine(svc), http.MethodPost, "/schedule/L1", tt.body)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d: %s", w.Code, w.Body.String())
			}
			if svc.lastUser != "" {
				t.Error("Expected service not to be called")
			}
		})
	}
}

func TestScheduleHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantStatus   int
		wantConflict string
	}{
		{"invalid input", schedule.InvalidInputf("classroom is too long"), http.StatusBadRequest, ""},
		{"unauthenticated", schedule.ErrUnauthenticated, http.StatusUnauthorized, ""},
		{"lecture not found", schedule.ErrLectureNotFound, http.StatusNotFound, ""},
		{"time slot not found", schedule.ErrTimeSlotNotFound, http.StatusNotFound, ""},
		{"already enrolled", schedule.ErrAlreadyEnrolled, http.StatusConflict, ""},
		{"time conflict", &schedule.TimeConflictError{ConflictLectureID: "L9"}, http.StatusConflict, "L9"},
		{"storage failure", schedule.StorageError("insert enrollment", errors.New("disk full")), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeScheduleService{addErr: tt.err}
			w := doJSON(newScheduleEngine(svc), http.MethodPost, "/schedule/L1", map[string]any{
				"timeSlotId": "T1", "dayOfWeek": 3,
			})

			if w.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			resp := decode(t, w)
			if resp.Success {
				t.Error("Expected success to be false")
			}
			if resp.ConflictLecture != tt.wantConflict {
				t.Errorf("Expected conflictLecture %q, got %q", tt.wantConflict, resp.ConflictLecture)
			}
			if tt.wantStatus == http.StatusInternalServerError && resp.Message != "Internal server error" {
				t.Errorf("Expected generic message, got %q", resp.Message)
			}
		})
	}
}

func TestScheduleHandler_GetSchedule(t *testing.T) {
	w := doJSON(newScheduleEngine(&fakeScheduleService{}), http.MethodGet, "/schedule", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var body struct {
		Data map[string][]schedule.ScheduleEntry `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if len(body.Data) != schedule.DaysInWeek {
		t.Fatalf("Expected %d days, got %d", schedule.DaysInWeek, len(body.Data))
	}
	if len(body.Data["1"]) != 1 || body.Data["1"][0].LectureID != "L1" {
		t.Errorf("Expected L1 on day 1, got %+v", body.Data["1"])
	}
	if body.Data["0"] == nil {
		t.Error("Expected empty days to be present as arrays")
	}
}

func TestScheduleHandler_RemoveLecture(t *testing.T) {
	w := doJSON(newScheduleEngine(&fakeScheduleService{}), http.MethodDelete, "/schedule/L1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	w = doJSON(newScheduleEngine(&fakeScheduleService{removeErr: schedule.ErrNotEnrolled}), http.MethodDelete, "/schedule/L1", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestScheduleHandler_GetLecture(t *testing.T) {
	w := doJSON(newScheduleEngine(&fakeScheduleService{}), http.MethodGet, "/schedule/L1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	w = doJSON(newScheduleEngine(&fakeScheduleService{getErr: schedule.ErrLectureNotFound}), http.MethodGet, "/schedule/L404", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}

	w = doJSON(newScheduleEngine(&fakeScheduleService{}), http.MethodGet, "/schedule/%20", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for blank id, got %d", w.Code)
	}
}
