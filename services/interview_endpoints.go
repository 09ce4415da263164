package services

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/krshsl/interview-simulator/backend/models"
)

// PreferenceRepository is the persistence the interview endpoints need
type PreferenceRepository interface {
	CreatePreference(ctx context.Context, pref *models.InterviewPreference) error
}

type InterviewEndpoints struct {
	repo      PreferenceRepository
	questions *QuestionGenerator
	feedback  *FeedbackGenerator
}

type CreatePreferenceRequest struct {
	Domain        *string `json:"domain"`
	Difficulty    *string `json:"difficulty"`
	InterviewType *string `json:"interview_type"`
}

type GenerateQuestionsRequest struct {
	Domain        string `json:"domain"`
	Difficulty    string `json:"difficulty"`
	InterviewType string `json:"interview_type"`
}

type GenerateQuestionsResponse struct {
	Questions []string `json:"questions"`
}

type FeedbackRequest struct {
	UserAnswer string `json:"user_answer"`
	Question   string `json:"question"`
}

func NewInterviewEndpoints(repo PreferenceRepository, questions *QuestionGenerator, feedback *FeedbackGenerator) *InterviewEndpoints {
	return &InterviewEndpoints{
		repo:      repo,
		questions: questions,
		feedback:  feedback,
	}
}

func (e *InterviewEndpoints) RegisterRoutes(r chi.Router) {
	r.Post("/preferences", e.CreatePreferenceHandler)
	r.Post("/questions/generate", e.GenerateQuestionsHandler)
	r.Post("/feedback", e.FeedbackHandler)
}

func (e *InterviewEndpoints) CreatePreferenceHandler(w http.ResponseWriter, r *http.Request) {
	var req CreatePreferenceRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fieldErrors := map[string][]string{}
	domain := validateCharField(fieldErrors, "domain", req.Domain)
	difficulty := validateCharField(fieldErrors, "difficulty", req.Difficulty)
	interviewType := validateCharField(fieldErrors, "interview_type", req.InterviewType)
	if len(fieldErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, fieldErrors)
		return
	}

	pref := models.InterviewPreference{
		Domain:        domain,
		Difficulty:    difficulty,
		InterviewType: interviewType,
	}
	if err := e.repo.CreatePreference(r.Context(), &pref); err != nil {
		slog.Error("Failed to create interview preference", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create preference")
		return
	}

	writeJSON(w, http.StatusCreated, pref)
}

func (e *InterviewEndpoints) GenerateQuestionsHandler(w http.ResponseWriter, r *http.Request) {
	var req GenerateQuestionsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Domain == "" || req.Difficulty == "" || req.InterviewType == "" {
		writeError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	questions := e.questions.GenerateQuestions(r.Context(), req.Domain, req.Difficulty, req.InterviewType)
	writeJSON(w, http.StatusOK, GenerateQuestionsResponse{Questions: questions})
}

func (e *InterviewEndpoints) FeedbackHandler(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.UserAnswer == "" || req.Question == "" {
		writeError(w, http.StatusBadRequest, "user_answer and question required")
		return
	}

	scored := e.feedback.ScoreAnswer(r.Context(), req.UserAnswer, req.Question)
	writeJSON(w, http.StatusOK, scored)

	slog.Info("Answer scored", "score", scored.Score)
}

// validateCharField trims value and records an error for missing, blank or
// oversized input
func validateCharField(fieldErrors map[string][]string, name string, value *string) string {
	if value == nil {
		fieldErrors[name] = []string{"This field is required."}
		return ""
	}
	v := strings.TrimSpace(*value)
	if v == "" {
		fieldErrors[name] = []string{"This field may not be blank."}
		return ""
	}
	if utf8.RuneCountInString(v) > models.PreferenceFieldMaxLength {
		fieldErrors[name] = []string{"Ensure this field has no more than 100 characters."}
		return ""
	}
	return v
}
