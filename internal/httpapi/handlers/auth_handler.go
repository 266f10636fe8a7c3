package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"attendance-monitor/internal/auth"
	"attendance-monitor/internal/httpapi/util"
)

var validate = validator.New()

// AuthHandler exposes the login, registration and password reset endpoints.
type AuthHandler struct {
	Auth *auth.Service
}

// RESTLoginRequest mirrors the expected JSON input for /auth/login.
// Professors send username+password; students send surname+student_number.
type RESTLoginRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	Surname       string `json:"surname"`
	StudentNumber string `json:"student_number"`
}

// RESTForgotPasswordRequest mirrors the expected JSON input for /auth/forgot-password
type RESTForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RESTResetPasswordRequest mirrors the expected JSON input for /auth/reset-password
type RESTResetPasswordRequest struct {
	Email       string `json:"email"`
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// Login handles POST /auth/login for both roles. The credential shape picks
// the role: username/password for professors, surname/student number for
// students.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req RESTLoginRequest
	if err := util.DecodeJSON(r, &req); err != nil {
		util.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	var (
		result interface{}
		err    error
	)
	switch {
	case req.Username != "":
		result, err = h.Auth.LoginProfessor(r.Context(), req.Username, req.Password)
	case req.StudentNumber != "":
		result, err = h.Auth.LoginStudent(r.Context(), req.Surname, req.StudentNumber)
	default:
		util.WriteJSONError(w, http.StatusBadRequest, "Credentials required")
		return
	}
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, result)
}

// Register handles POST /auth/register for new professor accounts.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterInput
	if err := util.DecodeJSON(r, &req); err != nil {
		util.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	professor, err := h.Auth.RegisterProfessor(r.Context(), req)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusCreated, professor)
}

// ForgotPassword handles POST /auth/forgot-password. The response is the
// same whether or not the email maps to an account.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req RESTForgotPasswordRequest
	if err := util.DecodeJSON(r, &req); err != nil {
		util.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	if err := h.Auth.ForgotPassword(r.Context(), req.Email); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "If an account exists for that email, a reset link has been sent.",
	})
}

// ResetPassword handles POST /auth/reset-password.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req RESTResetPasswordRequest
	if err := util.DecodeJSON(r, &req); err != nil {
		util.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	if err := h.Auth.ResetPassword(r.Context(), req.Email, req.Token, req.NewPassword); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Password has been reset. You can now log in.",
	})
}
