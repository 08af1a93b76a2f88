package controllers

import (
	"net/http"
	"time"

	"github.com/paddock-dev/paddock/app/models"
	"github.com/paddock-dev/paddock/app/services"
	"github.com/paddock-dev/paddock/config"
	"github.com/paddock-dev/paddock/pkg/auth"
	"github.com/paddock-dev/paddock/pkg/middleware"
	"github.com/paddock-dev/paddock/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

type sessionPayload struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// Register handles POST /register.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		response.Error(w, http.StatusBadRequest, "malformed form body")
		return
	}

	form := services.RegisterForm{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
		Role:     r.FormValue("role"),
	}

	user, token, err := c.service.Register(r.Context(), form)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	setSessionCookie(w, token)
	response.Created(w, sessionPayload{User: user, Token: token})
}

// Login handles POST /login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		response.Error(w, http.StatusBadRequest, "malformed form body")
		return
	}

	user, token, err := c.service.Login(r.Context(), r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	setSessionCookie(w, token)
	response.Success(w, sessionPayload{User: user, Token: token})
}

// Logout handles GET /logout. Route middleware guarantees a session.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromCtx(r.Context())

	if err := c.service.Logout(r.Context(), claims); err != nil {
		writeServiceError(w, err)
		return
	}

	clearSessionCookie(w)
	response.Success(w, map[string]string{"message": "logged out"})
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionTTL / time.Second),
		HttpOnly: true,
		Secure:   config.AppEnv() == "production",
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
