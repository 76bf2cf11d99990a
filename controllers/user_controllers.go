package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/client"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/session"
	"github.com/yeremiapane/restaurant-pos/utils"
)

var errNoToken = errors.New("backend did not return a token")

type UserController struct {
	API     *client.Client
	Session *session.Store
}

func NewUserController(api *client.Client, store *session.Store) *UserController {
	return &UserController{API: api, Session: store}
}

// Login exchanges credentials for a backend token and keeps it in the
// terminal's session.
func (uc *UserController) Login(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	auth, err := uc.API.Login(c.Request.Context(), creds)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if auth.Token == "" {
		utils.RespondError(c, http.StatusBadGateway, errNoToken)
		return
	}
	if err := uc.Session.SetToken(auth.Token); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("User logged in: %s", creds.Email)
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{"user": auth.User})
}

func (uc *UserController) Signup(c *gin.Context) {
	var form models.SignupForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := uc.API.Signup(c.Request.Context(), form); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.Printf("New shop registered: %s", form.ShopName)
	utils.RespondJSON(c, http.StatusCreated, "Signup successful, please log in", gin.H{"redirect": "/login"})
}

func (uc *UserController) Logout(c *gin.Context) {
	if err := uc.Session.Logout(); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Logged out", gin.H{"redirect": "/login"})
}

func (uc *UserController) Profile(c *gin.Context) {
	profile, err := uc.API.Profile(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Profile", profile)
}
