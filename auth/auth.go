package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"tastygram/db"
	"tastygram/middleware"
	"tastygram/models"
	"tastygram/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"userType"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token        string      `json:"token"`
	RefreshToken string      `json:"refreshToken"`
	User         models.User `json:"user"`
}

func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || len(req.Password) < 6 {
		utils.RespondWithError(w, http.StatusBadRequest, "username and a password of at least 6 characters are required")
		return
	}

	if req.UserType == "" {
		req.UserType = models.RoleUser
	}
	if !models.ValidRole(req.UserType) || req.UserType == models.RoleAdmin {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user type")
		return
	}

	count, err := db.UserCollection.CountDocuments(ctx, bson.M{"username": req.Username})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "error checking username")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "username already taken")
		return
	}

	if req.Email != "" {
		count, err = db.UserCollection.CountDocuments(ctx, bson.M{"email": req.Email})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "error checking email")
			return
		}
		if count > 0 {
			utils.RespondWithError(w, http.StatusConflict, "email already registered")
			return
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user := models.User{
		ID:             primitive.NewObjectID(),
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: string(hashed),
		Role:           req.UserType,
		Name:           req.Username,
		CreatedAt:      time.Now(),
	}
	user.UserID = user.ID.Hex()

	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "user creation failed")
		return
	}

	token, refreshToken, err := middleware.GenerateTokens(user.UserID, user.Username, user.Role)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to issue tokens")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, tokenResponse{
		Token:        token,
		RefreshToken: refreshToken,
		User:         user,
	})
}

func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"username": strings.TrimSpace(req.Username)}).Decode(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)) != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, refreshToken, err := middleware.GenerateTokens(user.UserID, user.Username, user.Role)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to issue tokens")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, tokenResponse{
		Token:        token,
		RefreshToken: refreshToken,
		User:         user,
	})
}

// RefreshToken exchanges a valid refresh token for a fresh pair.
func RefreshToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "refresh token required")
		return
	}

	claims, err := middleware.ValidateToken(req.RefreshToken)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "invalid or expired refresh token")
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userId": claims.UserID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "account no longer exists")
		return
	}

	token, refreshToken, err := middleware.GenerateTokens(user.UserID, user.Username, user.Role)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to issue tokens")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, tokenResponse{
		Token:        token,
		RefreshToken: refreshToken,
		User:         user,
	})
}

// Logout is stateless on the server; clients drop their tokens.
func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "logged out"})
}
