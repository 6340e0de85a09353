package handlers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chefit/chefit-api/internal/models"
	"github.com/chefit/chefit-api/internal/utils"
)

type SignupRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	BirthDate string `json:"birthDate" binding:"required"` // YYYY-MM-DD
	Sex       string `json:"sex" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

// setSessionCookie issues the JWT as a cross-site httpOnly cookie. The SPA
// runs on a different origin, hence SameSite=None + Secure.
func setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie("token", token, 7*24*60*60, "/", "", true, true)
}

// verificationCodeFilter matches a user holding the code whose expiry is
// still in the future. Codes live 24 hours; after that the $gt clause stops
// matching and the code is dead.
func verificationCodeFilter(code string, now time.Time) bson.M {
	return bson.M{
		"verificationToken":          code,
		"verificationTokenExpiresAt": bson.M{"$gt": now},
	}
}

// resetTokenFilter is the same shape for the 1-hour password reset token.
func resetTokenFilter(token string, now time.Time) bson.M {
	return bson.M{
		"resetPasswordToken":          token,
		"resetPasswordTokenExpiresAt": bson.M{"$gt": now},
	}
}

func ageFromBirthDate(birthDate, now time.Time) int {
	age := now.Year() - birthDate.Year()
	if now.YearDay() < birthDate.YearDay() {
		age--
	}
	return age
}

func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid birth date, use YYYY-MM-DD"})
		return
	}
	if ageFromBirthDate(birthDate, time.Now()) < 20 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "You must be at least 20 years old to sign up."})
		return
	}

	ctx := c.Request.Context()
	count, err := h.users().CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to check existing users"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
		return
	}

	now := time.Now()
	verificationToken := utils.GenerateAccessCode()
	verificationExpiry := now.Add(24 * time.Hour)

	user := models.User{
		ID:                         primitive.NewObjectID(),
		FirstName:                  req.FirstName,
		LastName:                   req.LastName,
		BirthDate:                  birthDate,
		Sex:                        req.Sex,
		Email:                      req.Email,
		Password:                   hashedPassword,
		Role:                       "user",
		VerificationToken:          verificationToken,
		VerificationTokenExpiresAt: &verificationExpiry,
		CreatedAt:                  now,
		UpdatedAt:                  now,
	}

	if _, err := h.users().InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create user"})
		return
	}

	// Session starts immediately; verification gates features, not login.
	token, err := utils.GenerateJWT(h.JWTSecret, user.ID.Hex(), user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not generate token"})
		return
	}
	setSessionCookie(c, token)

	if err := h.Mail.SendVerificationEmail(user.Email, verificationToken); err != nil {
		log.Printf("Failed to send verification email to %s: %v", user.Email, err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User created successfully",
		"user":    user,
		"verificationData": gin.H{
			"email":     user.Email,
			"expiresAt": verificationExpiry,
		},
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	var user models.User
	err := h.users().FindOne(c.Request.Context(), bson.M{"email": req.Email}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}
	if !utils.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Incorrect password"})
		return
	}

	if !user.IsVerified {
		c.JSON(http.StatusOK, gin.H{
			"success":              true,
			"requiresVerification": true,
			"message":              "Account requires verification",
			"email":                user.Email,
			"expiresAt":            user.VerificationTokenExpiresAt,
		})
		return
	}

	token, err := utils.GenerateJWT(h.JWTSecret, user.ID.Hex(), user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not generate token"})
		return
	}
	setSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
		"token":   token,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie("token", "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

func (h *Handler) VerifyEmail(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Verification code is required"})
		return
	}

	ctx := c.Request.Context()
	var user models.User
	err := h.users().FindOne(ctx, verificationCodeFilter(req.Code, time.Now())).Decode(&user)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid / Expired verification code"})
		return
	}

	_, err = h.users().UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$set":   bson.M{"isVerified": true, "updatedAt": time.Now()},
		"$unset": bson.M{"verificationToken": "", "verificationTokenExpiresAt": ""},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to verify account"})
		return
	}

	if err := h.Mail.SendWelcomeEmail(user.Email); err != nil {
		log.Printf("Failed to send welcome email to %s: %v", user.Email, err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}

	ctx := c.Request.Context()
	var user models.User
	if err := h.users().FindOne(ctx, bson.M{"email": req.Email}).Decode(&user); err != nil {
		// Same response either way so the endpoint can't be used to probe emails.
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "If the email exists, a reset link has been sent"})
		return
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate reset token"})
		return
	}
	resetToken := hex.EncodeToString(buf)
	expiry := time.Now().Add(1 * time.Hour)

	_, err := h.users().UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$set": bson.M{
			"resetPasswordToken":          resetToken,
			"resetPasswordTokenExpiresAt": expiry,
			"updatedAt":                   time.Now(),
		},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to store reset token"})
		return
	}

	resetURL := h.ClientURL + "/reset_password/" + resetToken
	if err := h.Mail.SendPasswordResetEmail(user.Email, resetURL); err != nil {
		log.Printf("Failed to send password reset email to %s: %v", user.Email, err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "If the email exists, a reset link has been sent"})
}

func (h *Handler) ResetPassword(c *gin.Context) {
	token := c.Param("token")
	var req struct {
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "A new password of at least 8 characters is required"})
		return
	}

	ctx := c.Request.Context()
	var user models.User
	err := h.users().FindOne(ctx, resetTokenFilter(token, time.Now())).Decode(&user)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid / Expired token"})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
		return
	}

	_, err = h.users().UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$set":   bson.M{"password": hashedPassword, "updatedAt": time.Now()},
		"$unset": bson.M{"resetPasswordToken": "", "resetPasswordTokenExpiresAt": ""},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to reset password"})
		return
	}

	if err := h.Mail.SendPasswordResetSuccessEmail(user.Email); err != nil {
		log.Printf("Failed to send reset success email to %s: %v", user.Email, err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset successfully"})
}

func (h *Handler) CheckResetToken(c *gin.Context) {
	token := c.Param("token")
	count, err := h.users().CountDocuments(c.Request.Context(), resetTokenFilter(token, time.Now()))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to check token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": count > 0})
}

func (h *Handler) CheckAuth(c *gin.Context) {
	userIDHex, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}
	userID, err := primitive.ObjectIDFromHex(userIDHex.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID format"})
		return
	}

	var user models.User
	err = h.users().FindOne(context.TODO(), bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}
