package middleware

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/config"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/repository"
	"github.com/clerk/clerk-sdk-go/v2"
	clerkjwt "github.com/clerk/clerk-sdk-go/v2/jwt"
	"github.com/clerk/clerk-sdk-go/v2/user"
	"github.com/gin-gonic/gin"
	svix "github.com/svix/svix-webhooks/go"
)

var userClient *user.Client

// InitClerk initializes the Clerk client using the recommended pattern
func InitClerk(c *config.Config) {
	if c.Clerk.SecretKey == "" {
		log.Printf("WARNING: CLERK_SECRET_KEY is not set. Clerk features will be disabled.")
		return
	}

	clerk.SetKey(c.Clerk.SecretKey)

	clientConfig := &clerk.ClientConfig{}
	clientConfig.Key = &c.Clerk.SecretKey
	userClient = user.NewClient(clientConfig)

	log.Printf("Clerk initialized successfully")
}

// ClerkAuthMiddleware validates Clerk session tokens and stores the user id
// in the gin context. Every request re-validates the credential.
func ClerkAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userClient == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Clerk authentication not available"})
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token no proporcionado"})
			c.Abort()
			return
		}

		tokenString := strings.Replace(authHeader, "Bearer ", "", 1)

		claims, err := clerkjwt.Verify(c.Request.Context(), &clerkjwt.VerifyParams{
			Token: tokenString,
		})
		if err != nil {
			log.Printf("JWT verification failed: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
			c.Abort()
			return
		}

		userID := claims.Subject
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido: no se pudo extraer el ID del usuario"})
			c.Abort()
			return
		}

		c.Set("userId", userID)
		c.Set("clerkClaims", claims)
		c.Next()
	}
}

// ClerkWebhookHandler verifies and processes Clerk user events using Svix
func ClerkWebhookHandler(c *gin.Context) {
	if cfg.Clerk.WebhookSecret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook secret not configured"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read request body"})
		return
	}

	wh, err := svix.NewWebhook(cfg.Clerk.WebhookSecret)
	if err != nil {
		log.Printf("Error creating Svix webhook: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initialize webhook verification"})
		return
	}

	if err := wh.Verify(body, c.Request.Header); err != nil {
		log.Printf("Svix webhook verification failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid webhook signature"})
		return
	}

	var webhookData map[string]interface{}
	if err := json.Unmarshal(body, &webhookData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON payload"})
		return
	}

	eventType, ok := webhookData["type"].(string)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing event type"})
		return
	}

	log.Printf("Processing webhook event: %s", eventType)

	switch eventType {
	case "user.created":
		handleUserCreated(c, webhookData)
	case "user.updated":
		handleUserUpdated(c, webhookData)
	case "user.deleted":
		handleUserDeleted(c, webhookData)
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Event received but not handled"})
	}
}

// extractUserFromWebhook saca id, email y nombre del payload de Clerk
func extractUserFromWebhook(webhookData map[string]interface{}) (id, email, name string, ok bool) {
	data, valid := webhookData["data"].(map[string]interface{})
	if !valid {
		return "", "", "", false
	}

	id, valid = data["id"].(string)
	if !valid {
		return "", "", "", false
	}

	if emailAddresses, valid := data["email_addresses"].([]interface{}); valid {
		for _, emailAddr := range emailAddresses {
			if emailMap, isMap := emailAddr.(map[string]interface{}); isMap {
				if addr, isStr := emailMap["email_address"].(string); isStr && addr != "" {
					email = addr
					break
				}
			}
		}
	}

	firstName, _ := data["first_name"].(string)
	lastName, _ := data["last_name"].(string)
	name = strings.TrimSpace(firstName + " " + lastName)
	if name == "" && email != "" {
		name = strings.Split(email, "@")[0]
	}

	return id, email, name, true
}

func handleUserCreated(c *gin.Context, webhookData map[string]interface{}) {
	id, email, name, ok := extractUserFromWebhook(webhookData)
	if !ok || email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook data structure"})
		return
	}

	newUser := &models.User{
		ID:        id,
		Email:     email,
		Name:      name,
		Password:  "", // Los usuarios de Clerk no tienen contraseña local
		CreatedAt: time.Now(),
	}

	if err := repository.NewUserRepository().CreateUser(newUser); err != nil {
		log.Printf("Error creating user in database: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	log.Printf("User created: ID=%s, Email=%s", id, email)
	c.JSON(http.StatusOK, gin.H{"message": "User created successfully"})
}

func handleUserUpdated(c *gin.Context, webhookData map[string]interface{}) {
	id, email, name, ok := extractUserFromWebhook(webhookData)
	if !ok || email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook data structure"})
		return
	}

	updated := &models.User{
		ID:    id,
		Email: email,
		Name:  name,
	}

	if err := repository.NewUserRepository().UpdateUser(updated); err != nil {
		log.Printf("Error updating user in database: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	log.Printf("User updated: ID=%s, Email=%s", id, email)
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

func handleUserDeleted(c *gin.Context, webhookData map[string]interface{}) {
	data, ok := webhookData["data"].(map[string]interface{})
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook data structure"})
		return
	}

	userID, ok := data["id"].(string)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user ID"})
		return
	}

	if err := repository.NewUserRepository().DeleteUser(userID); err != nil {
		log.Printf("Error deleting user from database: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	log.Printf("User deleted: ID=%s", userID)
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
