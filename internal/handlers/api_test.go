package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lenslink/lenslink-backend/internal/config"
	"github.com/lenslink/lenslink-backend/internal/middleware"
	"github.com/lenslink/lenslink-backend/internal/models"
	"github.com/lenslink/lenslink-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.PhotographerProfile{},
		&models.Booking{},
		&models.Notification{},
	))

	cfg := &config.Config{
		Auth: config.AuthConfig{
			AccessTokenTTL:  time.Hour,
			RefreshTokenTTL: time.Hour,
		},
	}

	bookingService := services.NewBookingService(db)
	notificationService := services.NewNotificationService(db)
	photographerService := services.NewPhotographerService(db)

	r := gin.New()
	r.GET("/health", Health())

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", Signup(db))
			auth.POST("/login", Login(db, cfg))
			auth.GET("/me", middleware.AuthMiddleware(), Me(db))
		}

		api.GET("/photographers", ListPhotographers(photographerService))
		api.GET("/photographers/:id", GetPhotographer(photographerService))

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/photographers/me", GetMyProfile(db, photographerService))
			protected.PATCH("/photographers/me", UpdateMyProfile(db, photographerService))

			protected.POST("/bookings", CreateBooking(db, bookingService))
			protected.GET("/bookings/me", GetMyBookings(db, bookingService))
			protected.PATCH("/bookings/:id", UpdateBookingStatus(db, bookingService))
			protected.PUT("/bookings/:id/complete", CompleteBooking(db, bookingService))

			protected.GET("/notifications/me", GetMyNotifications(db, notificationService))
			protected.PATCH("/notifications/:id/read", MarkNotificationRead(db, notificationService))
		}
	}

	return r, db
}

func doRequest(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		jsonData, _ := json.Marshal(body)
		reader = bytes.NewBuffer(jsonData)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signupAndLogin(t *testing.T, r *gin.Engine, email, role string) string {
	t.Helper()

	w := doRequest(r, "POST", "/api/auth/signup", "", gin.H{
		"email":       email,
		"password":    "supersecret1",
		"displayName": email,
		"role":        role,
	})
	require.Equal(t, 201, w.Code, w.Body.String())

	w = doRequest(r, "POST", "/api/auth/login", "", gin.H{
		"email":    email,
		"password": "supersecret1",
	})
	require.Equal(t, 200, w.Code, w.Body.String())

	var out struct {
		Access string `json:"access"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(t, out.Access)
	return out.Access
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, "GET", "/health", "", nil)
	assert.Equal(t, 200, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestBookingLifecycleEndToEnd(t *testing.T) {
	r, _ := newTestRouter(t)

	customerToken := signupAndLogin(t, r, "c@x.com", "customer")
	photographerToken := signupAndLogin(t, r, "p@x.com", "photographer")

	var photographerID uint
	{
		w := doRequest(r, "GET", "/api/auth/me", photographerToken, nil)
		require.Equal(t, 200, w.Code)
		var me struct {
			ID uint `json:"id"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
		photographerID = me.ID
	}

	// Customer books the photographer.
	w := doRequest(r, "POST", "/api/bookings", customerToken, gin.H{
		"photographer": photographerID,
		"date":         "2030-01-01",
		"time":         "10:00:00",
	})
	require.Equal(t, 201, w.Code, w.Body.String())

	var booking struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
	assert.Equal(t, "pending", booking.Status)

	// Photographer accepts.
	w = doRequest(r, "PATCH", "/api/bookings/"+booking.ID, photographerToken, gin.H{
		"status": "accepted",
	})
	require.Equal(t, 200, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
	assert.Equal(t, "accepted", booking.Status)

	// Customer's inbox mentions the acceptance.
	w = doRequest(r, "GET", "/api/notifications/me", customerToken, nil)
	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "accepted")

	// Photographer completes.
	w = doRequest(r, "PUT", "/api/bookings/"+booking.ID+"/complete", photographerToken, nil)
	require.Equal(t, 200, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
	assert.Equal(t, "completed", booking.Status)

	w = doRequest(r, "GET", "/api/notifications/me", customerToken, nil)
	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "Booking completed")

	// Both sides see the booking in their own list.
	for _, token := range []string{customerToken, photographerToken} {
		w = doRequest(r, "GET", "/api/bookings/me", token, nil)
		require.Equal(t, 200, w.Code)
		var list []map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		assert.Len(t, list, 1)
	}
}

func TestBookingsMeRequiresAuth(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, "GET", "/api/bookings/me", "", nil)
	assert.Equal(t, 401, w.Code)
}

func TestCustomerCannotTransitionOwnBooking(t *testing.T) {
	r, _ := newTestRouter(t)

	customerToken := signupAndLogin(t, r, "c@x.com", "customer")
	signupAndLogin(t, r, "p@x.com", "photographer")

	var photographerID uint = 2

	w := doRequest(r, "POST", "/api/bookings", customerToken, gin.H{
		"photographer": photographerID,
		"date":         "2030-01-01",
		"time":         "10:00:00",
	})
	require.Equal(t, 201, w.Code, w.Body.String())

	var booking struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))

	w = doRequest(r, "PATCH", "/api/bookings/"+booking.ID, customerToken, gin.H{
		"status": "accepted",
	})
	assert.Equal(t, 403, w.Code)
}

func TestSignupValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		name string
		body gin.H
	}{
		{
			name: "missing role",
			body: gin.H{"email": "a@x.com", "password": "supersecret1"},
		},
		{
			name: "unknown role",
			body: gin.H{"email": "a@x.com", "password": "supersecret1", "role": "admin"},
		},
		{
			name: "short password",
			body: gin.H{"email": "a@x.com", "password": "short", "role": "customer"},
		},
		{
			name: "bad email",
			body: gin.H{"email": "not-an-email", "password": "supersecret1", "role": "customer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, "POST", "/api/auth/signup", "", tt.body)
			assert.Equal(t, 400, w.Code)
		})
	}

	// Duplicate email.
	w := doRequest(r, "POST", "/api/auth/signup", "", gin.H{
		"email": "dup@x.com", "password": "supersecret1", "role": "customer",
	})
	require.Equal(t, 201, w.Code)
	w = doRequest(r, "POST", "/api/auth/signup", "", gin.H{
		"email": "dup@x.com", "password": "supersecret1", "role": "photographer",
	})
	assert.Equal(t, 400, w.Code)
}

func TestMarkReadOnForeignNotificationIs404(t *testing.T) {
	r, _ := newTestRouter(t)

	customerToken := signupAndLogin(t, r, "c@x.com", "customer")
	photographerToken := signupAndLogin(t, r, "p@x.com", "photographer")

	w := doRequest(r, "POST", "/api/bookings", customerToken, gin.H{
		"photographer": 2,
		"date":         "2030-01-01",
		"time":         "10:00:00",
	})
	require.Equal(t, 201, w.Code, w.Body.String())

	// The creation notification belongs to the photographer.
	w = doRequest(r, "GET", "/api/notifications/me", photographerToken, nil)
	require.Equal(t, 200, w.Code)
	var notifications []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &notifications))
	require.Len(t, notifications, 1)

	// The customer probing it sees 404, not 403.
	w = doRequest(r, "PATCH", "/api/notifications/"+notifications[0].ID+"/read", customerToken, nil)
	assert.Equal(t, 404, w.Code)

	// The owner can mark it read, twice.
	for i := 0; i < 2; i++ {
		w = doRequest(r, "PATCH", "/api/notifications/"+notifications[0].ID+"/read", photographerToken, nil)
		require.Equal(t, 200, w.Code)
		assert.Contains(t, w.Body.String(), `"is_read":true`)
	}
}

func TestPhotographerDirectory(t *testing.T) {
	r, _ := newTestRouter(t)

	photographerToken := signupAndLogin(t, r, "p@x.com", "photographer")

	// First access creates the profile with defaults.
	w := doRequest(r, "GET", "/api/photographers/me", photographerToken, nil)
	require.Equal(t, 200, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"availableForBooking":true`)

	// It shows up in the public directory without auth.
	w = doRequest(r, "GET", "/api/photographers", "", nil)
	require.Equal(t, 200, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	// Going unavailable hides it.
	w = doRequest(r, "PATCH", "/api/photographers/me", photographerToken, gin.H{
		"availableForBooking": false,
	})
	require.Equal(t, 200, w.Code)

	w = doRequest(r, "GET", "/api/photographers", "", nil)
	require.Equal(t, 200, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 0)

	// Detail lookup stays public; customers have no profile at all.
	w = doRequest(r, "GET", "/api/photographers/1", "", nil)
	assert.Equal(t, 200, w.Code)

	customerToken := signupAndLogin(t, r, "c@x.com", "customer")
	w = doRequest(r, "GET", "/api/photographers/me", customerToken, nil)
	assert.Equal(t, 403, w.Code)
}
