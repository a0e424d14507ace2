package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"dialdesk/internal/api"
	"dialdesk/internal/auth"
	"dialdesk/internal/repository"
	"dialdesk/internal/service"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	tenantRepo := repository.NewTenantRepository(db)
	callRepo := repository.NewCallRepository(db)
	adminAuthRepo := repository.NewAdminAuthRepository(db)

	callSvc := service.NewCallService(tenantRepo, callRepo, service.NewTwilioVoiceProvider(), service.NewAlertService())
	adminSvc := service.NewAdminService(tenantRepo, callRepo)
	adminAuthSvc := service.NewAdminAuthService(adminAuthRepo)
	jobSvc := service.NewJobService(callSvc)

	callHandler := api.NewCallHandler(callSvc)
	adminHandler := api.NewAdminHandler(adminSvc)
	adminAuthHandler := api.NewAdminAuthHandler(adminAuthSvc)

	// Deferred calls are retried as soon as their business window opens.
	c := cron.New()
	if _, err := c.AddFunc("@every 1m", func() {
		if err := jobSvc.DispatchDueCalls(); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to register dispatch job: %v", err)
	}
	c.Start()

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/tenants/{id}/call-window", callHandler.EvaluateCallWindow).Methods("POST")
	r.HandleFunc("/api/calls", callHandler.RequestCall).Methods("POST")
	r.HandleFunc("/api/calls/{id}", callHandler.GetCall).Methods("GET")
	r.HandleFunc("/admin/login", adminAuthHandler.Login).Methods("POST")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware)
	admin.HandleFunc("/tenants/{id}/business-hours", adminHandler.GetBusinessHours).Methods("GET")
	admin.HandleFunc("/tenants/{id}/business-hours", adminHandler.UpdateBusinessHours).Methods("PUT")
	admin.HandleFunc("/tenants/{id}/calls", adminHandler.ListCalls).Methods("GET")
	admin.HandleFunc("/users", adminAuthHandler.CreateAdmin).Methods("POST")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, cors(r))))
}
