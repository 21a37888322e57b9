package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/autocarepro/autocare-server/internal/auth"
	"github.com/autocarepro/autocare-server/internal/db"
	"github.com/autocarepro/autocare-server/internal/handlers"
	"github.com/autocarepro/autocare-server/internal/middleware"
	"github.com/autocarepro/autocare-server/internal/notify"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using environment")
	}
	setupLogging()

	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())
	log.Info("Connected to MongoDB")

	database := db.Database(client)
	users := &db.MongoUserCollection{Collection: database.Collection(db.UsersCollection)}
	vehicles := &db.MongoVehicleCollection{Collection: database.Collection(db.VehiclesCollection)}
	appointments := &db.MongoAppointmentCollection{Collection: database.Collection(db.AppointmentsCollection)}
	records := &db.MongoMaintenanceRecordCollection{Collection: database.Collection(db.MaintenanceCollection)}
	reviews := &db.MongoReviewCollection{Collection: database.Collection(db.ReviewsCollection)}

	authService, err := auth.NewService()
	if err != nil {
		log.WithError(err).Fatal("Failed to create auth service")
	}

	publisher, err := notify.NewFromEnv()
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MQTT broker")
	}
	defer publisher.Close()

	authHandler := handlers.NewAuthHandler(authService, users)
	vehicleHandler := handlers.NewVehicleHandler(vehicles)
	appointmentHandler := handlers.NewAppointmentHandler(appointments, publisher)
	maintenanceHandler := handlers.NewMaintenanceHandler(records, publisher)
	reviewHandler := handlers.NewReviewHandler(reviews)

	authMW := middleware.NewAuthMiddleware(authService)
	rateLimiter := middleware.NewRateLimitMiddleware()

	perm := func(action string, h http.HandlerFunc) http.Handler {
		return authMW.RequirePermission(action)(h)
	}

	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")

	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/profile", authHandler.GetProfile).Methods("GET")
	r.HandleFunc("/api/auth/profile", authHandler.UpdateProfile).Methods("PUT")
	r.HandleFunc("/api/auth/password", authHandler.ChangePassword).Methods("POST")

	r.Handle("/api/vehicles", perm("create_vehicle", vehicleHandler.Create)).Methods("POST")
	r.Handle("/api/vehicles", perm("view_vehicles", vehicleHandler.List)).Methods("GET")
	r.Handle("/api/vehicles/{id}", perm("view_vehicles", vehicleHandler.Get)).Methods("GET")
	r.Handle("/api/vehicles/{id}", perm("update_vehicle", vehicleHandler.Update)).Methods("PUT")
	r.Handle("/api/vehicles/{id}", perm("delete_vehicle", vehicleHandler.Delete)).Methods("DELETE")

	r.Handle("/api/appointments", perm("create_appointment", appointmentHandler.Create)).Methods("POST")
	r.Handle("/api/appointments", perm("view_appointments", appointmentHandler.List)).Methods("GET")
	r.Handle("/api/appointments/{id}", perm("view_appointments", appointmentHandler.Get)).Methods("GET")
	r.Handle("/api/appointments/{id}", perm("update_appointment", appointmentHandler.Update)).Methods("PUT")
	r.Handle("/api/appointments/{id}", perm("delete_appointment", appointmentHandler.Delete)).Methods("DELETE")

	r.Handle("/api/maintenance", perm("create_maintenance", maintenanceHandler.Create)).Methods("POST")
	r.Handle("/api/maintenance", perm("view_maintenance", maintenanceHandler.List)).Methods("GET")
	r.Handle("/api/maintenance/{id}", perm("view_maintenance", maintenanceHandler.Get)).Methods("GET")
	r.Handle("/api/maintenance/{id}", perm("update_maintenance", maintenanceHandler.Update)).Methods("PUT")
	r.Handle("/api/maintenance/{id}", perm("delete_maintenance", maintenanceHandler.Delete)).Methods("DELETE")

	r.Handle("/api/reviews", perm("create_review", reviewHandler.Create)).Methods("POST")
	r.Handle("/api/reviews", perm("view_reviews", reviewHandler.List)).Methods("GET")
	r.Handle("/api/reviews/{id}", perm("view_reviews", reviewHandler.Get)).Methods("GET")
	r.Handle("/api/reviews/{id}", perm("update_review", reviewHandler.Update)).Methods("PUT")
	r.Handle("/api/reviews/{id}", perm("delete_review", reviewHandler.Delete)).Methods("DELETE")

	handler := middleware.RequestLogger(
		rateLimiter.RateLimit(100, 60)(
			authMW.Authenticate(r)))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.WithField("port", port).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Shutdown error")
	}
}

func setupLogging() {
	level, err := log.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}
