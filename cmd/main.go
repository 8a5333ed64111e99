package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/uygardev/vehicle-maintenance/internal/auth"
	"github.com/uygardev/vehicle-maintenance/internal/db"
	"github.com/uygardev/vehicle-maintenance/internal/handlers"
	"github.com/uygardev/vehicle-maintenance/internal/middleware"
	"github.com/uygardev/vehicle-maintenance/internal/prediction"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found")
	}

	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	log.Info("connected to MongoDB")

	database := db.Database(client)
	vehicles := &db.MongoVehicleCollection{Collection: database.Collection("vehicles")}
	services := &db.MongoServiceCollection{Collection: database.Collection("services")}
	users := &db.MongoUserCollection{Collection: database.Collection("users")}

	authService, err := auth.NewService()
	if err != nil {
		log.WithError(err).Fatal("failed to create auth service")
	}

	engine := prediction.NewEngine(prediction.DefaultRules())

	authHandler := handlers.NewAuthHandler(authService, users)
	vehicleHandler := handlers.NewVehicleHandler(vehicles)
	serviceHandler := handlers.NewServiceHandler(vehicles, services)
	predictionHandler := handlers.NewPredictionHandler(vehicles, services, engine)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/auth/profile", authHandler.GetProfile)

	mux.HandleFunc("GET /api/vehicles", vehicleHandler.List)
	mux.HandleFunc("POST /api/vehicles", vehicleHandler.Create)
	mux.HandleFunc("GET /api/vehicles/{vehicleID}", vehicleHandler.Get)
	mux.HandleFunc("PUT /api/vehicles/{vehicleID}", vehicleHandler.Update)
	mux.HandleFunc("DELETE /api/vehicles/{vehicleID}", vehicleHandler.Delete)

	mux.HandleFunc("GET /api/vehicles/{vehicleID}/services", serviceHandler.List)
	mux.HandleFunc("POST /api/vehicles/{vehicleID}/services", serviceHandler.Create)
	mux.HandleFunc("PUT /api/services/{serviceID}", serviceHandler.Update)
	mux.HandleFunc("DELETE /api/services/{serviceID}", serviceHandler.Delete)

	mux.HandleFunc("GET /api/vehicles/{vehicleID}/predictions", predictionHandler.Get)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	authMiddleware := middleware.NewAuthMiddleware(authService)
	rateLimiter := middleware.NewRateLimitMiddleware()

	handler := rateLimiter.RateLimit(100, 60)(authMiddleware.Authenticate(mux))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Infof("HTTP server listening on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
