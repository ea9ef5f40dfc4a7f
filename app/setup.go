package app

import (
	"fmt"

	"github.com/b-shhhh/university-finder-ai/api"
	"github.com/b-shhhh/university-finder-ai/config"
	"github.com/b-shhhh/university-finder-ai/database"
	"github.com/b-shhhh/university-finder-ai/router"
)

// SetupAndRunServer loads configuration, connects the database, wires
// routes and blocks serving requests.
func SetupAndRunServer() error {
	if err := config.LoadENV(); err != nil {
		return err
	}

	env, err := config.Get()
	if err != nil {
		return err
	}

	store, err := database.StartGORM()
	if err != nil {
		print("Check whether Postgres is running or not\n")
		return err
	}

	if err := store.Init(); err != nil {
		print("Failed to initialize database tables\n")
		return err
	}

	defer store.Close()

	server := api.NewAPIServer(fmt.Sprintf(":%d", env.PORT))
	app := server.GetEngine()

	router.SetupRoutes(app, store, env.IsProduction())

	return server.Run()
}
