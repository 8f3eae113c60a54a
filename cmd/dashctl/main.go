// dashctl drives the dashboard session store from the command line:
// log in against the external backend, inspect the cached session, or
// log out. Useful for smoke-testing a deployment without a browser.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/devfolio/backend/internal/config"
	"github.com/devfolio/backend/internal/dashboard"
	redisInfra "github.com/devfolio/backend/internal/infrastructure/redis"
	"github.com/devfolio/backend/pkg/logger"
)

func main() {
	username := flag.String("username", "", "admin username for login")
	password := flag.String("password", "", "admin password for login")
	siteURL := flag.String("site", "http://localhost:8080", "portfolio site base URL")
	flag.Parse()

	cmd := flag.Arg(0)
	if cmd == "" {
		fmt.Fprintln(os.Stderr, "usage: dashctl [flags] <login|status|logout>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: "console",
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	storage, cleanup, err := openStorage(cfg)
	if err != nil {
		zapLogger.Fatal("storage failed", zap.Error(err))
	}
	defer cleanup()

	api := dashboard.NewClient(cfg.Backend.URL, *siteURL, zapLogger)
	nav := dashboard.FuncNavigator(func(path string) {
		fmt.Printf("-> %s\n", path)
	})
	store := dashboard.NewStore(storage, api, nil, nav, cfg.Auth.CookieName, zapLogger)
	store.Init()

	switch cmd {
	case "login":
		if *username == "" || *password == "" {
			fmt.Fprintln(os.Stderr, "login requires -username and -password")
			os.Exit(2)
		}
		if err := store.Login(*username, *password); err != nil {
			zapLogger.Fatal("login failed", zap.Error(err))
		}
		fmt.Println("logged in as", store.Profile().Name)
	case "status":
		fmt.Println("state:", store.State())
		if profile := store.Profile(); profile != nil {
			fmt.Printf("admin: %s <%s>\n", profile.Name, profile.Email)
		}
	case "logout":
		store.Logout()
		fmt.Println("logged out")
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		os.Exit(2)
	}
}

func openStorage(cfg *config.Config) (dashboard.Storage, func(), error) {
	switch cfg.Dashboard.Storage {
	case "redis":
		client, err := redisInfra.NewClient(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return dashboard.NewRedisStorage(client, ""), func() { client.Close() }, nil
	default:
		store, err := dashboard.OpenBolt(cfg.Dashboard.StoragePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	}
}
