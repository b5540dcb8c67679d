package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jredh-dev/foodshare/services/foodshare/config"
	"github.com/jredh-dev/foodshare/services/foodshare/internal/foodapi"
	"github.com/jredh-dev/foodshare/services/foodshare/internal/foodapi/foodapitest"
	"github.com/jredh-dev/foodshare/services/foodshare/internal/httpserver"
	"github.com/jredh-dev/foodshare/services/foodshare/internal/session"
	"github.com/jredh-dev/foodshare/services/foodshare/internal/web/handlers"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	devAPI := flag.Bool("dev-api", false, "Serve an in-memory food API with demo data instead of FOOD_API_BASE_URL")
	flag.Parse()

	if *showVersion {
		fmt.Printf("foodshare-server %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", buildDate)
		os.Exit(0)
	}

	cfg := config.Load()

	if cfg.Session.Secret == "" {
		if cfg.IsProduction() {
			log.Fatal("SESSION_SECRET must be set in production")
		}
		log.Println("WARNING: SESSION_SECRET is empty, using insecure default (set SESSION_SECRET in production)")
		cfg.Session.Secret = "insecure-dev-secret-change-me"
	}

	server := httpserver.New(cfg.FoodAPI.Timeout + 5*time.Second)

	baseURL := cfg.FoodAPI.BaseURL
	if *devAPI || cfg.FoodAPI.UseFake {
		fake := foodapitest.New()
		seedDemoData(fake)
		srv := fake.Start()
		server.OnStop(srv.Close)
		baseURL = srv.URL
		log.Printf("Serving in-memory food API at %s", baseURL)
	}

	api := foodapi.New(baseURL, foodapi.WithTimeout(cfg.FoodAPI.Timeout))
	sessions := session.NewCookieStore(cfg.Session.Secret, session.CookieOptions{
		Name:   cfg.Session.CookieName,
		MaxAge: cfg.Session.MaxAge,
		Issuer: cfg.Session.Issuer,
		Secure: cfg.IsProduction(),
	})

	h := handlers.New(api, sessions, cfg.IsProduction())
	h.Routes(server.Router)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("FoodShare server (env: %s, api: %s)", cfg.Server.Env, api.BaseURL())
	if err := server.ListenAndServe(addr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// seedDemoData gives the in-memory API one account per role and a few
// listings so every view has something to show.
func seedDemoData(api *foodapitest.API) {
	api.AddAccount(foodapitest.Account{Name: "Demo Donor", Email: "donor@demo.com", Location: "Market Square", UserType: "donor"})
	api.AddAccount(foodapitest.Account{Name: "Demo User", Email: "user@demo.com", Location: "Riverside", UserType: "user"})
	api.AddAccount(foodapitest.Account{Name: "Demo Charity", Email: "charity@demo.com", Location: "Old Town", UserType: "charity"})

	api.Seed(
		foodapi.Record{FoodItem: "Fresh vegetables", Availability: "12", ExpectedPeople: 10,
			Location: "Market Square", Contact: "555-0100", EmailVal: "donor@demo.com", DonorName: "Demo Donor"},
		foodapi.Record{FoodItem: "Bakery items", Availability: "Today 2-6 PM", ExpectedPeople: 6,
			Location: "Market Square", Contact: "555-0100", EmailVal: "donor@demo.com", DonorName: "Demo Donor"},
		foodapi.Record{FoodItem: "Cooked meals", Availability: "4", ExpectedPeople: 15,
			Location: "Market Square", Contact: "555-0100", EmailVal: "donor@demo.com", DonorName: "Demo Donor",
			Accepted: true, AcceptedBy: "Demo Charity"},
	)
	log.Println("Seeded demo accounts: donor@demo.com, user@demo.com, charity@demo.com")
}
