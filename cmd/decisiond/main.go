// cmd/decisiond/main.go

// Command decisiond serves a built-in decision provider over the websocket
// decision protocol, letting an external tournament field it as a remote
// team.
package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/crashka/euchre-plt/internal/euchre"
	"github.com/crashka/euchre-plt/internal/middleware"
	"github.com/crashka/euchre-plt/internal/provider"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "listen address")
		kind       = flag.String("provider", "simple", "provider to serve (random|simple)")
		aggressive = flag.Int("aggressive", 0, "simple provider aggressiveness bits")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	var p euchre.DecisionProvider
	switch *kind {
	case "random":
		p = provider.NewRandom(time.Now().UnixNano())
	case "simple":
		p = &provider.Simple{Aggressive: *aggressive}
	default:
		logger.Fatalf("unknown provider %q", *kind)
	}

	secret := os.Getenv("EUCHRE_DECISION_SECRET")
	if secret == "" {
		logger.Warn("EUCHRE_DECISION_SECRET not set; serving unauthenticated")
	}

	mux := http.NewServeMux()
	mux.Handle("/decide", provider.NewServer(p, secret, logger))

	server := &http.Server{
		Addr:        *addr,
		Handler:     middleware.LogMiddleware(logger)(mux),
		ReadTimeout: 10 * time.Second,
	}
	logger.WithFields(logrus.Fields{
		"addr":     *addr,
		"provider": *kind,
	}).Info("decision service listening")
	if err := server.ListenAndServe(); err != nil {
		logger.WithError(err).Fatal("server exited")
	}
}
