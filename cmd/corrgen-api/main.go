// Command corrgen-api exposes the status surface over HTTP, grounded on
// the teacher's cmd/pipeline-api/main.go.
package main

import (
	"os"

	"go-corrgen/internal/api"
	"go-corrgen/internal/api/handler"
	"go-corrgen/internal/genlog"
	"go-corrgen/internal/runlog"
	"go-corrgen/pkg/router"

	"github.com/sirupsen/logrus"
)

func main() {
	genlog.Configure(logrus.InfoLevel)
	log := genlog.New("cmd")

	store, err := runlog.Open("corrgen.db")
	if err != nil {
		log.WithField("error", err).Fatal("failed to open run history store")
	}
	defer store.Close()

	r := router.New()
	api.RegisterRoutes(r, handler.NewServer(store))

	addr := ":8080"
	if v := os.Getenv("CORRGEN_API_ADDR"); v != "" {
		addr = v
	}
	r.Start(addr)
}
