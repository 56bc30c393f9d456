package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type APIServer struct {
	app           *fiber.App
	listenAddress string
	log           *logrus.Logger
}

func NewAPIServer(listenAddress string, log *logrus.Logger) *APIServer {
	return &APIServer{
		app: fiber.New(fiber.Config{
			AppName:               "todo-api",
			DisableStartupMessage: true,
		}),
		listenAddress: listenAddress,
		log:           log,
	}
}

func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

func (s *APIServer) Run() error {
	s.log.WithField("address", s.listenAddress).Info("Starting API Server")

	return s.app.Listen(s.listenAddress)
}

func (s *APIServer) Shutdown() error {
	s.log.Info("Shutting down API Server")

	return s.app.Shutdown()
}
