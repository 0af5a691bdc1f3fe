package gateway

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/warp-contracts/arns-engine/src/utils/config"
	"github.com/warp-contracts/arns-engine/src/utils/monitor"
	"github.com/warp-contracts/arns-engine/src/utils/task"
)

// Rest API server, serves contract reads over the latest snapshot
type Server struct {
	*task.Task

	httpServer *http.Server
	Router     *gin.Engine

	monitor  *monitor.Monitor
	provider *Provider
}

func NewServer(config *config.Config) (self *Server) {
	self = new(Server)

	self.Task = task.NewTask(config, "gateway-server").
		WithSubtaskFunc(self.run).
		WithOnStop(self.stop)

	self.Router = gin.New()

	self.httpServer = &http.Server{
		Addr:         self.Config.Gateway.RESTListenAddress,
		Handler:      self.Router,
		ReadTimeout:  self.Config.Gateway.ServerRequestTimeout,
		WriteTimeout: self.Config.Gateway.ServerRequestTimeout,
	}

	return
}

func (self *Server) WithMonitor(monitor *monitor.Monitor) *Server {
	self.monitor = monitor
	return self
}

func (self *Server) WithProvider(provider *Provider) *Server {
	self.provider = provider
	return self
}

func (self *Server) run() (err error) {
	if !self.Config.IsDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}

	v1 := self.Router.Group("v1")
	{
		v1.GET("health", self.monitor.OnGet)
		v1.GET("state", self.onGetState)
		v1.GET("balance/:address", self.onGetBalance)
		v1.GET("record/:name", self.onGetRecord)
		v1.GET("auction/:name", self.onGetAuction)
		v1.GET("price", self.onGetPrice)
	}

	err = self.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		self.Log.WithError(err).Error("Failed to start REST server")
		return
	}
	return nil
}

func (self *Server) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), self.Config.StopTimeout)
	defer cancel()

	err := self.httpServer.Shutdown(ctx)
	if err != nil {
		self.Log.WithError(err).Error("Failed to gracefully shutdown REST server")
		return
	}
}
