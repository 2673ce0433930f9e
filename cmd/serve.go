package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	serveAddr       string // Listen address
	serveMaxRecords int    // Per-request record cap
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve call logs and PDF reports over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		// Root context that cancels on shutdown
		rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if logrus.GetLevel() < logrus.DebugLevel {
			gin.SetMode(gin.ReleaseMode)
		}
		if serveMaxRecords < 0 {
			logrus.Fatalf("--max-records must be >= 0, got %d", serveMaxRecords)
		}

		srv := &http.Server{
			Addr:              serveAddr,
			Handler:           newRouter(serveMaxRecords),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		go func() {
			logrus.Infof("calllog-sim listening on %s (max %d records per request)", srv.Addr, serveMaxRecords)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logrus.Errorf("http server failed: %v", err)
				stop()
			}
		}()

		<-rootCtx.Done()
		logrus.Info("shutdown initiated")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.Errorf("http shutdown failed: %v", err)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "HTTP listen address")
	serveCmd.Flags().IntVar(&serveMaxRecords, "max-records", 200000, "Reject requests that may produce more records than this (0 = unlimited)")
	rootCmd.AddCommand(serveCmd)
}
