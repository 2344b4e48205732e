package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"wafer-histogram/internal/config"
	"wafer-histogram/internal/controllers"
	"wafer-histogram/internal/logger"
	"wafer-histogram/internal/models"
	"wafer-histogram/internal/services"
	"wafer-histogram/internal/shutdown"
	"wafer-histogram/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const mainComponent = "Application"

// Application holds the wired MVC components and the window they run in
type Application struct {
	// Core components
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger
	config  config.Config

	// MVC Components
	controller *controllers.MainController
	view       *views.MainView
	session    *models.Session

	shutdown *shutdown.Manager
}

func main() {
	application, err := NewApplication(config.Load())
	if err != nil {
		log.Fatalf("Application initialization failed: %v", err)
	}

	application.Run()
}

// NewApplication creates the window, services and controller and wires them
// together
func NewApplication(cfg config.Config) (*Application, error) {
	appLogger := logger.New(cfg.LogLevel, cfg.JSONLogs, os.Stderr)

	fyneApp := app.NewWithID(config.AppID)
	app.SetMetadata(fyne.AppMetadata{
		ID:      config.AppID,
		Name:    config.AppName,
		Version: config.AppVersion,
	})

	window := fyneApp.NewWindow(config.AppName)
	window.Resize(fyne.NewSize(cfg.WindowWidth, cfg.WindowHeight))
	window.CenterOnScreen()

	appLogger.Info(mainComponent, "application starting", map[string]interface{}{
		"version":     config.AppVersion,
		"window_size": fmt.Sprintf("%.0fx%.0f", cfg.WindowWidth, cfg.WindowHeight),
		"go_version":  runtime.Version(),
		"log_level":   cfg.LogLevel.String(),
		"json_logs":   cfg.JSONLogs,
	})

	session := models.NewSession()

	recordService := services.NewRecordService(appLogger)
	histogramService := services.NewHistogramService(models.DefaultBins, appLogger)
	exportService := services.NewExportService(appLogger)

	mainController := controllers.NewMainController(
		recordService, histogramService, exportService,
		session, appLogger,
	)
	mainView := views.NewMainView(window)
	mainView.SetupMenus(fyneApp.Quit)
	mainController.SetMainView(mainView)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		logger:     appLogger,
		config:     cfg,
		controller: mainController,
		view:       mainView,
		session:    session,
		shutdown:   shutdown.NewManager(appLogger),
	}

	mainController.SetContext(application.shutdown.Context())
	application.shutdown.Register(shutdown.Func(func() {
		appLogger.Info(mainComponent, "application terminated", map[string]interface{}{
			"state": session.State().String(),
		})
	}))
	application.shutdown.Register(mainController)
	application.setupWindowEvents()

	return application, nil
}

// Run shows the window and blocks until the application quits
func (app *Application) Run() {
	app.shutdown.Listen(func() {
		fyne.Do(app.fyneApp.Quit)
	})

	app.view.Show()
	app.fyneApp.Run()

	app.shutdown.Shutdown()
}

// setupWindowEvents closes the application with its window
func (app *Application) setupWindowEvents() {
	app.window.SetMaster()

	app.window.SetOnClosed(func() {
		app.logger.Info(mainComponent, "window closed", nil)
	})
}
