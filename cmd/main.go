package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "envmonitor/docs"
	"envmonitor/internal/config"
	"envmonitor/internal/feed"
	"envmonitor/internal/handlers"
	"envmonitor/internal/logger"
	"envmonitor/internal/models"
	"envmonitor/internal/monitor"
	"envmonitor/internal/notify"
	"envmonitor/internal/repository"
	"envmonitor/internal/repository/db"
	"envmonitor/internal/server"
	"envmonitor/internal/service"
	"envmonitor/internal/websocket"
)

const (
	shutdownTimeout  = 10 * time.Second
	mqttDisconnectMs = 250
	msgIncident      = "incident"
)

// @title           Environment Monitor API
// @version         1.0
// @description     Polls a temperature/humidity feed, detects threshold breaches and serves the incident log.
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// load config.yml (+ .env, ENVMON_* overrides)
	cfg, err := config.Load("")
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.Log.Level)

	// open DB
	sqlDB, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// live stream fan-out, shared by the /ws handler and the notifier channels
	hub := websocket.NewHub(log.Component("hub"), 0)

	channels, closeChannels := notifierChannels(cfg, hub, log)
	defer closeChannels()

	// drained before the channels are released
	dispatcher := monitor.NewDispatcher(log.Component("notify"), cfg.Notify.DispatchTimeout, channels...)
	defer dispatcher.Close()

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	services, err := service.NewService(repos, service.Options{
		Auth: service.AuthConfig{
			SigningKey: cfg.Auth.SigningKey,
			TokenTTL:   cfg.Auth.TokenTTL,
		},
		Feed:          newFeed(cfg),
		Dispatcher:    dispatcher,
		AlertCapacity: cfg.Alerts.Capacity,
		PollInterval:  cfg.Poll.Interval,
		Range:         models.TimeRange(cfg.Poll.Range),
		DefaultThresholds: models.Thresholds{
			TempHigh: cfg.Thresholds.TempHigh,
			TempLow:  cfg.Thresholds.TempLow,
			HumHigh:  cfg.Thresholds.HumHigh,
			HumLow:   cfg.Thresholds.HumLow,
		},
		DefaultPreferences: models.Preferences{SoundEnabled: true, NotificationsEnabled: true},
		OnIncident: func(inc models.Incident) {
			hub.Broadcast(msgIncident, inc)
		},
		Log: log,
	})
	if err != nil {
		log.Fatalw("failed to wire services", "err", err)
	}

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := services.Restore(ctx); err != nil {
		// defaults stay live; the store may recover later
		log.Errorw("restore_settings_failed", "err", err)
	}

	// polling idles until the first session opens
	waitBackground := startBackground(ctx,
		services.Poller.Run,
		func(ctx context.Context) { services.Sessions.Run(ctx, cfg.Session.SweepInterval) },
	)

	apiHandler := handlers.NewHandler(services, hub, log.Component("http"))

	// start HTTP server
	srv := server.New(cfg.Port, apiHandler.InitRoutes())
	runHTTPServer(srv, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
	waitBackground()
}

// startBackground runs each loop on its own goroutine. The returned func
// blocks until every loop has returned.
func startBackground(ctx context.Context, loops ...func(context.Context)) (wait func()) {
	var wg sync.WaitGroup
	for _, loop := range loops {
		wg.Add(1)
		go func(loop func(context.Context)) {
			defer wg.Done()
			loop(ctx)
		}(loop)
	}
	return wg.Wait
}

func newFeed(cfg *config.Config) monitor.Feed {
	if cfg.Feed.Source == "simulator" {
		return feed.NewSimulator()
	}
	return feed.NewThingSpeak(feed.Config{
		BaseURL:   cfg.Feed.BaseURL,
		ChannelID: cfg.Feed.ChannelID,
		ReadKey:   cfg.Feed.ReadKey,
		Timeout:   cfg.Feed.Timeout,
	}, nil)
}

// notifierChannels builds the audio, system and (optional) MQTT channels.
// The returned func releases the MQTT connection.
func notifierChannels(cfg *config.Config, hub *websocket.Hub, log *logger.Logger) ([]monitor.Channel, func()) {
	channels := []monitor.Channel{
		{Name: "audio", Notifier: notify.NewAudioCue(hub), Enabled: monitor.SoundEnabled},
		{
			Name:     "system",
			Notifier: notify.NewSystemNotification(hub, notify.ParsePermission(cfg.Notify.SystemPermission)),
			Enabled:  monitor.NotificationsEnabled,
		},
	}
	if !cfg.Notify.MQTT.Enabled {
		return channels, func() {}
	}

	m := cfg.Notify.MQTT
	client, err := notify.DialMQTT(notify.MQTTConfig{
		Broker:         m.Broker,
		ClientID:       m.ClientID,
		Username:       m.Username,
		Password:       m.Password,
		Topic:          m.Topic,
		QoS:            byte(m.QoS),
		ConnectTimeout: m.ConnectTimeout,
	})
	if err != nil {
		// the engine runs without the channel rather than not at all
		log.Errorw("mqtt_connect_failed", "broker", m.Broker, "err", err)
		return channels, func() {}
	}
	log.Infow("mqtt_connected", "broker", m.Broker, "topic", m.Topic)
	channels = append(channels, monitor.Channel{
		Name:     "mqtt",
		Notifier: notify.NewMQTTNotifier(client, m.Topic, byte(m.QoS)),
		Enabled:  monitor.NotificationsEnabled,
	})
	return channels, func() { client.Disconnect(mqttDisconnectMs) }
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, log *logger.Logger) {
	go func() {
		log.Infow("http_listening", "addr", srv.Addr())
		if err := srv.Run(); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines; the poller pauses and resets its station
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
