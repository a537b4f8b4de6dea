package service

import (
	"envmonitor/internal/models"
	"envmonitor/internal/monitor"
)

type pollerView interface {
	Station() *monitor.Station
	Range() models.TimeRange
	SetRange(r models.TimeRange) error
	Trigger() bool
}

type MonitoringService struct {
	poller     pollerView
	thresholds monitor.ThresholdSource
}

func NewMonitoringService(poller pollerView, thresholds monitor.ThresholdSource) *MonitoringService {
	return &MonitoringService{poller: poller, thresholds: thresholds}
}

// State returns the station snapshot with the live range and thresholds.
func (s *MonitoringService) State() models.Snapshot {
	snap := s.poller.Station().Snapshot()
	snap.Range = s.poller.Range()
	snap.Thresholds = s.thresholds.Current()
	return snap
}

func (s *MonitoringService) History() []models.Sample {
	return s.poller.Station().History()
}

// Refresh requests an immediate poll. It reports false while polling is
// paused.
func (s *MonitoringService) Refresh() bool {
	return s.poller.Trigger()
}

func (s *MonitoringService) SetRange(r models.TimeRange) error {
	return s.poller.SetRange(r)
}

type AlertService struct {
	log *monitor.AlertLog
}

func NewAlertService(log *monitor.AlertLog) *AlertService {
	return &AlertService{log: log}
}

func (s *AlertService) List() []models.Incident { return s.log.List() }

func (s *AlertService) Acknowledge(id string) bool { return s.log.Acknowledge(id) }
