package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mange/backend/internal/domain"
	"github.com/mange/backend/internal/repository"
)

// MaintenanceService reviews the equipment fleet for units that need
// attention before they start wasting power or failing under load.
type MaintenanceService struct {
	repos  *repository.Repos
	alerts AlertPublisher
	now    func() time.Time
}

type MaintenanceFinding struct {
	Equipment domain.Equipment `json:"equipment"`
	Action    string           `json:"action"`
}

const (
	ActionReplace = "replace"
	ActionService = "service"
	ActionInspect = "inspect"
)

const inspectEfficiencyThreshold = 0.7

// ReviewEquipment scans every unit and flags the ones past their lifespan,
// marked degraded or due for service, or running below the efficiency
// threshold. Critical-power units additionally raise an alert.
func (s *MaintenanceService) ReviewEquipment(ctx context.Context) ([]MaintenanceFinding, error) {
	fleet, err := s.repos.ListAllEquipment(ctx)
	if err != nil {
		return nil, err
	}

	var findings []MaintenanceFinding
	for _, eq := range fleet {
		action, flagged := s.assess(eq)
		if !flagged {
			continue
		}
		findings = append(findings, MaintenanceFinding{Equipment: eq, Action: action})

		if eq.CriticalPower && s.alerts != nil {
			if err := s.alerts.PublishMaintenance(eq.Model, eq.ID, action); err != nil {
				log.Error().Err(err).Int64("equipment_id", eq.ID).Msg("maintenance alert failed")
			}
		}
	}
	return findings, nil
}

func (s *MaintenanceService) assess(eq domain.Equipment) (string, bool) {
	age := s.now().Sub(eq.InstallDate)
	if eq.LifespanYears > 0 && age > time.Duration(eq.LifespanYears)*365*24*time.Hour {
		return ActionReplace, true
	}
	switch eq.MaintenanceState {
	case domain.MaintenanceDegraded, domain.MaintenanceDue:
		return ActionService, true
	}
	if eq.EfficiencyRating < inspectEfficiencyThreshold {
		return ActionInspect, true
	}
	return "", false
}
