package interfaces

import "login_automation/domain/entities"

// ResultStore persists finished scenario results for the report viewer
type ResultStore interface {
	// SaveScenario stores one scenario result
	SaveScenario(result entities.ScenarioResult) error
}
