package scenario

import "github.com/charmbracelet/log"

// LogNavigator records navigation intents in the log. It stands in for a
// real router in the API server and in tests.
type LogNavigator struct {
	Logger *log.Logger
}

func (n *LogNavigator) GoToScenario(id string) {
	if n.Logger != nil {
		n.Logger.Info("navigation intent", "target", "scenario-detail", "scenario_id", id)
	}
}

func (n *LogNavigator) GoBack() {
	if n.Logger != nil {
		n.Logger.Info("navigation intent", "target", "back")
	}
}

// LogViewDataSink records row-detail view requests in the log.
type LogViewDataSink struct {
	Logger *log.Logger
}

func (v *LogViewDataSink) ShowRowDetail(compositeKey string) {
	if v.Logger != nil {
		v.Logger.Info("view-data intent", "row", compositeKey)
	}
}
