package capability

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileSource loads the plan table from a YAML document on disk. The file is
// read on every Load call; the registry only loads once at startup, so there
// is no caching here.
type fileSource struct {
	path string
}

// NewFileSource returns a Source that reads plans from a YAML file:
//
//	plans:
//	  - id: free
//	    max_history_days: 30
//	    max_requests_per_month: 50
//	    max_requests_per_minute: 10
//	    max_summary_tokens: 256
//	    priority: low
func NewFileSource(path string) Source {
	return &fileSource{path: path}
}

type planFile struct {
	Plans []Plan `yaml:"plans"`
}

func (s *fileSource) Load(ctx context.Context) (map[string]Plan, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	var doc planFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	plans := make(map[string]Plan, len(doc.Plans))
	for _, plan := range doc.Plans {
		if plan.ID == "" {
			return nil, errors.Join(ErrInvalidPlanConfiguration,
				fmt.Errorf("plan without id in %s", s.path))
		}
		if _, exists := plans[plan.ID]; exists {
			return nil, errors.Join(ErrInvalidPlanConfiguration,
				fmt.Errorf("duplicate plan id %q in %s", plan.ID, s.path))
		}
		plans[plan.ID] = plan
	}
	return plans, nil
}
