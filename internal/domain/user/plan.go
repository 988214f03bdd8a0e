package user

import "errors"

var ErrUnknownPlan = errors.New("unknown plan")

type Plan struct {
	ID       string
	Sessions int
	Price    int
}

var catalog = []Plan{
	{ID: "p8", Sessions: 8, Price: 12000},
	{ID: "p12", Sessions: 12, Price: 16000},
	{ID: "p16", Sessions: 16, Price: 18000},
	{ID: "p20", Sessions: 20, Price: 20000},
	{ID: "p24", Sessions: 24, Price: 22000},
}

func Plans() []Plan {
	out := make([]Plan, len(catalog))
	copy(out, catalog)
	return out
}

func FindPlan(id string) (Plan, error) {
	for _, p := range catalog {
		if p.ID == id {
			return p, nil
		}
	}
	return Plan{}, ErrUnknownPlan
}
