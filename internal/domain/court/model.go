package court

type Environment string

const (
	EnvironmentIndoor  Environment = "indoor"
	EnvironmentOutdoor Environment = "outdoor"
)

type Status string

const (
	StatusAvailable   Status = "available"
	StatusUnavailable Status = "unavailable"
)

// Court is reference data managed outside this service; read-only here.
type Court struct {
	ID          string
	Number      int
	Environment Environment
	Status      Status
}

func (c Court) IsIndoor() bool {
	return c.Environment == EnvironmentIndoor
}

func (c Court) IsAvailable() bool {
	return c.Status == StatusAvailable
}

// Indoor filters to indoor courts, preserving order.
func Indoor(courts []Court) []Court {
	out := make([]Court, 0, len(courts))
	for _, c := range courts {
		if c.IsIndoor() {
			out = append(out, c)
		}
	}
	return out
}

// AvailableIndoor filters to indoor courts currently open for allocation.
func AvailableIndoor(courts []Court) []Court {
	out := make([]Court, 0, len(courts))
	for _, c := range courts {
		if c.IsIndoor() && c.IsAvailable() {
			out = append(out, c)
		}
	}
	return out
}
