package memory

import "github.com/dinkhousedev/dink-house-scheduler/internal/domain/court"

// SeedCourts reflects the venue's fixed layout: five indoor courts plus the
// two uncovered ones out back.
func SeedCourts() []court.Court {
	return []court.Court{
		{ID: "court-1", Number: 1, Environment: court.EnvironmentIndoor, Status: court.StatusAvailable},
		{ID: "court-2", Number: 2, Environment: court.EnvironmentIndoor, Status: court.StatusAvailable},
		{ID: "court-3", Number: 3, Environment: court.EnvironmentIndoor, Status: court.StatusAvailable},
		{ID: "court-4", Number: 4, Environment: court.EnvironmentIndoor, Status: court.StatusAvailable},
		{ID: "court-5", Number: 5, Environment: court.EnvironmentIndoor, Status: court.StatusAvailable},
		{ID: "court-6", Number: 6, Environment: court.EnvironmentOutdoor, Status: court.StatusAvailable},
		{ID: "court-7", Number: 7, Environment: court.EnvironmentOutdoor, Status: court.StatusUnavailable},
	}
}
