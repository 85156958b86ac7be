package court

import "testing"

func TestFilters(t *testing.T) {
	courts := []Court{
		{ID: "c1", Number: 1, Environment: EnvironmentIndoor, Status: StatusAvailable},
		{ID: "c2", Number: 2, Environment: EnvironmentIndoor, Status: StatusUnavailable},
		{ID: "c3", Number: 3, Environment: EnvironmentOutdoor, Status: StatusAvailable},
	}

	indoor := Indoor(courts)
	if len(indoor) != 2 {
		t.Fatalf("expected 2 indoor courts, got %d", len(indoor))
	}
	if indoor[0].ID != "c1" || indoor[1].ID != "c2" {
		t.Fatalf("indoor filter must preserve order, got %v", indoor)
	}

	open := AvailableIndoor(courts)
	if len(open) != 1 || open[0].ID != "c1" {
		t.Fatalf("expected only c1 available indoor, got %v", open)
	}
}
